package integration

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// Endpoint steps

func (s *StepsContext) iCreateEndpoint(name, path, method string) error {
	err := s.doRequest(http.MethodPost, "/endpoints", map[string]interface{}{
		"name":   name,
		"path":   path,
		"method": method,
	})
	if err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		obj, err := s.responseObject()
		if err != nil {
			return err
		}
		s.endpointIDs[name] = fmt.Sprintf("%v", obj["id"])
	}
	return nil
}

func (s *StepsContext) iListEndpoints() error {
	return s.doRequest(http.MethodGet, "/endpoints", nil)
}

func (s *StepsContext) iFetchEndpointSummary() error {
	return s.doRequest(http.MethodGet, "/endpoints?summary=true", nil)
}

func (s *StepsContext) iDeleteEndpoint(name string) error {
	id, ok := s.endpointIDs[name]
	if !ok {
		return fmt.Errorf("no endpoint named %q was created in this scenario", name)
	}
	return s.doRequest(http.MethodDelete, "/endpoints/"+id, nil)
}

func (s *StepsContext) iFlipEndpointStatus(name string) error {
	id, ok := s.endpointIDs[name]
	if !ok {
		return fmt.Errorf("no endpoint named %q was created in this scenario", name)
	}
	return s.doRequest(http.MethodPost, "/endpoints/"+id+"/status", nil)
}

// API key steps

func (s *StepsContext) iCreateAPIKey(name, environment string) error {
	err := s.doRequest(http.MethodPost, "/keys", map[string]interface{}{
		"name":        name,
		"environment": environment,
	})
	if err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		obj, err := s.responseObject()
		if err != nil {
			return err
		}
		s.keyIDs[name] = fmt.Sprintf("%v", obj["id"])
		if secret, ok := obj["secret"]; ok {
			s.keySecrets[name] = fmt.Sprintf("%v", secret)
		}
	}
	return nil
}

func (s *StepsContext) theResponseSecretShouldStartWith(prefix string) error {
	obj, err := s.responseObject()
	if err != nil {
		return err
	}
	secret := fmt.Sprintf("%v", obj["secret"])
	if len(secret) < len(prefix) || secret[:len(prefix)] != prefix {
		return fmt.Errorf("expected secret to start with %q, got %q", prefix, secret)
	}
	return nil
}

func (s *StepsContext) iListAPIKeys() error {
	return s.doRequest(http.MethodGet, "/keys", nil)
}

func (s *StepsContext) noKeyShouldIncludeSecret() error {
	list, err := s.responseList()
	if err != nil {
		return err
	}
	for _, key := range list {
		if secret, ok := key["secret"]; ok && secret != "" {
			return fmt.Errorf("key %v still carries a secret", key["name"])
		}
	}
	return nil
}

func (s *StepsContext) iRevokeAPIKey(name string) error {
	id, ok := s.keyIDs[name]
	if !ok {
		return fmt.Errorf("no API key named %q was created in this scenario", name)
	}
	return s.doRequest(http.MethodPost, "/keys/"+id+"/revoke", nil)
}

// Campaign steps

func (s *StepsContext) iCreateCampaign(name string) error {
	err := s.doRequest(http.MethodPost, "/campaigns", map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusCreated {
		obj, err := s.responseObject()
		if err != nil {
			return err
		}
		s.campaignIDs[name] = fmt.Sprintf("%v", obj["id"])
	}
	return nil
}

func (s *StepsContext) iActOnCampaign(action, name string) error {
	id, ok := s.campaignIDs[name]
	if !ok {
		return fmt.Errorf("no campaign named %q was created in this scenario", name)
	}
	return s.doRequest(http.MethodPost, "/campaigns/"+id+"/"+action, nil)
}

func (s *StepsContext) iRecordCampaignMetrics(impressions, clicks int, name string) error {
	id, ok := s.campaignIDs[name]
	if !ok {
		return fmt.Errorf("no campaign named %q was created in this scenario", name)
	}
	return s.doRequest(http.MethodPatch, "/campaigns/"+id+"/metrics", map[string]interface{}{
		"impressions": impressions,
		"clicks":      clicks,
	})
}

func (s *StepsContext) campaignShouldHaveStatus(name, status string) error {
	if err := s.refetchCampaign(name); err != nil {
		return err
	}
	return s.theResponseFieldShouldBe("status", status)
}

func (s *StepsContext) campaignShouldHaveCTR(name, rate string) error {
	if err := s.refetchCampaign(name); err != nil {
		return err
	}
	want, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return err
	}
	obj, err := s.responseObject()
	if err != nil {
		return err
	}
	got, ok := obj["click_through_rate"].(float64)
	if !ok {
		return fmt.Errorf("click_through_rate missing from response: %s", s.responseBody)
	}
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected click-through rate %v, got %v", want, got)
	}
	return nil
}

// refetchCampaign reloads a campaign through the list endpoint and leaves
// the matching row as the current response object.
func (s *StepsContext) refetchCampaign(name string) error {
	id, ok := s.campaignIDs[name]
	if !ok {
		return fmt.Errorf("no campaign named %q was created in this scenario", name)
	}
	if err := s.doRequest(http.MethodGet, "/campaigns", nil); err != nil {
		return err
	}
	list, err := s.responseList()
	if err != nil {
		return err
	}
	for _, row := range list {
		if fmt.Sprintf("%v", row["id"]) == id {
			body, err := json.Marshal(row)
			if err != nil {
				return err
			}
			s.responseBody = body
			return nil
		}
	}
	return fmt.Errorf("campaign %q not present in list response", name)
}
