package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte

	userID    uuid.UUID
	authToken string

	// resource ids created during the scenario, by name
	endpointIDs map[string]string
	keyIDs      map[string]string
	campaignIDs map[string]string

	// secrets returned at key creation, by name
	keySecrets map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:          tc,
		endpointIDs: make(map[string]string),
		keyIDs:      make(map[string]string),
		campaignIDs: make(map[string]string),
		keySecrets:  make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^an apidash server is running$`, s.anApidashServerIsRunning)
	sc.Step(`^I am authenticated as "([^"]*)"$`, s.iAmAuthenticatedAs)
	sc.Step(`^I am not authenticated$`, s.iAmNotAuthenticated)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)

	// Endpoint steps
	sc.Step(`^I create an endpoint named "([^"]*)" at "([^"]*)" with method "([^"]*)"$`, s.iCreateEndpoint)
	sc.Step(`^I list my endpoints$`, s.iListEndpoints)
	sc.Step(`^I fetch the endpoint summary$`, s.iFetchEndpointSummary)
	sc.Step(`^the response should contain (\d+) items?$`, s.theResponseShouldContainItems)
	sc.Step(`^I delete the endpoint named "([^"]*)"$`, s.iDeleteEndpoint)
	sc.Step(`^I flip the status of the endpoint named "([^"]*)"$`, s.iFlipEndpointStatus)

	// API key steps
	sc.Step(`^I create an API key named "([^"]*)" in environment "([^"]*)"$`, s.iCreateAPIKey)
	sc.Step(`^the response secret should start with "([^"]*)"$`, s.theResponseSecretShouldStartWith)
	sc.Step(`^I list my API keys$`, s.iListAPIKeys)
	sc.Step(`^no key in the response should include a secret$`, s.noKeyShouldIncludeSecret)
	sc.Step(`^I revoke the API key named "([^"]*)"$`, s.iRevokeAPIKey)

	// Campaign steps
	sc.Step(`^I create a campaign named "([^"]*)"$`, s.iCreateCampaign)
	sc.Step(`^I (launch|pause|complete|approve) the campaign named "([^"]*)"$`, s.iActOnCampaign)
	sc.Step(`^I record (\d+) impressions and (\d+) clicks on the campaign named "([^"]*)"$`, s.iRecordCampaignMetrics)
	sc.Step(`^the campaign named "([^"]*)" should have status "([^"]*)"$`, s.campaignShouldHaveStatus)
	sc.Step(`^the campaign named "([^"]*)" should have click-through rate (\d+\.?\d*)$`, s.campaignShouldHaveCTR)
}

// Background steps

func (s *StepsContext) anApidashServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) iAmAuthenticatedAs(login string) error {
	s.userID = uuid.New()
	token, err := s.tc.Authenticator.Mint(s.userID, login, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to mint token: %w", err)
	}
	s.authToken = token
	return nil
}

func (s *StepsContext) iAmNotAuthenticated() error {
	s.authToken = ""
	return nil
}

// HTTP plumbing

func (s *StepsContext) doRequest(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) responseObject() (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &obj); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w (body: %s)", err, s.responseBody)
	}
	return obj, nil
}

func (s *StepsContext) responseList() ([]map[string]interface{}, error) {
	var list []map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return nil, fmt.Errorf("response is not a JSON list: %w (body: %s)", err, s.responseBody)
	}
	return list, nil
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	obj, err := s.responseObject()
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", obj[field])
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, actual)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContainItems(count int) error {
	list, err := s.responseList()
	if err != nil {
		return err
	}
	if len(list) != count {
		return fmt.Errorf("expected %d items, got %d", count, len(list))
	}
	return nil
}
