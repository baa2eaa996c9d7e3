package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/apidashio/apidash/pkg/audit"
	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server"
	"github.com/apidashio/apidash/pkg/server/store"
)

// EndpointSummary aggregates the caller's endpoint rows. Values are computed
// from a fresh list on every request, never cached.
type EndpointSummary struct {
	Count         int     `json:"count"`
	ActiveCount   int     `json:"active_count"`
	TotalRequests int64   `json:"total_requests"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	AvgErrorRate  float64 `json:"avg_error_rate"`
}

// ProbeResult is the response body of the endpoint test action.
type ProbeResult struct {
	Healthy    bool   `json:"healthy"`
	Target     string `json:"target"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RegisterEndpoints registers the /endpoints routes
func RegisterEndpoints(s *server.Server) {
	endpointsStore := s.EndpointsStore
	auditor := s.Auditor
	cfg := s.Config

	router := s.Router.PathPrefix("/endpoints").Subrouter()
	router.Use(s.Authenticator.Middleware)

	// GET /endpoints?summary=true - Aggregate stats over the caller's endpoints
	router.HandleFunc("", handleEndpointSummary(endpointsStore, cfg)).Methods("GET").Queries("summary", "true")

	// GET /endpoints - List the caller's endpoints
	router.HandleFunc("", handleListEndpoints(endpointsStore, cfg)).Methods("GET")

	// POST /endpoints - Create an endpoint
	router.HandleFunc("", handleCreateEndpoint(endpointsStore, auditor, cfg)).Methods("POST")

	// PATCH /endpoints/{id} - Partial update
	router.HandleFunc("/{id}", handleUpdateEndpoint(endpointsStore, auditor, cfg)).Methods("PATCH")

	// DELETE /endpoints/{id} - Soft delete
	router.HandleFunc("/{id}", handleDeleteEndpoint(endpointsStore, auditor, cfg)).Methods("DELETE")

	// POST /endpoints/{id}/status - Flip active/inactive
	router.HandleFunc("/{id}/status", handleFlipEndpointStatus(endpointsStore, auditor, cfg)).Methods("POST")

	// POST /endpoints/{id}/test - Probe the endpoint's URL
	router.HandleFunc("/{id}/test", handleTestEndpoint(endpointsStore, auditor, cfg)).Methods("POST")
}

func pageSize(cfg *config.DashConfig) int {
	if cfg == nil || cfg.ResourcePageSize <= 0 {
		return 100
	}
	return cfg.ResourcePageSize
}

func handleListEndpoints(endpointsStore store.EndpointsStore, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		endpoints, err := endpointsStore.ListEndpoints(id.UserID, pageSize(cfg))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		respondWithJSON(w, http.StatusOK, endpoints)
	}
}

func handleEndpointSummary(endpointsStore store.EndpointsStore, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		endpoints, err := endpointsStore.ListEndpoints(id.UserID, pageSize(cfg))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		respondWithJSON(w, http.StatusOK, summarizeEndpoints(endpoints))
	}
}

// summarizeEndpoints computes aggregates over the given rows. An empty list
// reports zero averages, never NaN.
func summarizeEndpoints(endpoints []model.Endpoint) EndpointSummary {
	summary := EndpointSummary{Count: len(endpoints)}

	var latencySum, errorRateSum float64
	for _, e := range endpoints {
		if e.IsActive() {
			summary.ActiveCount++
		}
		summary.TotalRequests += e.TotalRequests
		latencySum += e.AvgLatencyMs
		errorRateSum += e.ErrorRate
	}
	if summary.Count > 0 {
		summary.AvgLatencyMs = latencySum / float64(summary.Count)
		summary.AvgErrorRate = errorRateSum / float64(summary.Count)
	}
	return summary
}

type endpointRequest struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	RateLimit int    `json:"rate_limit"`
}

func handleCreateEndpoint(endpointsStore store.EndpointsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		var req endpointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		if req.Name == "" || req.Path == "" || req.Method == "" {
			respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
				"message": "name, path and method are required",
			})
			return
		}

		endpoint := &model.Endpoint{
			OwnerID:   id.UserID,
			Name:      req.Name,
			Path:      req.Path,
			Method:    strings.ToUpper(req.Method),
			RateLimit: req.RateLimit,
		}

		if err := endpointsStore.CreateEndpoint(endpoint); err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "endpoint",
				Operation:    "create",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "endpoint",
			ResourceID: endpoint.ID.String(),
			Operation:  "create",
			Success:    true,
		})
		respondWithJSON(w, http.StatusCreated, endpoint)
	}
}

type endpointUpdateRequest struct {
	Name      *string `json:"name"`
	Path      *string `json:"path"`
	Method    *string `json:"method"`
	Status    *string `json:"status"`
	RateLimit *int    `json:"rate_limit"`
}

func handleUpdateEndpoint(endpointsStore store.EndpointsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		endpointID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed endpoint id"})
			return
		}

		var req endpointUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		if req.Status != nil && *req.Status != model.EndpointStatusActive && *req.Status != model.EndpointStatusInactive {
			respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
				"message": fmt.Sprintf("invalid endpoint status: %s", *req.Status),
			})
			return
		}
		if req.Method != nil {
			upper := strings.ToUpper(*req.Method)
			req.Method = &upper
		}

		endpoint, err := endpointsStore.UpdateEndpoint(id.UserID, endpointID, store.EndpointUpdate{
			Name:      req.Name,
			Path:      req.Path,
			Method:    req.Method,
			Status:    req.Status,
			RateLimit: req.RateLimit,
		})
		if err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "endpoint",
				ResourceID:   endpointID.String(),
				Operation:    "update",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "endpoint",
			ResourceID: endpointID.String(),
			Operation:  "update",
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, endpoint)
	}
}

func handleDeleteEndpoint(endpointsStore store.EndpointsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		endpointID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed endpoint id"})
			return
		}

		if err := endpointsStore.DeleteEndpoint(id.UserID, endpointID); err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "endpoint",
				ResourceID:   endpointID.String(),
				Operation:    "delete",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "endpoint",
			ResourceID: endpointID.String(),
			Operation:  "delete",
			Success:    true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleFlipEndpointStatus(endpointsStore store.EndpointsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		endpointID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed endpoint id"})
			return
		}

		endpoint, err := endpointsStore.FetchEndpoint(id.UserID, endpointID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		next := model.EndpointStatusActive
		if endpoint.IsActive() {
			next = model.EndpointStatusInactive
		}

		endpoint, err = endpointsStore.UpdateEndpoint(id.UserID, endpointID, store.EndpointUpdate{Status: &next})
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "endpoint",
			ResourceID: endpointID.String(),
			Operation:  "status",
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, endpoint)
	}
}

// handleTestEndpoint probes the endpoint's URL. The probe is fail-closed:
// only a 2xx response from the target counts as healthy, an unreachable
// target or any other status is reported unhealthy.
func handleTestEndpoint(endpointsStore store.EndpointsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		endpointID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed endpoint id"})
			return
		}

		endpoint, err := endpointsStore.FetchEndpoint(id.UserID, endpointID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "endpoint not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		baseURL := ""
		timeout := 5 * time.Second
		if cfg != nil {
			baseURL = cfg.ProbeBaseURL
			timeout = cfg.ProbeTimeoutDuration()
		}
		result := probeEndpoint(r, endpoint, baseURL, timeout)

		auditor.Log(audit.ProbeEvent{
			UserID:       id.Login,
			ClientIP:     clientIP(r, cfg),
			EndpointID:   endpointID.String(),
			Target:       result.Target,
			Healthy:      result.Healthy,
			ErrorMessage: result.Error,
		})
		respondWithJSON(w, http.StatusOK, result)
	}
}

func probeEndpoint(r *http.Request, endpoint *model.Endpoint, baseURL string, timeout time.Duration) ProbeResult {
	target := strings.TrimSuffix(baseURL, "/") + endpoint.Path
	result := ProbeResult{Target: target}

	req, err := http.NewRequestWithContext(r.Context(), endpoint.Method, target, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return result
	}

	result.Healthy = true
	return result
}
