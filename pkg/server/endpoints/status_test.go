package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	assertStatus(t, w, http.StatusOK)

	var got StatusResponse
	decodeBody(t, w, &got)
	assert.Equal(t, "apidash", got.Name)
	assert.NotEmpty(t, got.Version)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.Health.On("CheckConnectivity").Return(nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	assertStatus(t, w, http.StatusOK)
}

func TestHealthEndpointDatabaseDown(t *testing.T) {
	ts := newTestServer(t)
	ts.Health.On("CheckConnectivity").Return(errors.New("connection refused"))

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	assertStatus(t, w, http.StatusServiceUnavailable)

	var got HealthResponse
	decodeBody(t, w, &got)
	assert.Equal(t, "error", got.Status)
}
