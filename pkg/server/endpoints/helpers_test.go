package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apidashio/apidash/pkg/audit"
	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/server"
	"github.com/apidashio/apidash/pkg/server/middleware"
)

// testServer bundles a server wired with mock stores and a minted bearer
// token for its test user.
type testServer struct {
	*server.Server

	UserID     uuid.UUID
	AuthHeader string

	Endpoints *MockEndpointsStore
	Keys      *MockKeysStore
	Campaigns *MockCampaignsStore
	Health    *MockHealthStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	authn := middleware.NewJWTAuthenticator([]byte("test-signing-key"))
	srv := server.NewServer(authn, nil, "localhost", "0")
	srv.Config = &config.DashConfig{
		ResourcePageSize: 100,
		ProbeTimeout:     2,
	}
	srv.Auditor = audit.NopAuditor{}

	ts := &testServer{
		Server:    srv,
		UserID:    uuid.New(),
		Endpoints: NewMockEndpointsStore(),
		Keys:      NewMockKeysStore(),
		Campaigns: NewMockCampaignsStore(),
		Health:    NewMockHealthStore(),
	}
	srv.EndpointsStore = ts.Endpoints
	srv.KeysStore = ts.Keys
	srv.CampaignsStore = ts.Campaigns
	srv.HealthStore = ts.Health

	token, err := authn.Mint(ts.UserID, "alice", time.Hour)
	require.NoError(t, err)
	ts.AuthHeader = "Bearer " + token

	RegisterAll(srv)
	return ts
}

// request performs an authenticated request against the test server's router.
func (ts *testServer) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", ts.AuthHeader)
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
