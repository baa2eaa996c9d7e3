package endpoints

import (
	"net/http"
	"os"

	"github.com/apidashio/apidash/pkg/server"
	"github.com/apidashio/apidash/pkg/server/store"
)

// StatusResponse is returned from the root status endpoint.
type StatusResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned from /health.
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RegisterStatus registers the status and health endpoints. Both are
// unauthenticated so load balancers can reach them.
func RegisterStatus(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus()).Methods("GET")
	s.Router.HandleFunc("/health", handleHealth(s.HealthStore)).Methods("GET")
}

func handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("APIDASH_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Name:    "apidash",
			Version: version,
		})
	}
}

func handleHealth(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
