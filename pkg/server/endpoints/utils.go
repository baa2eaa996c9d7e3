package endpoints

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/identity"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// callerIdentity resolves the authenticated identity from the request
// context. A missing identity is rejected before any store access.
func callerIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok || id == nil {
		respondWithError(w, http.StatusUnauthorized, map[string]string{
			"message": "authentication required",
		})
		return nil, false
	}
	return id, true
}

// clientIP resolves the caller's address for audit records. X-Forwarded-For
// is honored only when the direct peer is a trusted proxy.
func clientIP(r *http.Request, cfg *config.DashConfig) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" && cfg != nil && cfg.IsTrustedProxy(host) {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return host
}
