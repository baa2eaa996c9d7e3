package endpoints

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/apidashio/apidash/pkg/audit"
	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server"
	"github.com/apidashio/apidash/pkg/server/store"
)

// RegisterKeys registers the /keys routes
func RegisterKeys(s *server.Server) {
	keysStore := s.KeysStore
	auditor := s.Auditor
	cfg := s.Config

	router := s.Router.PathPrefix("/keys").Subrouter()
	router.Use(s.Authenticator.Middleware)

	// GET /keys - List the caller's keys (secrets stripped)
	router.HandleFunc("", handleListKeys(keysStore, cfg)).Methods("GET")

	// POST /keys - Create a key; the generated secret is returned once
	router.HandleFunc("", handleCreateKey(keysStore, auditor, cfg)).Methods("POST")

	// PATCH /keys/{id} - Partial update
	router.HandleFunc("/{id}", handleUpdateKey(keysStore, auditor, cfg)).Methods("PATCH")

	// DELETE /keys/{id} - Soft delete
	router.HandleFunc("/{id}", handleDeleteKey(keysStore, auditor, cfg)).Methods("DELETE")

	// POST /keys/{id}/revoke - Set status to revoked
	router.HandleFunc("/{id}/revoke", handleRevokeKey(keysStore, auditor, cfg)).Methods("POST")
}

// generateKeySecret produces the opaque key material. The environment picks
// the prefix so a leaked production key is recognizable at a glance.
func generateKeySecret(environment string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	prefix := "ak_test_"
	switch environment {
	case model.KeyEnvProduction:
		prefix = "ak_live_"
	case model.KeyEnvDevelopment:
		prefix = "ak_dev_"
	}
	return prefix + hex.EncodeToString(raw), nil
}

func validKeyEnvironment(environment string) bool {
	switch environment {
	case model.KeyEnvProduction, model.KeyEnvStaging, model.KeyEnvDevelopment:
		return true
	}
	return false
}

func handleListKeys(keysStore store.KeysStore, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		keys, err := keysStore.ListKeys(id.UserID, pageSize(cfg))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		// The secret is returned once at creation, never on list.
		for i := range keys {
			keys[i].Secret = ""
		}
		respondWithJSON(w, http.StatusOK, keys)
	}
}

type keyRequest struct {
	Name        string     `json:"name"`
	Scope       string     `json:"scope"`
	Environment string     `json:"environment"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

func handleCreateKey(keysStore store.KeysStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		var req keyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		if req.Name == "" {
			respondWithError(w, http.StatusUnprocessableEntity, map[string]string{"message": "name is required"})
			return
		}
		if req.Environment == "" {
			req.Environment = model.KeyEnvDevelopment
		}
		if !validKeyEnvironment(req.Environment) {
			respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
				"message": fmt.Sprintf("invalid key environment: %s", req.Environment),
			})
			return
		}

		secret, err := generateKeySecret(req.Environment)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		key := &model.APIKey{
			OwnerID:     id.UserID,
			Name:        req.Name,
			Scope:       req.Scope,
			Environment: req.Environment,
			Secret:      secret,
			ExpiresAt:   req.ExpiresAt,
		}

		if err := keysStore.CreateKey(key); err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "key",
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
			Kind:       "key",
			ResourceID: key.ID.String(),
			Operation:  "create",
			Success:    true,
		})
		respondWithJSON(w, http.StatusCreated, key)
	}
}

type keyUpdateRequest struct {
	Name      *string    `json:"name"`
	Scope     *string    `json:"scope"`
	Status    *string    `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func handleUpdateKey(keysStore store.KeysStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		keyID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed key id"})
			return
		}

		var req keyUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		if req.Status != nil && *req.Status != model.KeyStatusActive && *req.Status != model.KeyStatusRevoked {
			respondWithError(w, http.StatusUnprocessableEntity, map[string]string{
				"message": fmt.Sprintf("invalid key status: %s", *req.Status),
			})
			return
		}

		key, err := keysStore.UpdateKey(id.UserID, keyID, store.KeyUpdate{
			Name:      req.Name,
			Scope:     req.Scope,
			Status:    req.Status,
			ExpiresAt: req.ExpiresAt,
		})
		if err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "key",
				ResourceID:   keyID.String(),
				Operation:    "update",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "key not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		key.Secret = ""
		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "key",
			ResourceID: keyID.String(),
			Operation:  "update",
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, key)
	}
}

func handleDeleteKey(keysStore store.KeysStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		keyID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed key id"})
			return
		}

		if err := keysStore.DeleteKey(id.UserID, keyID); err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "key",
				ResourceID:   keyID.String(),
				Operation:    "delete",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "key not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "key",
			ResourceID: keyID.String(),
			Operation:  "delete",
			Success:    true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRevokeKey(keysStore store.KeysStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		keyID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed key id"})
			return
		}

		key, err := keysStore.RevokeKey(id.UserID, keyID)
		if err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "key",
				ResourceID:   keyID.String(),
				Operation:    "revoke",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "key not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		key.Secret = ""
		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "key",
			ResourceID: keyID.String(),
			Operation:  "revoke",
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, key)
	}
}
