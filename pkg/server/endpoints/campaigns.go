package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/apidashio/apidash/pkg/audit"
	"github.com/apidashio/apidash/pkg/config"
	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server"
	"github.com/apidashio/apidash/pkg/server/store"
)

// RegisterCampaigns registers the /campaigns routes
func RegisterCampaigns(s *server.Server) {
	campaignsStore := s.CampaignsStore
	auditor := s.Auditor
	cfg := s.Config

	router := s.Router.PathPrefix("/campaigns").Subrouter()
	router.Use(s.Authenticator.Middleware)

	// GET /campaigns - List the caller's campaigns
	router.HandleFunc("", handleListCampaigns(campaignsStore, cfg)).Methods("GET")

	// POST /campaigns - Create a campaign in draft status
	router.HandleFunc("", handleCreateCampaign(campaignsStore, auditor, cfg)).Methods("POST")

	// PATCH /campaigns/{id} - Partial update
	router.HandleFunc("/{id}", handleUpdateCampaign(campaignsStore, auditor, cfg)).Methods("PATCH")

	// DELETE /campaigns/{id} - Soft delete
	router.HandleFunc("/{id}", handleDeleteCampaign(campaignsStore, auditor, cfg)).Methods("DELETE")

	// POST /campaigns/{id}/launch|pause|complete - Lifecycle transitions
	router.HandleFunc("/{id}/launch", handleTransitionCampaign(campaignsStore, auditor, cfg, "launch", model.CampaignStatusRunning)).Methods("POST")
	router.HandleFunc("/{id}/pause", handleTransitionCampaign(campaignsStore, auditor, cfg, "pause", model.CampaignStatusPaused)).Methods("POST")
	router.HandleFunc("/{id}/complete", handleTransitionCampaign(campaignsStore, auditor, cfg, "complete", model.CampaignStatusCompleted)).Methods("POST")

	// POST /campaigns/{id}/approve - Set the approve flag (once)
	router.HandleFunc("/{id}/approve", handleApproveCampaign(campaignsStore, auditor, cfg)).Methods("POST")

	// PATCH /campaigns/{id}/metrics - Partial counter update
	router.HandleFunc("/{id}/metrics", handleUpdateCampaignMetrics(campaignsStore, auditor, cfg)).Methods("PATCH")
}

func handleListCampaigns(campaignsStore store.CampaignsStore, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		campaigns, err := campaignsStore.ListCampaigns(id.UserID, pageSize(cfg))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		respondWithJSON(w, http.StatusOK, campaigns)
	}
}

type campaignRequest struct {
	Name string `json:"name"`
}

func handleCreateCampaign(campaignsStore store.CampaignsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		var req campaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		if req.Name == "" {
			respondWithError(w, http.StatusUnprocessableEntity, map[string]string{"message": "name is required"})
			return
		}

		campaign := &model.Campaign{
			OwnerID: id.UserID,
			Name:    req.Name,
		}

		if err := campaignsStore.CreateCampaign(campaign); err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "campaign",
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
			Kind:       "campaign",
			ResourceID: campaign.ID.String(),
			Operation:  "create",
			Success:    true,
		})
		respondWithJSON(w, http.StatusCreated, campaign)
	}
}

type campaignUpdateRequest struct {
	Name *string `json:"name"`
}

func handleUpdateCampaign(campaignsStore store.CampaignsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		campaignID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed campaign id"})
			return
		}

		var req campaignUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		campaign, err := campaignsStore.UpdateCampaign(id.UserID, campaignID, store.CampaignUpdate{Name: req.Name})
		if err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "campaign",
				ResourceID:   campaignID.String(),
				Operation:    "update",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "campaign not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "campaign",
			ResourceID: campaignID.String(),
			Operation:  "update",
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, campaign)
	}
}

func handleDeleteCampaign(campaignsStore store.CampaignsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		campaignID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed campaign id"})
			return
		}

		if err := campaignsStore.DeleteCampaign(id.UserID, campaignID); err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "campaign",
				ResourceID:   campaignID.String(),
				Operation:    "delete",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "campaign not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "campaign",
			ResourceID: campaignID.String(),
			Operation:  "delete",
			Success:    true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleTransitionCampaign(campaignsStore store.CampaignsStore, auditor audit.Auditor, cfg *config.DashConfig, action string, to model.CampaignStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		campaignID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed campaign id"})
			return
		}

		campaign, err := campaignsStore.TransitionCampaign(id.UserID, campaignID, to)
		if err != nil {
			auditor.Log(audit.TransitionEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				CampaignID:   campaignID.String(),
				Action:       action,
				Success:      false,
				ErrorMessage: err.Error(),
			})
			switch {
			case errors.Is(err, store.ErrNotFound):
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "campaign not found"})
			case errors.Is(err, store.ErrInvalidTransition):
				respondWithError(w, http.StatusUnprocessableEntity, map[string]string{"message": err.Error()})
			default:
				respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			}
			return
		}

		auditor.Log(audit.TransitionEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			CampaignID: campaignID.String(),
			Action:     action,
			Status:     campaign.Status.String(),
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, campaign)
	}
}

func handleApproveCampaign(campaignsStore store.CampaignsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		campaignID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed campaign id"})
			return
		}

		campaign, err := campaignsStore.ApproveCampaign(id.UserID, campaignID)
		if err != nil {
			auditor.Log(audit.TransitionEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				CampaignID:   campaignID.String(),
				Action:       "approve",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			switch {
			case errors.Is(err, store.ErrNotFound):
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "campaign not found"})
			case errors.Is(err, store.ErrAlreadyApproved):
				respondWithError(w, http.StatusUnprocessableEntity, map[string]string{"message": err.Error()})
			default:
				respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			}
			return
		}

		auditor.Log(audit.TransitionEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			CampaignID: campaignID.String(),
			Action:     "approve",
			Status:     campaign.Status.String(),
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, campaign)
	}
}

func handleUpdateCampaignMetrics(campaignsStore store.CampaignsStore, auditor audit.Auditor, cfg *config.DashConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := callerIdentity(w, r)
		if !ok {
			return
		}

		campaignID, err := uuid.Parse(mux.Vars(r)["id"])
		if err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed campaign id"})
			return
		}

		var metrics model.CampaignMetrics
		if err := json.NewDecoder(r.Body).Decode(&metrics); err != nil {
			respondWithError(w, http.StatusBadRequest, map[string]string{"message": "malformed request body"})
			return
		}

		campaign, err := campaignsStore.UpdateCampaignMetrics(id.UserID, campaignID, metrics)
		if err != nil {
			auditor.Log(audit.ResourceEvent{
				UserID:       id.Login,
				ClientIP:     clientIP(r, cfg),
				Kind:         "campaign",
				ResourceID:   campaignID.String(),
				Operation:    "metrics",
				Success:      false,
				ErrorMessage: err.Error(),
			})
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, map[string]string{"message": "campaign not found"})
				return
			}
			respondWithError(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
			return
		}

		auditor.Log(audit.ResourceEvent{
			UserID:     id.Login,
			ClientIP:   clientIP(r, cfg),
			Kind:       "campaign",
			ResourceID: campaignID.String(),
			Operation:  "metrics",
			Success:    true,
		})
		respondWithJSON(w, http.StatusOK, campaign)
	}
}
