package store

import (
	"github.com/google/uuid"

	"github.com/apidashio/apidash/pkg/model"
)

// CampaignUpdate is a partial update; nil fields are left untouched.
// Status and metrics are not updatable here: transitions go through
// TransitionCampaign and counters through UpdateCampaignMetrics.
type CampaignUpdate struct {
	Name *string
}

// CampaignsStore abstracts campaign row operations, scoped to the owner and
// excluding soft-deleted rows.
type CampaignsStore interface {
	// ListCampaigns returns up to limit of the owner's campaigns, newest first.
	ListCampaigns(ownerID uuid.UUID, limit int) ([]model.Campaign, error)

	// FetchCampaign retrieves a single campaign.
	// Returns ErrNotFound if the row doesn't exist or isn't owned by ownerID.
	FetchCampaign(ownerID, id uuid.UUID) (*model.Campaign, error)

	// CreateCampaign inserts a new campaign row in draft status.
	CreateCampaign(campaign *model.Campaign) error

	// UpdateCampaign applies a partial update and returns the updated row.
	UpdateCampaign(ownerID, id uuid.UUID, update CampaignUpdate) (*model.Campaign, error)

	// TransitionCampaign moves the campaign to the given status and stamps the
	// corresponding timestamp field in the same write. Returns
	// ErrInvalidTransition if the current status does not allow the move.
	TransitionCampaign(ownerID, id uuid.UUID, to model.CampaignStatus) (*model.Campaign, error)

	// ApproveCampaign sets the approved flag. The flag is settable once;
	// approving an approved campaign returns ErrAlreadyApproved.
	ApproveCampaign(ownerID, id uuid.UUID) (*model.Campaign, error)

	// UpdateCampaignMetrics applies a partial counter update, recomputing
	// derived rates per model.Campaign.ApplyMetrics.
	UpdateCampaignMetrics(ownerID, id uuid.UUID, metrics model.CampaignMetrics) (*model.Campaign, error)

	// DeleteCampaign soft-deletes the row by stamping deleted_at.
	DeleteCampaign(ownerID, id uuid.UUID) error
}
