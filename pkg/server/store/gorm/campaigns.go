package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server/store"
)

// Ensure CampaignsStore implements store.CampaignsStore
var _ store.CampaignsStore = (*CampaignsStore)(nil)

// CampaignsStore implements store.CampaignsStore using GORM
type CampaignsStore struct {
	db *gorm.DB
}

// NewCampaignsStore creates a new CampaignsStore
func NewCampaignsStore(db *gorm.DB) *CampaignsStore {
	return &CampaignsStore{db: db}
}

// ListCampaigns returns up to limit of the owner's campaigns, newest first.
func (s *CampaignsStore) ListCampaigns(ownerID uuid.UUID, limit int) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	tx := s.db.
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Order("created_at desc").
		Limit(limit).
		Find(&campaigns)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return campaigns, nil
}

// FetchCampaign retrieves a single campaign scoped to the owner.
func (s *CampaignsStore) FetchCampaign(ownerID, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	tx := s.db.
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		First(&campaign)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &campaign, nil
}

// CreateCampaign inserts a new campaign row in draft status.
func (s *CampaignsStore) CreateCampaign(campaign *model.Campaign) error {
	if campaign.ID == uuid.Nil {
		campaign.ID = uuid.New()
	}
	campaign.Status = model.CampaignStatusDraft
	return s.db.Create(campaign).Error
}

// UpdateCampaign applies a partial update constrained by id and owner.
func (s *CampaignsStore) UpdateCampaign(ownerID, id uuid.UUID, update store.CampaignUpdate) (*model.Campaign, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if len(fields) == 0 {
		return s.FetchCampaign(ownerID, id)
	}

	tx := s.db.Model(&model.Campaign{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return s.FetchCampaign(ownerID, id)
}

// transitionStamp maps a target status to the timestamp column set in the
// same write as the status change.
func transitionStamp(to model.CampaignStatus) string {
	switch to {
	case model.CampaignStatusRunning:
		return "launched_at"
	case model.CampaignStatusPaused:
		return "paused_at"
	case model.CampaignStatusCompleted:
		return "completed_at"
	}
	return ""
}

// TransitionCampaign moves the campaign to the given status. The statement's
// status filter enforces the lifecycle: only rows currently in a status that
// allows the move are touched, so a concurrent transition can never double-fire.
func (s *CampaignsStore) TransitionCampaign(ownerID, id uuid.UUID, to model.CampaignStatus) (*model.Campaign, error) {
	stamp := transitionStamp(to)
	if stamp == "" {
		return nil, store.ErrInvalidTransition
	}

	var from []model.CampaignStatus
	for _, status := range model.CampaignStatusValues() {
		if status.CanTransitionTo(to) {
			from = append(from, status)
		}
	}

	tx := s.db.Model(&model.Campaign{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL AND status IN ?", id, ownerID, from).
		Updates(map[string]interface{}{
			"status": to,
			stamp:    time.Now(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		// Distinguish a missing/foreign row from a row in the wrong status.
		if _, err := s.FetchCampaign(ownerID, id); err != nil {
			return nil, err
		}
		return nil, store.ErrInvalidTransition
	}

	return s.FetchCampaign(ownerID, id)
}

// ApproveCampaign sets the approved flag once.
func (s *CampaignsStore) ApproveCampaign(ownerID, id uuid.UUID) (*model.Campaign, error) {
	tx := s.db.Model(&model.Campaign{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL AND approved = ?", id, ownerID, false).
		Updates(map[string]interface{}{
			"approved":    true,
			"approved_at": time.Now(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		if _, err := s.FetchCampaign(ownerID, id); err != nil {
			return nil, err
		}
		return nil, store.ErrAlreadyApproved
	}

	return s.FetchCampaign(ownerID, id)
}

// UpdateCampaignMetrics applies a partial counter update and persists the
// counters together with any recomputed rates.
func (s *CampaignsStore) UpdateCampaignMetrics(ownerID, id uuid.UUID, metrics model.CampaignMetrics) (*model.Campaign, error) {
	campaign, err := s.FetchCampaign(ownerID, id)
	if err != nil {
		return nil, err
	}

	campaign.ApplyMetrics(metrics)

	tx := s.db.Model(&model.Campaign{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Updates(map[string]interface{}{
			"impressions":        campaign.Impressions,
			"clicks":             campaign.Clicks,
			"conversions":        campaign.Conversions,
			"click_through_rate": campaign.ClickThroughRate,
			"conversion_rate":    campaign.ConversionRate,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return campaign, nil
}

// DeleteCampaign stamps deleted_at; a repeat delete reports ErrNotFound.
func (s *CampaignsStore) DeleteCampaign(ownerID, id uuid.UUID) error {
	tx := s.db.Model(&model.Campaign{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Update("deleted_at", time.Now())
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
