package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server/store"
)

// Ensure EndpointsStore implements store.EndpointsStore
var _ store.EndpointsStore = (*EndpointsStore)(nil)

// EndpointsStore implements store.EndpointsStore using GORM
type EndpointsStore struct {
	db *gorm.DB
}

// NewEndpointsStore creates a new EndpointsStore
func NewEndpointsStore(db *gorm.DB) *EndpointsStore {
	return &EndpointsStore{db: db}
}

// ListEndpoints returns up to limit of the owner's endpoints, most-used first.
func (s *EndpointsStore) ListEndpoints(ownerID uuid.UUID, limit int) ([]model.Endpoint, error) {
	var endpoints []model.Endpoint
	tx := s.db.
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Order("total_requests desc").
		Limit(limit).
		Find(&endpoints)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return endpoints, nil
}

// FetchEndpoint retrieves a single endpoint scoped to the owner.
func (s *EndpointsStore) FetchEndpoint(ownerID, id uuid.UUID) (*model.Endpoint, error) {
	var endpoint model.Endpoint
	tx := s.db.
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		First(&endpoint)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &endpoint, nil
}

// CreateEndpoint inserts a new endpoint row.
func (s *EndpointsStore) CreateEndpoint(endpoint *model.Endpoint) error {
	if endpoint.ID == uuid.Nil {
		endpoint.ID = uuid.New()
	}
	if endpoint.Status == "" {
		endpoint.Status = model.EndpointStatusActive
	}
	return s.db.Create(endpoint).Error
}

// UpdateEndpoint applies a partial update constrained by id and owner.
func (s *EndpointsStore) UpdateEndpoint(ownerID, id uuid.UUID, update store.EndpointUpdate) (*model.Endpoint, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Path != nil {
		fields["path"] = *update.Path
	}
	if update.Method != nil {
		fields["method"] = *update.Method
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.RateLimit != nil {
		fields["rate_limit"] = *update.RateLimit
	}
	if len(fields) == 0 {
		return s.FetchEndpoint(ownerID, id)
	}

	tx := s.db.Model(&model.Endpoint{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return s.FetchEndpoint(ownerID, id)
}

// DeleteEndpoint stamps deleted_at. The filter excludes already-deleted rows,
// so a repeat delete reports ErrNotFound and the first stamp is preserved.
func (s *EndpointsStore) DeleteEndpoint(ownerID, id uuid.UUID) error {
	tx := s.db.Model(&model.Endpoint{}).
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
