package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/apidashio/apidash/pkg/model"
	"github.com/apidashio/apidash/pkg/server/store"
)

// Ensure KeysStore implements store.KeysStore
var _ store.KeysStore = (*KeysStore)(nil)

// KeysStore implements store.KeysStore using GORM
type KeysStore struct {
	db *gorm.DB
}

// NewKeysStore creates a new KeysStore
func NewKeysStore(db *gorm.DB) *KeysStore {
	return &KeysStore{db: db}
}

// ListKeys returns up to limit of the owner's keys, newest first.
func (s *KeysStore) ListKeys(ownerID uuid.UUID, limit int) ([]model.APIKey, error) {
	var keys []model.APIKey
	tx := s.db.
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Order("created_at desc").
		Limit(limit).
		Find(&keys)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return keys, nil
}

// FetchKey retrieves a single key scoped to the owner.
func (s *KeysStore) FetchKey(ownerID, id uuid.UUID) (*model.APIKey, error) {
	var key model.APIKey
	tx := s.db.
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		First(&key)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &key, nil
}

// CreateKey inserts a new key row.
func (s *KeysStore) CreateKey(key *model.APIKey) error {
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	if key.Status == "" {
		key.Status = model.KeyStatusActive
	}
	return s.db.Create(key).Error
}

// UpdateKey applies a partial update constrained by id and owner.
func (s *KeysStore) UpdateKey(ownerID, id uuid.UUID, update store.KeyUpdate) (*model.APIKey, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Scope != nil {
		fields["scope"] = *update.Scope
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if update.ExpiresAt != nil {
		fields["expires_at"] = *update.ExpiresAt
	}
	if len(fields) == 0 {
		return s.FetchKey(ownerID, id)
	}

	tx := s.db.Model(&model.APIKey{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return s.FetchKey(ownerID, id)
}

// RevokeKey sets the key's status to revoked.
func (s *KeysStore) RevokeKey(ownerID, id uuid.UUID) (*model.APIKey, error) {
	tx := s.db.Model(&model.APIKey{}).
		Where("id = ? AND owner_id = ? AND deleted_at IS NULL", id, ownerID).
		Update("status", model.KeyStatusRevoked)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return s.FetchKey(ownerID, id)
}

// DeleteKey stamps deleted_at; a repeat delete reports ErrNotFound.
func (s *KeysStore) DeleteKey(ownerID, id uuid.UUID) error {
	tx := s.db.Model(&model.APIKey{}).
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
