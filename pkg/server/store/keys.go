package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/apidashio/apidash/pkg/model"
)

// KeyUpdate is a partial update; nil fields are left untouched.
type KeyUpdate struct {
	Name      *string
	Scope     *string
	Status    *string
	ExpiresAt *time.Time
}

// KeysStore abstracts API key row operations, scoped to the owner and
// excluding soft-deleted rows.
type KeysStore interface {
	// ListKeys returns up to limit of the owner's keys, newest first.
	ListKeys(ownerID uuid.UUID, limit int) ([]model.APIKey, error)

	// FetchKey retrieves a single key.
	// Returns ErrNotFound if the row doesn't exist or isn't owned by ownerID.
	FetchKey(ownerID, id uuid.UUID) (*model.APIKey, error)

	// CreateKey inserts a new key row, including its generated secret.
	CreateKey(key *model.APIKey) error

	// UpdateKey applies a partial update and returns the updated row.
	UpdateKey(ownerID, id uuid.UUID, update KeyUpdate) (*model.APIKey, error)

	// RevokeKey sets the key's status to revoked.
	RevokeKey(ownerID, id uuid.UUID) (*model.APIKey, error)

	// DeleteKey soft-deletes the row by stamping deleted_at.
	DeleteKey(ownerID, id uuid.UUID) error
}
