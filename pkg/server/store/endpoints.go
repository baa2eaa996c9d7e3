package store

import (
	"github.com/google/uuid"

	"github.com/apidashio/apidash/pkg/model"
)

// EndpointUpdate is a partial update; nil fields are left untouched.
type EndpointUpdate struct {
	Name      *string
	Path      *string
	Method    *string
	Status    *string
	RateLimit *int
}

// EndpointsStore abstracts endpoint row operations. All operations are scoped
// to the owner and exclude soft-deleted rows.
type EndpointsStore interface {
	// ListEndpoints returns up to limit of the owner's endpoints, most-used
	// first.
	ListEndpoints(ownerID uuid.UUID, limit int) ([]model.Endpoint, error)

	// FetchEndpoint retrieves a single endpoint.
	// Returns ErrNotFound if the row doesn't exist or isn't owned by ownerID.
	FetchEndpoint(ownerID, id uuid.UUID) (*model.Endpoint, error)

	// CreateEndpoint inserts a new endpoint row.
	CreateEndpoint(endpoint *model.Endpoint) error

	// UpdateEndpoint applies a partial update and returns the updated row.
	UpdateEndpoint(ownerID, id uuid.UUID, update EndpointUpdate) (*model.Endpoint, error)

	// DeleteEndpoint soft-deletes the row by stamping deleted_at.
	// A second delete of the same row returns ErrNotFound.
	DeleteEndpoint(ownerID, id uuid.UUID) error
}
