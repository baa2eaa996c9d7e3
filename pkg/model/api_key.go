package model

import (
	"time"

	"github.com/google/uuid"
)

// API key statuses
const (
	KeyStatusActive  = "active"
	KeyStatusRevoked = "revoked"
)

// API key environments
const (
	KeyEnvProduction  = "production"
	KeyEnvStaging     = "staging"
	KeyEnvDevelopment = "development"
)

// APIKey represents an API key row. The Secret value is generated server-side
// at creation time and returned to the caller exactly once.
type APIKey struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`

	Name        string `gorm:"column:name;not null" json:"name"`
	Scope       string `gorm:"column:scope" json:"scope"`
	Environment string `gorm:"column:environment;not null" json:"environment"`
	Status      string `gorm:"column:status;not null" json:"status"`
	Secret      string `gorm:"column:secret;not null" json:"secret,omitempty"`

	LastUsedAt *time.Time `gorm:"column:last_used_at" json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"-"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

// IsExpired returns true if the key has an expiry that has passed.
func (k *APIKey) IsExpired() bool {
	if k.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*k.ExpiresAt)
}
