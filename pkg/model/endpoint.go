package model

import (
	"time"

	"github.com/google/uuid"
)

// Endpoint statuses
const (
	EndpointStatusActive   = "active"
	EndpointStatusInactive = "inactive"
)

// Endpoint represents a managed API endpoint row.
type Endpoint struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`

	Name   string `gorm:"column:name;not null" json:"name"`
	Path   string `gorm:"column:path;not null" json:"path"`
	Method string `gorm:"column:method;not null" json:"method"`
	Status string `gorm:"column:status;not null" json:"status"`

	// RateLimit is requests per minute; 0 means unlimited.
	RateLimit     int     `gorm:"column:rate_limit" json:"rate_limit"`
	TotalRequests int64   `gorm:"column:total_requests" json:"total_requests"`
	AvgLatencyMs  float64 `gorm:"column:avg_latency_ms" json:"avg_latency_ms"`
	ErrorRate     float64 `gorm:"column:error_rate" json:"error_rate"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"-"`
}

func (Endpoint) TableName() string {
	return "endpoints"
}

// IsActive reports whether the endpoint is live.
func (e *Endpoint) IsActive() bool {
	return e.Status == EndpointStatusActive
}
