package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

//go:generate go run github.com/dmarkham/enumer -type CampaignStatus -trimprefix CampaignStatus -transform lower -json -sql -output campaignstatus.gen.go

// CampaignStatus is the campaign lifecycle state.
type CampaignStatus int

const (
	CampaignStatusDraft CampaignStatus = iota
	CampaignStatusRunning
	CampaignStatusPaused
	CampaignStatusCompleted
)

// CanTransitionTo reports whether a caller-initiated transition from s to next
// is allowed. The lifecycle is draft -> running <-> paused, running -> completed.
// There are no automatic transitions.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	switch next {
	case CampaignStatusRunning:
		return s == CampaignStatusDraft || s == CampaignStatusPaused
	case CampaignStatusPaused:
		return s == CampaignStatusRunning
	case CampaignStatusCompleted:
		return s == CampaignStatusRunning
	}
	return false
}

// Campaign represents a campaign row with its lifecycle state and metrics.
type Campaign struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`

	Name     string         `gorm:"column:name;not null" json:"name"`
	Status   CampaignStatus `gorm:"column:status;type:text;not null" json:"status"`
	Approved bool           `gorm:"column:approved" json:"approved"`

	Impressions int64 `gorm:"column:impressions" json:"impressions"`
	Clicks      int64 `gorm:"column:clicks" json:"clicks"`
	Conversions int64 `gorm:"column:conversions" json:"conversions"`

	ClickThroughRate float64 `gorm:"column:click_through_rate" json:"click_through_rate"`
	ConversionRate   float64 `gorm:"column:conversion_rate" json:"conversion_rate"`

	LaunchedAt  *time.Time `gorm:"column:launched_at" json:"launched_at,omitempty"`
	PausedAt    *time.Time `gorm:"column:paused_at" json:"paused_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"-"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignMetrics is a partial counter update. Nil fields are left untouched.
type CampaignMetrics struct {
	Impressions *int64 `json:"impressions,omitempty"`
	Clicks      *int64 `json:"clicks,omitempty"`
	Conversions *int64 `json:"conversions,omitempty"`
}

// ApplyMetrics applies a partial counter update and recomputes derived rates.
//
// A rate is recomputed only when both its numerator and denominator are present
// in the update and the denominator is non-zero; otherwise the stored rate is
// left as-is, so a partial update can never overwrite a valid rate with a
// spurious zero.
func (c *Campaign) ApplyMetrics(m CampaignMetrics) {
	if m.Impressions != nil {
		c.Impressions = *m.Impressions
	}
	if m.Clicks != nil {
		c.Clicks = *m.Clicks
	}
	if m.Conversions != nil {
		c.Conversions = *m.Conversions
	}

	if m.Clicks != nil && m.Impressions != nil && *m.Impressions > 0 {
		c.ClickThroughRate = round2(float64(*m.Clicks) / float64(*m.Impressions) * 100)
	}
	if m.Conversions != nil && m.Clicks != nil && *m.Clicks > 0 {
		c.ConversionRate = round2(float64(*m.Conversions) / float64(*m.Clicks) * 100)
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
