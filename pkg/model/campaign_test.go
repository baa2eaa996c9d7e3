package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 {
	return &v
}

func TestCampaignStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    CampaignStatus
		to      CampaignStatus
		allowed bool
	}{
		{"launch from draft", CampaignStatusDraft, CampaignStatusRunning, true},
		{"pause while running", CampaignStatusRunning, CampaignStatusPaused, true},
		{"resume from paused", CampaignStatusPaused, CampaignStatusRunning, true},
		{"complete while running", CampaignStatusRunning, CampaignStatusCompleted, true},
		{"complete from draft", CampaignStatusDraft, CampaignStatusCompleted, false},
		{"complete while paused", CampaignStatusPaused, CampaignStatusCompleted, false},
		{"pause from draft", CampaignStatusDraft, CampaignStatusPaused, false},
		{"relaunch after completion", CampaignStatusCompleted, CampaignStatusRunning, false},
		{"back to draft", CampaignStatusRunning, CampaignStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCampaignStatusStrings(t *testing.T) {
	assert.Equal(t, "draft", CampaignStatusDraft.String())
	assert.Equal(t, "running", CampaignStatusRunning.String())
	assert.Equal(t, "paused", CampaignStatusPaused.String())
	assert.Equal(t, "completed", CampaignStatusCompleted.String())

	parsed, err := CampaignStatusString("paused")
	assert.NoError(t, err)
	assert.Equal(t, CampaignStatusPaused, parsed)

	_, err = CampaignStatusString("archived")
	assert.Error(t, err)
}

func TestApplyMetricsComputesRates(t *testing.T) {
	c := &Campaign{}
	c.ApplyMetrics(CampaignMetrics{
		Impressions: int64p(1000),
		Clicks:      int64p(45),
		Conversions: int64p(9),
	})

	assert.Equal(t, int64(1000), c.Impressions)
	assert.Equal(t, int64(45), c.Clicks)
	assert.Equal(t, int64(9), c.Conversions)
	assert.Equal(t, 4.5, c.ClickThroughRate)
	assert.Equal(t, 20.0, c.ConversionRate)
}

func TestApplyMetricsRoundsToTwoDecimals(t *testing.T) {
	c := &Campaign{}
	c.ApplyMetrics(CampaignMetrics{
		Impressions: int64p(3000),
		Clicks:      int64p(100),
	})

	// 100/3000*100 = 3.3333...
	assert.Equal(t, 3.33, c.ClickThroughRate)
}

func TestApplyMetricsPreservesRateWhenDenominatorMissing(t *testing.T) {
	c := &Campaign{
		Impressions:      1000,
		Clicks:           45,
		ClickThroughRate: 4.5,
		ConversionRate:   20.0,
	}

	// Update sets conversions but omits clicks: conversion_rate must not be
	// recomputed and click_through_rate must not change.
	c.ApplyMetrics(CampaignMetrics{Conversions: int64p(12)})

	assert.Equal(t, int64(12), c.Conversions)
	assert.Equal(t, 4.5, c.ClickThroughRate)
	assert.Equal(t, 20.0, c.ConversionRate)
}

func TestApplyMetricsPreservesRateWhenDenominatorZero(t *testing.T) {
	c := &Campaign{ClickThroughRate: 4.5}

	c.ApplyMetrics(CampaignMetrics{
		Impressions: int64p(0),
		Clicks:      int64p(0),
	})

	assert.Equal(t, 4.5, c.ClickThroughRate, "zero denominator must not zero the stored rate")
}
