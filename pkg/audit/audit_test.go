package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	event := ResourceEvent{
		UserID:     "alice",
		ClientIP:   "192.168.1.1",
		Kind:       "endpoint",
		ResourceID: "9f9c1c70-73e2-4df3-a1f0-11c0c3c2b9aa",
		Operation:  "create",
		Success:    true,
	}

	logger.Log(event)

	output := buf.String()

	// Check RFC5424 format components
	if !strings.Contains(output, "apidash") {
		t.Error("Expected app name 'apidash' in output")
	}
	if !strings.Contains(output, "endpoint") {
		t.Error("Expected message ID 'endpoint' in output")
	}
	if !strings.Contains(output, "alice") {
		t.Error("Expected user in output")
	}
	if !strings.Contains(output, "192.168.1.1") {
		t.Error("Expected client IP in output")
	}
	if !strings.Contains(output, "performed create") {
		t.Error("Expected success message in output")
	}
}

func TestResourceEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     ResourceEvent
		wantMsg   string
		wantSev   Severity
		wantFac   int
		wantMsgID string
	}{
		{
			name: "successful delete",
			event: ResourceEvent{
				UserID:     "alice",
				ClientIP:   "10.0.0.1",
				Kind:       "key",
				ResourceID: "abc",
				Operation:  "delete",
				Success:    true,
			},
			wantMsg:   "performed delete",
			wantSev:   SeverityInfo,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "key",
		},
		{
			name: "failed update",
			event: ResourceEvent{
				UserID:       "alice",
				ClientIP:     "10.0.0.1",
				Kind:         "endpoint",
				ResourceID:   "abc",
				Operation:    "update",
				Success:      false,
				ErrorMessage: "not found",
			},
			wantMsg:   "tried to update",
			wantSev:   SeverityWarning,
			wantFac:   FacilityAuthPriv,
			wantMsgID: "endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.event.Message(), tt.wantMsg) {
				t.Errorf("Message() = %q, want to contain %q", tt.event.Message(), tt.wantMsg)
			}
			if tt.event.Severity() != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", tt.event.Severity(), tt.wantSev)
			}
			if tt.event.Facility() != tt.wantFac {
				t.Errorf("Facility() = %v, want %v", tt.event.Facility(), tt.wantFac)
			}
			if tt.event.MessageID() != tt.wantMsgID {
				t.Errorf("MessageID() = %v, want %v", tt.event.MessageID(), tt.wantMsgID)
			}
		})
	}
}

func TestTransitionEvent(t *testing.T) {
	event := TransitionEvent{
		UserID:     "alice",
		ClientIP:   "10.0.0.1",
		CampaignID: "abc",
		Action:     "launch",
		Status:     "running",
		Success:    true,
	}

	if !strings.Contains(event.Message(), "performed launch") {
		t.Errorf("Message() = %q, want launch message", event.Message())
	}
	sd := event.StructuredData()
	if sd[SDIDSubject]["status"] != "running" {
		t.Errorf("StructuredData() status = %q, want %q", sd[SDIDSubject]["status"], "running")
	}

	failed := TransitionEvent{
		UserID:       "alice",
		CampaignID:   "abc",
		Action:       "complete",
		Success:      false,
		ErrorMessage: "invalid status transition",
	}
	if failed.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", failed.Severity(), SeverityWarning)
	}
	if _, ok := failed.StructuredData()[SDIDSubject]["status"]; ok {
		t.Error("StructuredData() should omit status on failure")
	}
}

func TestProbeEvent(t *testing.T) {
	event := ProbeEvent{
		UserID:       "alice",
		ClientIP:     "10.0.0.1",
		EndpointID:   "abc",
		Target:       "https://upstream.example.com/api/v1/widgets",
		Healthy:      false,
		ErrorMessage: "connection refused",
	}

	if !strings.Contains(event.Message(), "unhealthy") {
		t.Errorf("Message() = %q, want unhealthy message", event.Message())
	}
	if event.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", event.Severity(), SeverityWarning)
	}
	if event.StructuredData()[SDIDAction]["result"] != "unhealthy" {
		t.Error("StructuredData() result should be unhealthy")
	}
}
