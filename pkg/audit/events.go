package audit

import "fmt"

// ResourceEvent represents a mutation on an owner-scoped resource row.
type ResourceEvent struct {
	UserID       string
	ClientIP     string
	Kind         string // "endpoint", "key", "campaign"
	ResourceID   string
	Operation    string // "create", "update", "delete", "revoke"
	Success      bool
	ErrorMessage string
}

func (e ResourceEvent) MessageID() string {
	return e.Kind
}

func (e ResourceEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on %s %s", e.UserID, e.Operation, e.Kind, e.ResourceID)
	}
	msg := fmt.Sprintf("%s tried to %s %s %s", e.UserID, e.Operation, e.Kind, e.ResourceID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ResourceEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ResourceEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ResourceEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"kind":     e.Kind,
			"resource": e.ResourceID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result,
		},
	}
}

// TransitionEvent represents a campaign lifecycle change or approval.
type TransitionEvent struct {
	UserID       string
	ClientIP     string
	CampaignID   string
	Action       string // "launch", "pause", "complete", "approve"
	Status       string // resulting status, empty on failure
	Success      bool
	ErrorMessage string
}

func (e TransitionEvent) MessageID() string {
	return "campaign"
}

func (e TransitionEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on campaign %s", e.UserID, e.Action, e.CampaignID)
	}
	msg := fmt.Sprintf("%s tried to %s campaign %s", e.UserID, e.Action, e.CampaignID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e TransitionEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e TransitionEvent) Facility() int {
	return FacilityAuthPriv
}

func (e TransitionEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"kind":     "campaign",
			"resource": e.CampaignID,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Action,
			"result":    result,
		},
	}
	if e.Status != "" {
		sd[SDIDSubject]["status"] = e.Status
	}
	return sd
}

// ProbeEvent represents an endpoint health probe.
type ProbeEvent struct {
	UserID       string
	ClientIP     string
	EndpointID   string
	Target       string
	Healthy      bool
	ErrorMessage string
}

func (e ProbeEvent) MessageID() string {
	return "probe"
}

func (e ProbeEvent) Message() string {
	if e.Healthy {
		return fmt.Sprintf("%s probed endpoint %s: healthy", e.UserID, e.EndpointID)
	}
	msg := fmt.Sprintf("%s probed endpoint %s: unhealthy", e.UserID, e.EndpointID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e ProbeEvent) Severity() Severity {
	if e.Healthy {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e ProbeEvent) Facility() int {
	return FacilityAuth
}

func (e ProbeEvent) StructuredData() map[string]map[string]string {
	result := "healthy"
	if !e.Healthy {
		result = "unhealthy"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"kind":     "endpoint",
			"resource": e.EndpointID,
			"target":   e.Target,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "probe",
			"result":    result,
		},
	}
}
