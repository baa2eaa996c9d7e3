// Package audit provides audit logging for dashboard operations.
//
// This package implements structured audit logging for security-relevant
// operations such as resource mutations, campaign lifecycle changes, and
// endpoint health probes.
//
// # Event Types
//
// The package defines event types for various operations:
//
//   - Resource events (create/update/delete/revoke on endpoints, keys, campaigns)
//   - Campaign transition and approval events
//   - Endpoint health probe events
//
// # Usage
//
//	auditor.Log(audit.ResourceEvent{
//		UserID:     id.Login,
//		Kind:       "endpoint",
//		ResourceID: endpoint.ID.String(),
//		Operation:  "create",
//		Success:    true,
//	})
//
// Events are emitted in RFC5424 syslog format and optionally persisted to an
// audit database.
package audit
