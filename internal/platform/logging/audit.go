package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes an action on a lead, conversation or consent record.
// Details must never carry submitted field values.
type AuditEvent struct {
	Action       string
	Actor        string
	ResourceType string
	ResourceID   string
	Result       string
	Details      map[string]any
}

// LogAuditEvent writes e at info level under the audit.* keys.
func LogAuditEvent(ctx context.Context, e AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", e.Action),
		zap.String("audit.actor", e.Actor),
		zap.String("audit.resource_type", e.ResourceType),
		zap.String("audit.resource_id", e.ResourceID),
		zap.String("audit.result", e.Result),
	}
	if len(e.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", e.Details))
	}
	LoggerFromContext(ctx).Info("audit event", fields...)
}
