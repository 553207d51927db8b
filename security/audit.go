package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/giantswarm/oauth-clients/instrumentation"
)

// Auditor handles sign-in audit logging with PII protection.
// Email addresses are only ever logged as truncated SHA-256 hashes.
type Auditor struct {
	logger  *slog.Logger
	enabled bool
	metrics *instrumentation.Metrics
}

// NewAuditor creates a new sign-in auditor
func NewAuditor(logger *slog.Logger, enabled bool) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		logger:  logger,
		enabled: enabled,
	}
}

// SetInstrumentation counts every logged event in inst's audit metric.
func (a *Auditor) SetInstrumentation(inst *instrumentation.Instrumentation) {
	if inst != nil {
		a.metrics = inst.Metrics()
	}
}

// Event represents a sign-in audit event
type Event struct {
	Type      string
	Provider  string
	Operation string
	Email     string // hashed before logging
	ErrorKind string
	Status    int
	Details   map[string]any
	Timestamp time.Time
}

// LogEvent logs an audit event with hashed PII. The request ID stored in ctx,
// if any, is included for correlation.
func (a *Auditor) LogEvent(ctx context.Context, event Event) {
	if !a.enabled {
		return
	}

	event.Timestamp = time.Now()

	attrs := []any{
		"event_type", event.Type,
		"provider", event.Provider,
		"timestamp", event.Timestamp,
	}
	if event.Operation != "" {
		attrs = append(attrs, "operation", event.Operation)
	}
	if event.Email != "" {
		attrs = append(attrs, "email_hash", hashForLogging(event.Email))
	}
	if event.ErrorKind != "" {
		attrs = append(attrs, "error_kind", event.ErrorKind)
	}
	if event.Status != 0 {
		attrs = append(attrs, "status", event.Status)
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	if len(event.Details) > 0 {
		attrs = append(attrs, "details", event.Details)
	}

	a.logger.InfoContext(ctx, "sign_in_audit", attrs...)

	if a.metrics != nil {
		a.metrics.RecordAuditEvent(ctx, event.Type)
	}
}

// LogProviderCall logs the outcome of one provider client operation.
// email is set only for a successful email lookup.
func (a *Auditor) LogProviderCall(ctx context.Context, provider, operation, email, errorKind string, status int) {
	eventType := EventProviderCallSucceeded
	if errorKind != "" {
		eventType = EventProviderCallFailed
	}
	a.LogEvent(ctx, Event{
		Type:      eventType,
		Provider:  provider,
		Operation: operation,
		Email:     email,
		ErrorKind: errorKind,
		Status:    status,
	})
}

// LogSignInStarted logs when a user is sent to the provider's authorization page
func (a *Auditor) LogSignInStarted(ctx context.Context, provider string) {
	a.LogEvent(ctx, Event{
		Type:     EventSignInStarted,
		Provider: provider,
	})
}

// LogSignInCompleted logs a completed sign-in
func (a *Auditor) LogSignInCompleted(ctx context.Context, provider, email string) {
	a.LogEvent(ctx, Event{
		Type:     EventSignInCompleted,
		Provider: provider,
		Email:    email,
	})
}

// LogSignInFailed logs a failed sign-in
func (a *Auditor) LogSignInFailed(ctx context.Context, provider, reason string) {
	a.LogEvent(ctx, Event{
		Type:     EventSignInFailed,
		Provider: provider,
		Details: map[string]any{
			"reason": reason,
		},
	})
}

// hashForLogging creates a SHA256 hash of sensitive data for logging
func hashForLogging(sensitive string) string {
	if sensitive == "" {
		return "<empty>"
	}
	hash := sha256.Sum256([]byte(sensitive))
	return hex.EncodeToString(hash[:])[:16]
}
