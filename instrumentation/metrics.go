package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the metric instruments for provider clients
type Metrics struct {
	ProviderCallsTotal      metric.Int64Counter
	ProviderCallDuration    metric.Float64Histogram
	ProviderErrors          metric.Int64Counter
	AuthorizationURLsIssued metric.Int64Counter
	AuditEventsTotal        metric.Int64Counter
}

// newMetrics creates and registers all metric instruments on meter
func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.ProviderCallsTotal, err = meter.Int64Counter(
		"oauth.provider.calls.total",
		metric.WithDescription("Total number of provider client operations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.calls.total counter: %w", err)
	}

	m.ProviderCallDuration, err = meter.Float64Histogram(
		"oauth.provider.call.duration",
		metric.WithDescription("Provider client operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.call.duration histogram: %w", err)
	}

	m.ProviderErrors, err = meter.Int64Counter(
		"oauth.provider.errors.total",
		metric.WithDescription("Number of failed provider client operations by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.errors.total counter: %w", err)
	}

	m.AuthorizationURLsIssued, err = meter.Int64Counter(
		"oauth.authorization_url.issued",
		metric.WithDescription("Number of authorization URLs handed out"),
		metric.WithUnit("{url}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorization_url.issued counter: %w", err)
	}

	m.AuditEventsTotal, err = meter.Int64Counter(
		"oauth.audit.events.total",
		metric.WithDescription("Number of sign-in audit events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit.events.total counter: %w", err)
	}

	return m, nil
}

// RecordProviderCall records one provider client operation.
// errorKind is empty on success.
func (m *Metrics) RecordProviderCall(ctx context.Context, provider, operation, errorKind string, statusCode int, durationMs float64) {
	result := "success"
	if errorKind != "" {
		result = "error"
	}

	m.ProviderCallsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
	m.ProviderCallDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))

	if errorKind != "" {
		m.ProviderErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("operation", operation),
			attribute.String("error_kind", errorKind),
			attribute.Int("status", statusCode),
		))
	}
}

// RecordAuthorizationURLIssued records a successfully built authorization URL
func (m *Metrics) RecordAuthorizationURLIssued(ctx context.Context, provider string) {
	m.AuthorizationURLsIssued.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// RecordAuditEvent records an audit event
func (m *Metrics) RecordAuditEvent(ctx context.Context, eventType string) {
	m.AuditEventsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}
