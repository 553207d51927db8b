package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys
//
// SECURITY WARNING: Never record authorization codes, access tokens, client
// secrets or email addresses in traces. Traces are often kept longer and shown
// to wider audiences than production logs.
const (
	AttrProviderName      = "provider.name"
	AttrProviderOperation = "provider.operation"
	AttrProviderStatus    = "provider.status"
	AttrProviderErrorKind = "provider.error_kind"

	// AttrCodePresent reports whether a non-empty code was passed, never the code itself
	AttrCodePresent = "oauth.code.present"

	AttrRequestID = "request.id"
)

// SpanName returns the span name for a provider client operation
func SpanName(operation string) string {
	return "provider." + operation
}

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddProviderAttributes adds provider attributes to a span (nil-safe)
func AddProviderAttributes(span trace.Span, providerName, operation string) {
	SetSpanAttributes(span,
		attribute.String(AttrProviderName, providerName),
		attribute.String(AttrProviderOperation, operation),
	)
}

// AddProviderErrorAttributes adds the error kind and provider HTTP status to a span (nil-safe).
// A zero status is omitted.
func AddProviderErrorAttributes(span trace.Span, errorKind string, statusCode int) {
	SetSpanAttributes(span, attribute.String(AttrProviderErrorKind, errorKind))
	if statusCode != 0 {
		SetSpanAttributes(span, attribute.Int(AttrProviderStatus, statusCode))
	}
}
