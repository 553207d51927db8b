package oauthclient

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/giantswarm/oauth-clients/instrumentation"
	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/security"
)

// instrumentedClient decorates a providers.Client with logging, tracing,
// metrics and auditing. It never records codes, tokens or clear-text emails.
type instrumentedClient struct {
	next     providers.Client
	provider providers.Provider
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *instrumentation.Metrics
	auditor  *security.Auditor
}

// Compile-time check that instrumentedClient implements the providers.Client interface.
var _ providers.Client = (*instrumentedClient)(nil)

func newInstrumentedClient(p providers.Provider, next providers.Client, cfg *Config) *instrumentedClient {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &instrumentedClient{
		next:     next,
		provider: p,
		logger:   logger.With("provider", string(p)),
		auditor:  cfg.Auditor,
	}
	if cfg.Instrumentation != nil {
		c.tracer = cfg.Instrumentation.Tracer("provider")
		c.metrics = cfg.Instrumentation.Metrics()
	}
	return c
}

// start opens the span for op when tracing is configured.
func (c *instrumentedClient) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if c.tracer == nil {
		return ctx, nil
	}
	ctx, span := c.tracer.Start(ctx, instrumentation.SpanName(op), trace.WithSpanKind(trace.SpanKindClient))
	instrumentation.AddProviderAttributes(span, string(c.provider), op)
	instrumentation.SetSpanAttributes(span, attrs...)
	if requestID := security.GetRequestID(ctx); requestID != "" {
		instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrRequestID, requestID))
	}
	return ctx, span
}

// finish records the outcome of op. email is the address returned by a
// successful email lookup and is only passed to the auditor, which hashes it.
func (c *instrumentedClient) finish(ctx context.Context, span trace.Span, op string, started time.Time, email string, err error) {
	duration := time.Since(started)
	durationMs := float64(duration.Microseconds()) / 1000

	var (
		kind   string
		status int
	)
	if err != nil {
		kind = providers.KindOf(err).String()
		status = providers.StatusOf(err)
	}

	if span != nil {
		if err != nil {
			instrumentation.AddProviderErrorAttributes(span, kind, status)
			instrumentation.RecordError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		span.End()
	}

	if c.metrics != nil {
		c.metrics.RecordProviderCall(ctx, string(c.provider), op, kind, status, durationMs)
		if op == providers.OpAuthorizationURL && err == nil {
			c.metrics.RecordAuthorizationURLIssued(ctx, string(c.provider))
		}
	}

	attrs := []any{"operation", op, "duration_ms", duration.Milliseconds()}
	if requestID := security.GetRequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	if err != nil {
		attrs = append(attrs, "error_kind", kind, "status", status, "error", err)
		c.logger.WarnContext(ctx, "Provider call failed", attrs...)
	} else {
		c.logger.DebugContext(ctx, "Provider call succeeded", attrs...)
	}

	if c.auditor != nil && op != providers.OpAuthorizationURL {
		c.auditor.LogProviderCall(ctx, string(c.provider), op, email, kind, status)
	}
}

func (c *instrumentedClient) AuthorizationURL(ctx context.Context) (string, error) {
	ctx, span := c.start(ctx, providers.OpAuthorizationURL)
	started := time.Now()

	authURL, err := c.next.AuthorizationURL(ctx)
	c.finish(ctx, span, providers.OpAuthorizationURL, started, "", err)
	return authURL, err
}

func (c *instrumentedClient) ExchangeCodeForToken(ctx context.Context, code string) (string, error) {
	ctx, span := c.start(ctx, providers.OpExchangeCode, attribute.Bool(instrumentation.AttrCodePresent, code != ""))
	started := time.Now()

	token, err := c.next.ExchangeCodeForToken(ctx, code)
	c.finish(ctx, span, providers.OpExchangeCode, started, "", err)
	return token, err
}

func (c *instrumentedClient) FetchUserEmail(ctx context.Context, accessToken string) (string, error) {
	ctx, span := c.start(ctx, providers.OpFetchEmail)
	started := time.Now()

	email, err := c.next.FetchUserEmail(ctx, accessToken)
	c.finish(ctx, span, providers.OpFetchEmail, started, email, err)
	return email, err
}

func (c *instrumentedClient) FetchUserFullName(ctx context.Context, accessToken string) (string, error) {
	ctx, span := c.start(ctx, providers.OpFetchFullName)
	started := time.Now()

	name, err := c.next.FetchUserFullName(ctx, accessToken)
	c.finish(ctx, span, providers.OpFetchFullName, started, "", err)
	return name, err
}
