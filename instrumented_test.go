package oauthclient

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/giantswarm/oauth-clients/instrumentation"
	"github.com/giantswarm/oauth-clients/internal/testutil"
	"github.com/giantswarm/oauth-clients/providers"
	"github.com/giantswarm/oauth-clients/security"
)

type observedSetup struct {
	client   providers.Client
	recorder *tracetest.SpanRecorder
	logs     *bytes.Buffer
	idp      *testutil.IdentityProvider
}

func newObservedClient(t *testing.T, p providers.Provider) *observedSetup {
	t.Helper()

	idp := testutil.NewIdentityProvider()
	t.Cleanup(idp.Close)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	inst, err := instrumentation.New(instrumentation.Config{Enabled: true, TracerProvider: tp})
	if err != nil {
		t.Fatalf("instrumentation.New() error = %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	auditor := security.NewAuditor(logger, true)
	auditor.SetInstrumentation(inst)

	client, err := NewClient(p, testutil.NewStaticAuth(testutil.TestCredential()), &Config{
		HTTPClient:      idp.HTTPClient(),
		Logger:          logger,
		Instrumentation: inst,
		Auditor:         auditor,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	return &observedSetup{client: client, recorder: recorder, logs: &logs, idp: idp}
}

func TestInstrumentedClient_Spans(t *testing.T) {
	s := newObservedClient(t, providers.ProviderGitHub)
	ctx := security.WithRequestID(context.Background(), "req-1")

	if _, err := s.client.AuthorizationURL(ctx); err != nil {
		t.Fatalf("AuthorizationURL() error = %v", err)
	}
	token, err := s.client.ExchangeCodeForToken(ctx, "octocat")
	if err != nil {
		t.Fatalf("ExchangeCodeForToken() error = %v", err)
	}
	if _, err := s.client.FetchUserEmail(ctx, token); err != nil {
		t.Fatalf("FetchUserEmail() error = %v", err)
	}
	if _, err := s.client.FetchUserFullName(ctx, "revoked"); err == nil {
		t.Fatal("FetchUserFullName() with invalid token expected error")
	}

	spans := s.recorder.Ended()
	wantNames := []string{
		"provider.authorization_url",
		"provider.exchange_code",
		"provider.fetch_email",
		"provider.fetch_full_name",
	}
	if len(spans) != len(wantNames) {
		t.Fatalf("recorded %d spans, want %d", len(spans), len(wantNames))
	}

	for i, span := range spans {
		if span.Name() != wantNames[i] {
			t.Errorf("span %d name = %q, want %q", i, span.Name(), wantNames[i])
		}

		attrs := map[string]string{}
		for _, kv := range span.Attributes() {
			attrs[string(kv.Key)] = kv.Value.Emit()
		}
		if attrs[instrumentation.AttrProviderName] != "github" {
			t.Errorf("span %q provider.name = %q", span.Name(), attrs[instrumentation.AttrProviderName])
		}
		if attrs[instrumentation.AttrRequestID] != "req-1" {
			t.Errorf("span %q request.id = %q", span.Name(), attrs[instrumentation.AttrRequestID])
		}

		for key, value := range attrs {
			for _, secret := range []string{"octocat", token, testutil.TestClientSecret} {
				if strings.Contains(value, secret) {
					t.Errorf("span %q attribute %s leaks %q", span.Name(), key, secret)
				}
			}
		}
	}

	failed := spans[3]
	if failed.Status().Code != codes.Error {
		t.Errorf("failed span status = %v, want Error", failed.Status().Code)
	}
	for _, kv := range failed.Attributes() {
		if string(kv.Key) == instrumentation.AttrProviderErrorKind && kv.Value.AsString() != "upstream_rejected" {
			t.Errorf("error kind = %q, want upstream_rejected", kv.Value.AsString())
		}
	}
}

func TestInstrumentedClient_LogsWithoutSecrets(t *testing.T) {
	s := newObservedClient(t, providers.ProviderGitLab)
	ctx := context.Background()

	token, err := s.client.ExchangeCodeForToken(ctx, "tanuki")
	if err != nil {
		t.Fatalf("ExchangeCodeForToken() error = %v", err)
	}
	email, err := s.client.FetchUserEmail(ctx, token)
	if err != nil {
		t.Fatalf("FetchUserEmail() error = %v", err)
	}
	if _, err := s.client.ExchangeCodeForToken(ctx, testutil.RejectedCode); !errors.Is(err, providers.ErrUpstreamRejected) {
		t.Fatalf("ExchangeCodeForToken() error = %v, want upstream rejected", err)
	}

	out := s.logs.String()
	for _, want := range []string{
		"Provider call succeeded",
		"Provider call failed",
		"error_kind=upstream_rejected",
		"status=400",
		"event_type=" + security.EventProviderCallSucceeded,
		"email_hash=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q:\n%s", want, out)
		}
	}

	for _, secret := range []string{token, email, testutil.TestClientSecret, testutil.RejectedCode} {
		if strings.Contains(out, secret) {
			t.Errorf("logs leak %q:\n%s", secret, out)
		}
	}
}

func TestInstrumentedClient_PassesThroughResults(t *testing.T) {
	s := newObservedClient(t, providers.ProviderGoogle)
	ctx := context.Background()

	token, err := s.client.ExchangeCodeForToken(ctx, "jane")
	if err != nil {
		t.Fatalf("ExchangeCodeForToken() error = %v", err)
	}
	if token != testutil.TokenForCode("jane") {
		t.Errorf("ExchangeCodeForToken() = %q", token)
	}

	_, err = s.client.ExchangeCodeForToken(ctx, "")
	if !errors.Is(err, providers.ErrEmptyCode) {
		t.Errorf("ExchangeCodeForToken(\"\") error = %v, want ErrEmptyCode unchanged", err)
	}

	if n := s.idp.Requests(); n != 1 {
		t.Errorf("provider requests = %d, want 1", n)
	}
}

func TestNewClient_UnobservedIsUnwrapped(t *testing.T) {
	client, err := NewClient(providers.ProviderGitHub, testutil.NewStaticAuth(testutil.TestCredential()), nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, ok := client.(*instrumentedClient); ok {
		t.Error("NewClient() without observability config returned an instrumented client")
	}
}
