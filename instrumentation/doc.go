// Package instrumentation provides OpenTelemetry instrumentation for the provider clients.
//
// # Quick Start
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		Enabled:        true,
//		ServiceName:    "my-web-app",
//		ServiceVersion: "1.0.0",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	client, err := oauthclient.NewClient(providers.ProviderGitHub, authService, &oauthclient.Config{
//		Instrumentation: inst,
//	})
//
// When Enabled is true and no TracerProvider is supplied, New creates an SDK
// tracer provider; attach exporters with RegisterSpanProcessor. Metrics go to
// the supplied MeterProvider or the global one. When Enabled is false, no-op
// providers are used.
//
// # Available Metrics
//
//   - oauth.provider.calls.total{provider, operation, result}
//   - oauth.provider.call.duration{provider, operation} in milliseconds
//   - oauth.provider.errors.total{provider, operation, error_kind, status}
//   - oauth.authorization_url.issued{provider}
//   - oauth.audit.events.total{event_type}
//
// # Traces
//
// Every client operation runs in a span named provider.<operation> carrying
// provider.name, provider.operation and, on failure, provider.error_kind and
// provider.status.
//
// # Security
//
// Authorization codes, access tokens, client secrets and email addresses are
// never recorded. The exchange span records only whether a code was present.
package instrumentation
