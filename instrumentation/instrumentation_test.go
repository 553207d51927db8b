package instrumentation

import (
	"context"
	"sync"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantSDK     bool
		wantService string
	}{
		{
			name:        "disabled",
			config:      Config{Enabled: false},
			wantService: DefaultServiceName,
		},
		{
			name:        "enabled creates SDK tracer provider",
			config:      Config{Enabled: true, ServiceName: "sign-in", ServiceVersion: "1.0.0"},
			wantSDK:     true,
			wantService: "sign-in",
		},
		{
			name:        "enabled with caller tracer provider",
			config:      Config{Enabled: true, TracerProvider: tracenoop.NewTracerProvider()},
			wantService: DefaultServiceName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := New(tt.config)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer func() { _ = inst.Shutdown(context.Background()) }()

			if inst.Metrics() == nil {
				t.Fatal("Metrics() returned nil")
			}
			if inst.Tracer("provider") == nil {
				t.Error("Tracer() returned nil")
			}
			if inst.Meter("provider") == nil {
				t.Error("Meter() returned nil")
			}
			if got := inst.sdkTracerProvider != nil; got != tt.wantSDK {
				t.Errorf("SDK tracer provider created = %v, want %v", got, tt.wantSDK)
			}

			found := false
			for _, kv := range inst.Resource().Attributes() {
				if kv.Key == "service.name" && kv.Value.AsString() == tt.wantService {
					found = true
				}
			}
			if !found {
				t.Errorf("Resource() missing service.name=%q", tt.wantService)
			}
		})
	}
}

func TestInstrumentation_RegisterSpanProcessor(t *testing.T) {
	inst, err := New(Config{Enabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = inst.Shutdown(context.Background()) }()

	recorder := tracetest.NewSpanRecorder()
	if err := inst.RegisterSpanProcessor(recorder); err != nil {
		t.Fatalf("RegisterSpanProcessor() error = %v", err)
	}

	_, span := inst.Tracer("provider").Start(context.Background(), SpanName("exchange_code"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if spans[0].Name() != "provider.exchange_code" {
		t.Errorf("span name = %q, want %q", spans[0].Name(), "provider.exchange_code")
	}
}

func TestInstrumentation_RegisterSpanProcessor_NotOwned(t *testing.T) {
	for _, cfg := range []Config{
		{Enabled: false},
		{Enabled: true, TracerProvider: sdktrace.NewTracerProvider()},
	} {
		inst, err := New(cfg)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := inst.RegisterSpanProcessor(tracetest.NewSpanRecorder()); err == nil {
			t.Error("RegisterSpanProcessor() expected error for a tracer provider New did not create")
		}
	}
}

func TestInstrumentation_ShutdownOnce(t *testing.T) {
	inst, err := New(Config{Enabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := inst.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := inst.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestInstrumentation_ConcurrentAccess(t *testing.T) {
	inst, err := New(Config{Enabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = inst.Shutdown(context.Background()) }()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, span := inst.Tracer("provider").Start(ctx, SpanName("fetch_email"))
			inst.Metrics().RecordProviderCall(ctx, "github", "fetch_email", "", 0, 1.5)
			span.End()
		}()
	}
	wg.Wait()
}

func BenchmarkMetrics_RecordProviderCall_NoOp(b *testing.B) {
	inst, err := New(Config{Enabled: false})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		inst.Metrics().RecordProviderCall(ctx, "github", "exchange_code", "", 0, 12.5)
	}
}
