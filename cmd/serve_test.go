package cmd

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"voxsched/internal/instrumentation"
)

func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("expected Use to be 'serve', got %s", cmd.Use)
	}

	flags := []struct {
		name     string
		defValue string
	}{
		{"debug", "false"},
		{"transport", "stdio"},
		{"http-addr", ":8080"},
		{"yolo", "false"},
		{"config", ""},
		{"metrics-enabled", "true"},
		{"metrics-addr", ":9090"},
	}

	for _, tt := range flags {
		flag := cmd.Flags().Lookup(tt.name)
		if flag == nil {
			t.Errorf("expected flag %q to be registered", tt.name)
			continue
		}
		if flag.DefValue != tt.defValue {
			t.Errorf("flag %q: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
		}
	}
}

func TestSessionHooks(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})

	metrics, err := instrumentation.NewMetrics(mp.Meter("test"), false)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	hooks := sessionHooks(metrics)
	if len(hooks.OnRegisterSession) != 1 || len(hooks.OnUnregisterSession) != 1 {
		t.Fatalf("expected one register and one unregister hook, got %d/%d",
			len(hooks.OnRegisterSession), len(hooks.OnUnregisterSession))
	}

	ctx := context.Background()
	hooks.OnRegisterSession[0](ctx, nil)
	hooks.OnRegisterSession[0](ctx, nil)
	hooks.OnUnregisterSession[0](ctx, nil)

	if got := activeSessionsValue(t, reader); got != 1 {
		t.Errorf("expected 1 active session after two registers and one unregister, got %d", got)
	}
}

func TestSessionHooks_NoopMetrics(t *testing.T) {
	// Disabled instrumentation hands the hooks a zero-value recorder.
	hooks := sessionHooks(&instrumentation.Metrics{})
	hooks.OnRegisterSession[0](context.Background(), nil)
	hooks.OnUnregisterSession[0](context.Background(), nil)
}

func activeSessionsValue(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "active_sessions" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) == 0 {
				t.Fatalf("unexpected data for active_sessions: %T", m.Data)
			}
			return sum.DataPoints[0].Value
		}
	}
	t.Fatal("active_sessions metric not recorded")
	return 0
}

func TestRunServe_UnsupportedTransport(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("VOXSCHED_CONFIG", "")

	err := runServe("carrier-pigeon", false, ":8080", false, "", MetricsConfig{})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if got := err.Error(); got != "unsupported transport type: carrier-pigeon (supported: stdio, streamable-http)" {
		t.Errorf("unexpected error message: %s", got)
	}
}
