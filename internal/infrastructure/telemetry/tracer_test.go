package telemetry_test

import (
	"context"
	"testing"

	infraconfig "github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	cfg := telemetry.Config{
		Enabled:     false,
		ServiceName: "test-service",
	}

	tp, err := telemetry.NewTracerProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.Equal(t, "test-service", tp.GetConfig().ServiceName)
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_InProcess(t *testing.T) {
	original := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(original) })

	ctx := context.Background()
	sr := tracetest.NewSpanRecorder()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:       true,
		SamplingRatio: 1.0,
		ServiceName:   "bsc-test",
	}, zaptest.NewLogger(t), telemetry.WithSpanProcessor(sr))
	require.NoError(t, err)
	assert.True(t, tp.IsEnabled())

	ctx, span := telemetry.StartServiceSpan(ctx, "fica", "calculate")
	assert.True(t, trace.SpanContextFromContext(ctx).HasTraceID())
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fica.calculate", spans[0].Name())

	require.NoError(t, tp.Shutdown(ctx))
}

func TestConfigFrom(t *testing.T) {
	cfg := telemetry.ConfigFrom(infraconfig.TelemetryConfig{
		Enabled:           true,
		ServiceName:       "bsc-backend",
		CollectorEndpoint: "otel:4317",
		Insecure:          true,
		SamplingRatio:     0.5,
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "otel:4317", cfg.CollectorEndpoint)
	assert.True(t, cfg.Insecure)
	assert.InDelta(t, 0.5, cfg.SamplingRatio, 1e-9)
}
