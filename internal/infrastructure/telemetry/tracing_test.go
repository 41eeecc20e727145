package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/RobertWLight/BSC/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// recordSpans swaps in a recording global provider for the test
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrMap(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestStartServiceSpan(t *testing.T) {
	sr := recordSpans(t)
	ownerID := uuid.New()

	ctx, span := telemetry.StartServiceSpan(context.Background(), "fica", "calculate",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessOwnerID, ownerID),
	)
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "fica.calculate", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
	assert.Equal(t, ownerID.String(), attrMap(spans[0])[telemetry.SpanAttrBusinessOwnerID].AsString())
	assert.Equal(t, telemetry.TracerName, spans[0].InstrumentationScope().Name)
}

func TestSetAttributes(t *testing.T) {
	sr := recordSpans(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "application", "update")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrStatus, "submitted",
		telemetry.SpanAttrEmployeeCount, 12,
		"estimated", 1250.5,
		"archived", true,
		42, "non-string key is skipped",
		"dangling",
	)
	span.End()

	attrs := attrMap(sr.Ended()[0])
	assert.Len(t, attrs, 4)
	assert.Equal(t, "submitted", attrs[telemetry.SpanAttrStatus].AsString())
	assert.Equal(t, int64(12), attrs[telemetry.SpanAttrEmployeeCount].AsInt64())
	assert.Equal(t, 1250.5, attrs["estimated"].AsFloat64())
	assert.True(t, attrs["archived"].AsBool())

	assert.NotPanics(t, func() { telemetry.SetAttributes(nil, "k", "v") })
}

func TestRecordError(t *testing.T) {
	sr := recordSpans(t)

	_, failed := telemetry.StartServiceSpan(context.Background(), "fica", "calculate")
	telemetry.RecordError(failed, errors.New("no employees"))
	failed.End()

	_, ok := telemetry.StartServiceSpan(context.Background(), "fica", "calculate")
	telemetry.RecordError(ok, nil)
	ok.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "no employees", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)

	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Empty(t, spans[1].Events())
}

func TestNestedServiceSpans(t *testing.T) {
	sr := recordSpans(t)

	ctx, parent := telemetry.StartServiceSpan(context.Background(), "application", "update")
	_, child := telemetry.StartServiceSpan(ctx, "summary", "archive")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "summary.archive", spans[0].Name())
	assert.Equal(t, spans[1].SpanContext().TraceID(), spans[0].SpanContext().TraceID())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}
