package telemetry

import (
	"context"
	"errors"
	"testing"

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

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestStartServiceSpan(t *testing.T) {
	recorder := withRecorder(t)
	docID := uuid.New()

	ctx, span := StartServiceSpan(context.Background(), "ledger", "sign_shipment",
		WithAttribute(SpanAttrDocumentID, docID),
		WithAttribute(SpanAttrLineCount, 2),
	)
	assert.NotEmpty(t, GetTraceID(ctx))
	SetAttributes(span, SpanAttrDocumentState, "SIGNED", 42, "ignored-key")
	AddEvent(span, "balance_adjusted", SpanAttrResourceID, "r1")
	SetOK(span)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ledger.sign_shipment", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String(SpanAttrDocumentID, docID.String()))
	assert.Contains(t, spans[0].Attributes(), attribute.Int(SpanAttrLineCount, 2))
	assert.Contains(t, spans[0].Attributes(), attribute.String(SpanAttrDocumentState, "SIGNED"))
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "balance_adjusted", spans[0].Events()[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestRecordError(t *testing.T) {
	recorder := withRecorder(t)

	_, span := StartSpan(context.Background(), "ledger.create_receipt")
	RecordError(span, errors.New("insufficient stock"))
	RecordError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "insufficient stock", spans[0].Status().Description)
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}
