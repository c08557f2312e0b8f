package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DocumentKind labels which document type an operation touched
type DocumentKind string

const (
	DocumentKindReceipt  DocumentKind = "receipt"
	DocumentKindShipment DocumentKind = "shipment"
)

// LedgerMetrics records document operations and balance adjustments.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	logger *zap.Logger

	documentsTotal    *Counter
	adjustmentsTotal  *Counter
	rejectedTotal     *Counter
	operationDuration *Histogram
}

// LedgerMetricsConfig holds configuration for ledger metrics.
type LedgerMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewLedgerMetrics creates the ledger instruments on the given meter.
func NewLedgerMetrics(cfg LedgerMetricsConfig) (*LedgerMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LedgerMetrics{logger: logger}

	var err error
	lm.documentsTotal, err = NewCounter(cfg.Meter,
		"wms_documents_total",
		"Number of committed document operations",
		"{operations}",
	)
	if err != nil {
		return nil, err
	}

	lm.adjustmentsTotal, err = NewCounter(cfg.Meter,
		"wms_balance_adjustments_total",
		"Number of balance rows adjusted",
		"{adjustments}",
	)
	if err != nil {
		return nil, err
	}

	lm.rejectedTotal, err = NewCounter(cfg.Meter,
		"wms_adjustments_rejected_total",
		"Number of document operations rejected by the ledger",
		"{operations}",
	)
	if err != nil {
		return nil, err
	}

	lm.operationDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "wms_ledger_operation_duration_seconds",
		Description: "Duration of ledger operations including the transaction",
		Unit:        "s",
		Boundaries:  LedgerDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return lm, nil
}

// RecordDocument counts a committed operation on a document.
func (lm *LedgerMetrics) RecordDocument(ctx context.Context, kind DocumentKind, operation string) {
	if lm == nil {
		return
	}
	lm.documentsTotal.Inc(ctx,
		AttrDocumentKind.String(string(kind)),
		AttrOperation.String(operation),
	)
}

// RecordAdjustment counts one balance row change.
func (lm *LedgerMetrics) RecordAdjustment(ctx context.Context, direction, outcome string) {
	if lm == nil {
		return
	}
	lm.adjustmentsTotal.Inc(ctx,
		AttrDirection.String(direction),
		AttrOutcome.String(outcome),
	)
}

// RecordRejected counts an operation the ledger refused, labelled by error code.
func (lm *LedgerMetrics) RecordRejected(ctx context.Context, kind DocumentKind, reason string) {
	if lm == nil {
		return
	}
	lm.rejectedTotal.Inc(ctx,
		AttrDocumentKind.String(string(kind)),
		AttrReason.String(reason),
	)
}

// ObserveOperation records how long an operation took and whether it succeeded.
func (lm *LedgerMetrics) ObserveOperation(ctx context.Context, operation string, started time.Time, err error) {
	if lm == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	lm.operationDuration.RecordDuration(ctx, time.Since(started),
		AttrOperation.String(operation),
		AttrResult.String(result),
	)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewLedgerMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
