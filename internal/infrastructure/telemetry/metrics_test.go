package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	cfg := telemetry.MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		ExportInterval:    time.Minute,
		ServiceName:       "wms-test",
	}

	mp, err := telemetry.NewMeterProvider(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestMetricHelpers(t *testing.T) {
	ctx := context.Background()
	meter := noop.NewMeterProvider().Meter("test")

	counter, err := telemetry.NewCounter(meter, "wms_test_total", "test counter", "{ops}")
	require.NoError(t, err)
	counter.Inc(ctx, telemetry.AttrOperation.String("create"))
	counter.Add(ctx, 3)

	hist, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:       "wms_test_duration_seconds",
		Unit:       "s",
		Boundaries: telemetry.LedgerDurationBuckets,
	})
	require.NoError(t, err)
	hist.RecordDuration(ctx, 15*time.Millisecond)
	hist.Record(ctx, 0.2)

	gauge, err := telemetry.NewGauge(meter, "wms_test_rows", "test gauge", "{rows}")
	require.NoError(t, err)
	gauge.Record(ctx, 7)
}
