package telemetry

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// AttrDBState labels pool gauges by connection state
var AttrDBState = attribute.Key("db.pool.state")

// DBPoolMetrics periodically records connection pool statistics.
type DBPoolMetrics struct {
	poolConnections    *Gauge
	poolConnectionsMax *Gauge
	waitCount          *Gauge

	sqlDB    *sql.DB
	interval time.Duration
	logger   *zap.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDBPoolMetrics creates pool gauges on meter. interval defaults to 15s.
func NewDBPoolMetrics(meter metric.Meter, sqlDB *sql.DB, interval time.Duration, logger *zap.Logger) (*DBPoolMetrics, error) {
	if meter == nil {
		return nil, &MetricsError{Op: "NewDBPoolMetrics", Err: "meter cannot be nil"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}

	m := &DBPoolMetrics{
		sqlDB:    sqlDB,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}

	var err error
	if m.poolConnections, err = NewGauge(meter, "db_pool_connections",
		"Number of connections in the pool by state", "{connection}"); err != nil {
		return nil, err
	}
	if m.poolConnectionsMax, err = NewGauge(meter, "db_pool_connections_max",
		"Maximum number of open connections", "{connection}"); err != nil {
		return nil, err
	}
	if m.waitCount, err = NewGauge(meter, "db_pool_wait_count",
		"Cumulative number of connections waited for", "{wait}"); err != nil {
		return nil, err
	}
	return m, nil
}

// Start launches the collection loop until Stop or ctx cancellation.
func (m *DBPoolMetrics) Start(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.Collect(ctx)
		for {
			select {
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Collect(ctx)
			}
		}
	}()
}

// Collect records the current pool statistics once.
func (m *DBPoolMetrics) Collect(ctx context.Context) {
	if m.sqlDB == nil {
		return
	}
	stats := m.sqlDB.Stats()

	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
	m.waitCount.Record(ctx, stats.WaitCount)
}

// Stop ends the collection loop. Safe to call multiple times.
func (m *DBPoolMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
		m.logger.Debug("Database pool metrics stopped")
	})
}
