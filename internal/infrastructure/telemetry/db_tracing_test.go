package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, plugin.Register(db))
	assert.NoError(t, db.Create(&tracedRow{Name: "a"}).Error)
}

func TestDBTracingPlugin_EnabledRegisters(t *testing.T) {
	db := setupTestDB(t)
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.NewNop())

	require.NoError(t, plugin.Register(db))
	require.NoError(t, db.Create(&tracedRow{Name: "steel"}).Error)

	var rows []tracedRow
	require.NoError(t, db.Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestDBTracingPlugin_AfterStatementAnnotatesSpan(t *testing.T) {
	db := setupTestDB(t)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Millisecond}, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "balances.update")
	tx := db.WithContext(context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second)))
	tx.Statement.Table = "balances"
	tx.Statement.RowsAffected = 1
	plugin.afterStatement(tx)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.Bool("db.slow_query", true))
	assert.Contains(t, attrs, attribute.String("db.sql.table", "balances"))
	assert.Contains(t, attrs, attribute.Int64("db.rows_affected", 1))
}
