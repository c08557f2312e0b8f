package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewGormLogger(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn,
		WithSlowThreshold(time.Second),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, gormlogger.Warn, gl.logLevel)
	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)

	info := gl.LogMode(gormlogger.Info).(*GormLogger)
	assert.Equal(t, gormlogger.Info, info.logLevel)
	assert.Equal(t, gormlogger.Warn, gl.logLevel, "LogMode must not mutate receiver")
}

func TestGormLogger_Trace(t *testing.T) {
	sql := func() (string, int64) { return "SELECT * FROM balances", 2 }
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-7")

	t.Run("error is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn)

		gl.Trace(ctx, time.Now(), sql, errors.New("deadlock"))

		entries := logs.FilterMessage("SQL Error").All()
		assert.Len(t, entries, 1)
		assert.Equal(t, "req-7", entries[0].ContextMap()["request_id"])
	})

	t.Run("record not found ignored", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn)

		gl.Trace(ctx, time.Now(), sql, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow query warns", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gl.Trace(ctx, time.Now().Add(-time.Second), sql, nil)

		assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Silent)

		gl.Trace(ctx, time.Now(), sql, errors.New("x"))
		gl.Error(ctx, "ignored %d", 1)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("info level logs queries", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		gl := NewGormLogger(zap.New(core), gormlogger.Info)

		gl.Trace(ctx, time.Now(), sql, nil)
		gl.Info(ctx, "migrated %s", "balances")

		assert.Equal(t, 1, logs.FilterMessage("SQL Query").Len())
		assert.Equal(t, 1, logs.FilterMessage("migrated balances").Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("other"))
}

func TestGormLogger_TraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	gl.Trace(ctx, time.Now().Add(-time.Second), func() (string, int64) {
		return "UPDATE balances SET quantity = 5", -1
	}, nil)

	entries := logs.FilterMessage("Slow SQL").All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "UPDATE", fields["statement"])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.NotContains(t, fields, "rows")
}

func TestStatementKind(t *testing.T) {
	assert.Equal(t, "SELECT", statementKind("  select * from receipts"))
	assert.Equal(t, "INSERT", statementKind("INSERT INTO balances (id) VALUES ($1)"))
	assert.Equal(t, "WITH", statementKind("with x as (select 1) select * from x"))
	assert.Equal(t, "", statementKind(""))
}
