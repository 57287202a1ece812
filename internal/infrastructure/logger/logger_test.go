package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("creates json logger", func(t *testing.T) {
		logger, err := New(ProductionConfig())
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "bogus"
		logger, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("extra cores receive entries through the tee", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		logger, err := New(DefaultConfig(), WithExtraCores(core))
		require.NoError(t, err)

		logger.Info("reconciled feed", zap.Int("pages", 3))

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, "reconciled feed", entry.Message)
		assert.Equal(t, int64(3), entry.ContextMap()["pages"])
	})
}

func TestGormLoggerTrace(t *testing.T) {
	newObserved := func(t *testing.T, level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
		t.Helper()
		core, recorded := observer.New(zapcore.DebugLevel)
		return NewGormLogger(zap.New(core), level, opts...), recorded
	}

	t.Run("logs failed queries with the request id", func(t *testing.T) {
		gl, recorded := newObserved(t, gormlogger.Error)
		ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-42")

		gl.Trace(ctx, time.Now(), func() (string, int64) {
			return "SELECT 1", 0
		}, assert.AnError)

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, "query failed", entry.Message)
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.Equal(t, "req-42", entry.ContextMap()["request_id"])
		assert.Equal(t, "SELECT 1", entry.ContextMap()["query"])
	})

	t.Run("skips record not found by default", func(t *testing.T) {
		gl, recorded := newObserved(t, gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT 1", 0
		}, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, recorded.Len())
	})

	t.Run("slow queries log at warn with the threshold", func(t *testing.T) {
		gl, recorded := newObserved(t, gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
			return "SELECT pg_sleep(1)", 1
		}, nil)

		require.Equal(t, 1, recorded.Len())
		entry := recorded.All()[0]
		assert.Equal(t, "slow query", entry.Message)
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, recorded := newObserved(t, gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, assert.AnError)

		assert.Equal(t, 0, recorded.Len())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestContextHelpers(t *testing.T) {
	base := zap.NewNop()

	t.Run("logger round trips through context", func(t *testing.T) {
		ctx := WithContext(context.Background(), base)
		assert.Equal(t, base, FromContext(ctx))
	})

	t.Run("missing logger yields no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id round trips", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), base, "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("missing request id is empty", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}
