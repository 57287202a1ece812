package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	tp, err := NewTracerProvider(ctx, Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		SamplingRatio:     1.0,
		ServiceName:       "test-service",
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewMeterProviderDisabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := NewMeterProvider(ctx, MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "test-service",
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, mp)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestNewLoggerProviderDisabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	lp, err := NewLoggerProvider(ctx, LogsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "test-service",
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, lp)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(ctx))

	// The bridge core must swallow entries instead of exporting them
	core := lp.ZapCore(zapcore.InfoLevel)
	require.NotNil(t, core)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1.0).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0.0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), samplerFor(0.25).Description())
}

func TestMinLevelCore(t *testing.T) {
	inner, recorded := observer.New(zapcore.DebugLevel)
	core := &minLevelCore{Core: inner, min: zapcore.WarnLevel}

	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))

	entry := zapcore.Entry{Level: zapcore.InfoLevel, Message: "below threshold"}
	assert.Nil(t, core.Check(entry, nil))

	entry = zapcore.Entry{Level: zapcore.ErrorLevel, Message: "above threshold"}
	if ce := core.Check(entry, nil); ce != nil {
		ce.Write()
	}
	require.Equal(t, 1, recorded.Len())
	assert.Equal(t, "above threshold", recorded.All()[0].Message)
}

func TestToAttribute(t *testing.T) {
	id := uuid.MustParse("0e3824fa-276c-4dcb-8e4d-6285f9d1bf23")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"stringer", id, id.String()},
		{"fallback", struct{ X int }{X: 1}, "{1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := toAttribute("key", tt.value)
			assert.Equal(t, tt.want, attr.Value.AsString())
		})
	}

	assert.Equal(t, int64(7), toAttribute("key", 7).Value.AsInt64())
	assert.Equal(t, true, toAttribute("key", true).Value.AsBool())
	assert.Equal(t, 0.5, toAttribute("key", 0.5).Value.AsFloat64())
}

func TestUsageMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	ctx := context.Background()

	t.Run("records without panicking", func(t *testing.T) {
		m, err := NewUsageMetrics(meter, zaptest.NewLogger(t))
		require.NoError(t, err)

		m.RecordEntryCreated(ctx)
		m.RecordNoteCreated(ctx)
		m.RecordMessageSent(ctx)
	})

	t.Run("nil receiver is a no-op", func(t *testing.T) {
		var m *UsageMetrics
		m.RecordEntryCreated(ctx)
		m.RecordNoteCreated(ctx)
		m.RecordMessageSent(ctx)
	})
}

func TestStartServiceSpanNaming(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartServiceSpan(context.Background(), "time_entry", "create",
		WithAttribute(SpanAttrEntryID, "abc"))
	RecordError(span, assert.AnError)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "time_entry.create", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.NotEmpty(t, GetTraceID(ctx))
}
