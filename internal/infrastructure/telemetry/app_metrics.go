package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Counter wraps an Int64Counter.
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a counter instrument on the meter.
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(
		name,
		metric.WithDescription(description),
		metric.WithUnit(unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", name, err)
	}
	return &Counter{counter: c}, nil
}

// Add increments the counter by the given value.
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by 1.
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// UsageMetrics counts the write operations users perform. Services hold a
// nil-able reference so metrics stay optional.
type UsageMetrics struct {
	entriesCreated *Counter
	notesCreated   *Counter
	messagesSent   *Counter
}

// NewUsageMetrics creates the usage counters on the meter.
func NewUsageMetrics(meter metric.Meter, logger *zap.Logger) (*UsageMetrics, error) {
	entriesCreated, err := NewCounter(meter,
		"chronotes.time_entries.created.total",
		"Total time entries created", "{entry}")
	if err != nil {
		return nil, err
	}

	notesCreated, err := NewCounter(meter,
		"chronotes.notes.created.total",
		"Total notes created", "{note}")
	if err != nil {
		return nil, err
	}

	messagesSent, err := NewCounter(meter,
		"chronotes.messages.sent.total",
		"Total chat messages sent", "{message}")
	if err != nil {
		return nil, err
	}

	logger.Info("Usage metrics registered")

	return &UsageMetrics{
		entriesCreated: entriesCreated,
		notesCreated:   notesCreated,
		messagesSent:   messagesSent,
	}, nil
}

// RecordEntryCreated counts one created time entry. Safe on a nil receiver.
func (m *UsageMetrics) RecordEntryCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.entriesCreated.Inc(ctx)
}

// RecordNoteCreated counts one created note. Safe on a nil receiver.
func (m *UsageMetrics) RecordNoteCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.notesCreated.Inc(ctx)
}

// RecordMessageSent counts one sent chat message. Safe on a nil receiver.
func (m *UsageMetrics) RecordMessageSent(ctx context.Context) {
	if m == nil {
		return
	}
	m.messagesSent.Inc(ctx)
}
