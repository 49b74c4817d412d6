package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency
const (
	attrStage  = "stage"
	attrStatus = "status"
	attrKind   = "kind"
	attrSource = "source"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder for disabled instrumentation.
type Metrics struct {
	runsTotal          metric.Int64Counter
	stageAttemptsTotal metric.Int64Counter
	stageDuration      metric.Float64Histogram
	sourceEventsTotal  metric.Int64Counter
	agendaSizeChars    metric.Int64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.runsTotal, err = meter.Int64Counter(
		"daybrief_runs_total",
		metric.WithDescription("Total number of pipeline runs by final status"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daybrief_runs_total counter: %w", err)
	}

	m.stageAttemptsTotal, err = meter.Int64Counter(
		"daybrief_stage_attempts_total",
		metric.WithDescription("Total number of stage attempts, including retries"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daybrief_stage_attempts_total counter: %w", err)
	}

	m.stageDuration, err = meter.Float64Histogram(
		"daybrief_stage_duration_seconds",
		metric.WithDescription("Stage duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daybrief_stage_duration_seconds histogram: %w", err)
	}

	m.sourceEventsTotal, err = meter.Int64Counter(
		"daybrief_source_events_total",
		metric.WithDescription("Total number of events fetched per calendar source"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daybrief_source_events_total counter: %w", err)
	}

	m.agendaSizeChars, err = meter.Int64Histogram(
		"daybrief_agenda_size_chars",
		metric.WithDescription("Size of the delivered agenda in characters"),
		metric.WithUnit("{char}"),
		metric.WithExplicitBucketBoundaries(64, 256, 512, 1024, 2048, 4096),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daybrief_agenda_size_chars histogram: %w", err)
	}

	return m, nil
}

// RecordRun records the final status of a pipeline run. kind carries
// the failure classification and is empty for successful runs.
func (m *Metrics) RecordRun(ctx context.Context, status, kind string) {
	if m.runsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String(attrStatus, status)}
	if kind != "" {
		attrs = append(attrs, attribute.String(attrKind, kind))
	}
	m.runsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordStageAttempt records one attempt of a pipeline stage.
func (m *Metrics) RecordStageAttempt(ctx context.Context, stage, status string, duration time.Duration) {
	if m.stageAttemptsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrStage, stage),
		attribute.String(attrStatus, status),
	)
	m.stageAttemptsTotal.Add(ctx, 1, attrs)
	m.stageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(attrStage, stage),
	))
}

// RecordSourceEvents records the number of events fetched from one
// calendar source.
func (m *Metrics) RecordSourceEvents(ctx context.Context, source string, count int) {
	if m.sourceEventsTotal == nil {
		return
	}
	m.sourceEventsTotal.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(attrSource, source),
	))
}

// RecordAgendaSize records the size of a delivered agenda.
func (m *Metrics) RecordAgendaSize(ctx context.Context, chars int) {
	if m.agendaSizeChars == nil {
		return
	}
	m.agendaSizeChars.Record(ctx, int64(chars))
}
