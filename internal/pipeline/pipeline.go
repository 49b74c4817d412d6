package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/teemow/daybrief/internal/agenda"
	"github.com/teemow/daybrief/internal/fault"
	"github.com/teemow/daybrief/internal/instrumentation"
	"github.com/teemow/daybrief/internal/logging"
)

// State is the orchestrator's position in the run.
type State string

const (
	StateIdle         State = "idle"
	StateExtracting   State = "extracting"
	StateTransforming State = "transforming"
	StateDelivering   State = "delivering"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

// Source is one calendar queried during extraction.
type Source interface {
	// ID identifies the source in logs and in the merge order.
	ID() string

	// Events returns the source's events inside the window.
	Events(ctx context.Context, win agenda.Window) ([]agenda.Event, error)
}

// Dispatcher delivers the formatted agenda.
type Dispatcher interface {
	Send(ctx context.Context, chatID, text string) error
}

// Result is the outcome of one run. The final state and its
// classification are the run's only outputs besides the delivery
// itself.
type Result struct {
	State State

	// Kind is the failure classification; empty for successful runs.
	Kind fault.Kind

	// Exhausted is true when a retryable fault survived the full retry
	// bound, as opposed to a non-retryable fault failing fast.
	Exhausted bool

	Err error
}

// Runner executes one extraction → transformation → delivery run.
type Runner struct {
	Sources    []Source
	Dispatcher Dispatcher
	ChatID     string
	Window     agenda.Window

	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
	Tracer  trace.Tracer

	// MaxAttempts bounds each retryable stage. Zero means the default.
	MaxAttempts int

	// RetryDelay is the fixed wait between attempts. Negative disables
	// the wait (tests); zero means the default.
	RetryDelay time.Duration
}

// Run drives the state machine for a single invocation. A transition to
// StateFailed is permanent for the run; the caller decides whether a new
// invocation happens.
func (r *Runner) Run(ctx context.Context) Result {
	logger := r.logger()

	// Extracting
	state := StateExtracting
	var sources []agenda.SourceEvents
	_, err := r.retryStage(ctx, string(state), func(ctx context.Context) error {
		var stageErr error
		sources, stageErr = r.extract(ctx)
		return stageErr
	})
	if err != nil {
		return r.fail(ctx, state, err)
	}

	if ctx.Err() != nil {
		return r.fail(ctx, state, fault.New(fault.Unknown, "pipeline.run", ctx.Err()))
	}

	// Transforming: pure and deterministic, never retried. A failure
	// here would be a data defect, not a transient condition; malformed
	// records are dropped inside the formatter instead.
	state = StateTransforming
	formatted := r.transform(ctx, sources)

	if ctx.Err() != nil {
		return r.fail(ctx, state, fault.New(fault.Unknown, "pipeline.run", ctx.Err()))
	}

	// Delivering
	state = StateDelivering
	_, err = r.retryStage(ctx, string(state), func(ctx context.Context) error {
		return r.deliver(ctx, formatted.Text)
	})
	if err != nil {
		return r.fail(ctx, state, err)
	}

	r.metrics().RecordRun(ctx, string(StateSucceeded), "")
	r.metrics().RecordAgendaSize(ctx, utf8.RuneCountInString(formatted.Text))
	logger.Info("run succeeded",
		logging.Status(logging.StatusSuccess),
		slog.Int("events", formatted.Lines),
		slog.Int("skipped", formatted.Skipped),
	)

	return Result{State: StateSucceeded}
}

// extract queries all sources for the same window. Sources are fetched
// concurrently; the merge order is the configured source order, never
// the completion order. A failure of any source fails the whole stage:
// the pipeline does not proceed with partial data silently.
func (r *Runner) extract(ctx context.Context) ([]agenda.SourceEvents, error) {
	ctx, span := r.tracer().Start(ctx, "pipeline.extract")
	defer span.End()

	results := make([]agenda.SourceEvents, len(r.Sources))
	errs := make([]error, len(r.Sources))

	var wg sync.WaitGroup
	for i, src := range r.Sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			events, err := src.Events(ctx, r.Window)
			if err != nil {
				errs[i] = fmt.Errorf("source %s: %w", src.ID(), err)
				return
			}
			results[i] = agenda.SourceEvents{SourceID: src.ID(), Events: events}
		}(i, src)
	}
	wg.Wait()

	// First failure in configured order keeps the aggregate error
	// deterministic.
	for _, err := range errs {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "extraction failed")
			return nil, err
		}
	}

	for _, sr := range results {
		r.metrics().RecordSourceEvents(ctx, sr.SourceID, len(sr.Events))
		r.logger().Debug("source fetched",
			logging.Source(sr.SourceID),
			slog.Int("events", len(sr.Events)),
		)
	}

	return results, nil
}

func (r *Runner) transform(ctx context.Context, sources []agenda.SourceEvents) agenda.Agenda {
	_, span := r.tracer().Start(ctx, "pipeline.transform")
	defer span.End()

	formatted := agenda.Format(r.Window.Day(), sources)
	if formatted.Skipped > 0 {
		r.logger().Warn("malformed events skipped",
			logging.Kind(string(fault.Format)),
			slog.Int("skipped", formatted.Skipped),
		)
	}
	return formatted
}

func (r *Runner) deliver(ctx context.Context, text string) error {
	ctx, span := r.tracer().Start(ctx, "pipeline.deliver")
	defer span.End()

	if err := r.Dispatcher.Send(ctx, r.ChatID, text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		return err
	}
	return nil
}

func (r *Runner) fail(ctx context.Context, state State, err error) Result {
	kind := fault.KindOf(err)
	exhausted := fault.Retryable(err)

	r.metrics().RecordRun(ctx, string(StateFailed), string(kind))
	r.logger().Error("run failed",
		logging.Status(logging.StatusError),
		logging.Kind(string(kind)),
		slog.String(logging.KeyStage, string(state)),
		slog.Bool("exhausted", exhausted),
		logging.Err(err),
	)

	return Result{State: StateFailed, Kind: kind, Exhausted: exhausted, Err: err}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) metrics() *instrumentation.Metrics {
	if r.Metrics != nil {
		return r.Metrics
	}
	return &instrumentation.Metrics{}
}

func (r *Runner) tracer() trace.Tracer {
	if r.Tracer != nil {
		return r.Tracer
	}
	return noop.NewTracerProvider().Tracer("pipeline")
}
