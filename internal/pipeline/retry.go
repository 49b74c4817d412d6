package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/teemow/daybrief/internal/fault"
	"github.com/teemow/daybrief/internal/logging"
)

const (
	// DefaultMaxAttempts is the retry bound for the extracting and
	// delivering stages.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the fixed wait between attempts.
	DefaultRetryDelay = 5 * time.Second
)

// retryStage runs op under the bounded retry policy. Non-retryable
// faults short-circuit immediately; retryable ones are re-attempted up
// to the bound with a constant delay. The attempt count is returned for
// observability.
func (r *Runner) retryStage(ctx context.Context, stage string, op func(context.Context) error) (int, error) {
	logger := logging.WithStage(r.logger(), stage)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewConstantBackOff(r.retryDelay()),
			uint64(r.maxAttempts()-1),
		),
		ctx,
	)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		start := time.Now()
		err := op(ctx)
		elapsed := time.Since(start)

		if err != nil {
			r.metrics().RecordStageAttempt(ctx, stage, logging.StatusError, elapsed)
			if !fault.Retryable(err) {
				logger.Error("attempt failed, not retryable",
					logging.Attempt(attempt),
					logging.Kind(string(fault.KindOf(err))),
					logging.Err(err),
				)
				return backoff.Permanent(err)
			}
			logger.Warn("attempt failed",
				logging.Attempt(attempt),
				logging.Kind(string(fault.KindOf(err))),
				logging.Err(err),
			)
			return err
		}

		r.metrics().RecordStageAttempt(ctx, stage, logging.StatusSuccess, elapsed)
		logger.Debug("attempt succeeded", logging.Attempt(attempt))
		return nil
	}, policy)

	return attempt, err
}

func (r *Runner) maxAttempts() int {
	if r.MaxAttempts > 0 {
		return r.MaxAttempts
	}
	return DefaultMaxAttempts
}

func (r *Runner) retryDelay() time.Duration {
	if r.RetryDelay < 0 {
		return 0
	}
	if r.RetryDelay == 0 {
		return DefaultRetryDelay
	}
	return r.RetryDelay
}
