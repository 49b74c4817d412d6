package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the retry policy.
type Kind string

const (
	// Authentication means credentials were rejected. Retrying cannot help;
	// the run needs an external re-auth.
	Authentication Kind = "authentication"

	// Quota means a calendar source rejected the request for exceeding its
	// API quota.
	Quota Kind = "quota"

	// RateLimit means the delivery endpoint is throttling us.
	RateLimit Kind = "rate_limit"

	// Network means a transient transport failure.
	Network Kind = "network"

	// Format means a single event record could not be rendered. It is
	// handled per-record inside the formatter and never reaches the
	// orchestrator.
	Format Kind = "format"

	// PayloadTooLarge means the agenda exceeds the destination's message
	// size limit. Retrying the same payload cannot help.
	PayloadTooLarge Kind = "payload_too_large"

	// Unknown is an unclassified failure. Treated as non-retryable:
	// retrying an unexplained error only hides a defect.
	Unknown Kind = "unknown"
)

// Fault is a classified failure from one pipeline stage.
//
// The orchestrator branches on the Retryable flag, not on the concrete
// type of the underlying error. Op names the operation that failed
// (e.g. "calendar.list", "telegram.send").
type Fault struct {
	Kind      Kind
	Retryable bool
	Op        string
	Err       error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Kind)
}

// Unwrap implements the errors.Unwrap interface.
func (f *Fault) Unwrap() error {
	return f.Err
}

// New creates a Fault of the given kind. The retryable flag is derived
// from the kind so callers cannot disagree with the policy.
func New(kind Kind, op string, err error) *Fault {
	return &Fault{
		Kind:      kind,
		Retryable: kindRetryable(kind),
		Op:        op,
		Err:       err,
	}
}

func kindRetryable(kind Kind) bool {
	switch kind {
	case Quota, RateLimit, Network:
		return true
	}
	return false
}

// KindOf returns the classification of err, or Unknown if err carries
// no Fault in its chain.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unknown
}

// Retryable reports whether err may succeed on a re-attempt. Errors
// without a Fault in their chain are not retryable.
func Retryable(err error) bool {
	var f *Fault
	if errors.As(err, &f) {
		return f.Retryable
	}
	return false
}
