package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindRetryability(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{Authentication, false},
		{Quota, true},
		{RateLimit, true},
		{Network, true},
		{Format, false},
		{PayloadTooLarge, false},
		{Unknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			f := New(tt.kind, "op", errors.New("boom"))
			if f.Retryable != tt.retryable {
				t.Errorf("New(%s).Retryable = %v, want %v", tt.kind, f.Retryable, tt.retryable)
			}
			if got := Retryable(f); got != tt.retryable {
				t.Errorf("Retryable(%s) = %v, want %v", tt.kind, got, tt.retryable)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	f := New(Network, "calendar.list", errors.New("connection reset"))
	if got := KindOf(f); got != Network {
		t.Errorf("KindOf = %s, want %s", got, Network)
	}

	// Classification survives wrapping.
	wrapped := fmt.Errorf("extract stage: %w", f)
	if got := KindOf(wrapped); got != Network {
		t.Errorf("KindOf(wrapped) = %s, want %s", got, Network)
	}
	if !Retryable(wrapped) {
		t.Error("Retryable(wrapped) = false, want true")
	}

	if got := KindOf(errors.New("plain")); got != Unknown {
		t.Errorf("KindOf(plain) = %s, want %s", got, Unknown)
	}
	if Retryable(errors.New("plain")) {
		t.Error("Retryable(plain) = true, want false")
	}
	if Retryable(nil) {
		t.Error("Retryable(nil) = true, want false")
	}
}

func TestFaultError(t *testing.T) {
	f := New(Authentication, "telegram.send", errors.New("401 unauthorized"))
	want := "telegram.send: authentication: 401 unauthorized"
	if f.Error() != want {
		t.Errorf("Error() = %q, want %q", f.Error(), want)
	}

	if !errors.Is(f, f.Err) {
		t.Error("expected Unwrap to expose the underlying error")
	}

	noCause := New(Network, "ics.fetch", nil)
	if noCause.Error() != "ics.fetch: network" {
		t.Errorf("Error() = %q", noCause.Error())
	}
}
