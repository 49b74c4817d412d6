package agenda

import "time"

// Event is one fetched calendar item, normalized across source types.
// The all-day distinction is decided by the extractor from the raw start
// marker (date vs datetime); the formatter never re-infers it.
type Event struct {
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

// SourceEvents is the ordered event list of a single calendar source.
type SourceEvents struct {
	SourceID string
	Events   []Event
}

// Agenda is the rendered daily digest.
type Agenda struct {
	// Text is the complete message body, one line per well-formed event.
	Text string

	// Lines is the number of event lines rendered.
	Lines int

	// Skipped is the number of malformed records dropped. A bad record
	// never aborts the rest of the digest.
	Skipped int
}
