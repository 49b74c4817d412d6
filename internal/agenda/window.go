package agenda

import "time"

// Window is the half-open [Start, End) interval queried from every
// calendar source.
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns the window covering the calendar day of t in t's
// location.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Today returns the window for the current day in the given fixed
// offset. "Today" is defined by the offset alone, never by the runtime
// locale.
func Today(loc *time.Location) Window {
	return DayWindow(time.Now().In(loc))
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// Day returns the window's start, which identifies the day being
// formatted.
func (w Window) Day() time.Time {
	return w.Start
}
