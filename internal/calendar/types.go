package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/daybrief/internal/agenda"
)

// toEvent converts a Google Calendar event to an agenda event.
//
// The all-day distinction comes straight from the wire format: a Date
// start marker means all-day, a DateTime marker means timed. An
// unparseable start marker leaves the start zero; the formatter drops
// such records without failing the digest.
func toEvent(event *calendar.Event, loc *time.Location) agenda.Event {
	if event == nil {
		return agenda.Event{}
	}

	e := agenda.Event{
		Summary: event.Summary,
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				e.Start = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.ParseInLocation("2006-01-02", event.Start.Date, loc); err == nil {
				e.Start = t
				e.AllDay = true
			}
		}
	}

	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				e.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.ParseInLocation("2006-01-02", event.End.Date, loc); err == nil {
				e.End = t
			}
		}
	}

	return e
}
