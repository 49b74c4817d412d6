package calendar

import (
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

var jakarta = time.FixedZone("UTC+07:00", 7*3600)

func TestToEventNil(t *testing.T) {
	e := toEvent(nil, jakarta)
	if !e.Start.IsZero() || e.Summary != "" {
		t.Errorf("expected zero event for nil input, got %+v", e)
	}
}

func TestToEventTimed(t *testing.T) {
	src := &calendar.Event{
		Summary: "Standup",
		Start:   &calendar.EventDateTime{DateTime: "2024-08-17T09:00:00+07:00"},
		End:     &calendar.EventDateTime{DateTime: "2024-08-17T09:15:00+07:00"},
	}

	e := toEvent(src, jakarta)

	if e.AllDay {
		t.Error("timed event classified as all-day")
	}
	if e.Summary != "Standup" {
		t.Errorf("Summary = %q", e.Summary)
	}
	if got := e.Start.In(jakarta).Format("15:04"); got != "09:00" {
		t.Errorf("Start = %s, want 09:00", got)
	}
	if got := e.End.In(jakarta).Format("15:04"); got != "09:15" {
		t.Errorf("End = %s, want 09:15", got)
	}
}

func TestToEventAllDay(t *testing.T) {
	src := &calendar.Event{
		Summary: "Independence Day",
		Start:   &calendar.EventDateTime{Date: "2024-08-17"},
		End:     &calendar.EventDateTime{Date: "2024-08-18"},
	}

	e := toEvent(src, jakarta)

	if !e.AllDay {
		t.Error("date-only start marker not classified as all-day")
	}
	want := time.Date(2024, 8, 17, 0, 0, 0, 0, jakarta)
	if !e.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", e.Start, want)
	}
}

func TestToEventMalformedStart(t *testing.T) {
	tests := []struct {
		name  string
		start *calendar.EventDateTime
	}{
		{name: "missing start", start: nil},
		{name: "empty markers", start: &calendar.EventDateTime{}},
		{name: "garbage datetime", start: &calendar.EventDateTime{DateTime: "yesterday-ish"}},
		{name: "garbage date", start: &calendar.EventDateTime{Date: "17-08-2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := toEvent(&calendar.Event{Summary: "x", Start: tt.start}, jakarta)
			if !e.Start.IsZero() {
				t.Errorf("expected zero start for malformed marker, got %v", e.Start)
			}
			if e.AllDay {
				t.Error("malformed marker must not be classified as all-day")
			}
		})
	}
}
