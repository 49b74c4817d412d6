package agenda

import (
	"strings"
	"testing"
	"time"
)

var jakarta = time.FixedZone("UTC+07:00", 7*3600)

func day(t *testing.T) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", "2024-08-17", jakarta)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", "2024-08-17 "+hhmm, jakarta)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestFormatTimedAndAllDay(t *testing.T) {
	// A timed meeting from the primary calendar and an all-day holiday
	// from the holiday calendar, in that source order.
	sources := []SourceEvents{
		{
			SourceID: "primary",
			Events: []Event{
				{Summary: "Standup", Start: at(t, "09:00"), End: at(t, "09:15")},
			},
		},
		{
			SourceID: "holidays",
			Events: []Event{
				{Summary: "Independence Day", Start: day(t), AllDay: true},
			},
		},
	}

	got := Format(day(t), sources)

	want := "Schedule for 2024-08-17:\n" +
		"- [2024-08-17] Standup (09:00 - 09:15)\n" +
		"- [2024-08-17] Independence Day (All-day)\n"
	if got.Text != want {
		t.Errorf("Format() = %q, want %q", got.Text, want)
	}
	if got.Lines != 2 {
		t.Errorf("Lines = %d, want 2", got.Lines)
	}
	if got.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", got.Skipped)
	}
}

func TestFormatEmptyDay(t *testing.T) {
	tests := []struct {
		name    string
		sources []SourceEvents
	}{
		{name: "no sources", sources: nil},
		{name: "sources without events", sources: []SourceEvents{{SourceID: "primary"}, {SourceID: "holidays"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(day(t), tt.sources)
			want := "No events scheduled for 2024-08-17."
			if got.Text != want {
				t.Errorf("Format() = %q, want %q", got.Text, want)
			}
			if got.Lines != 0 {
				t.Errorf("Lines = %d, want 0", got.Lines)
			}
		})
	}
}

func TestFormatLineCountMatchesWellFormedEvents(t *testing.T) {
	sources := []SourceEvents{
		{
			SourceID: "primary",
			Events: []Event{
				{Summary: "One", Start: at(t, "08:00"), End: at(t, "09:00")},
				{Summary: "No start marker"}, // malformed
				{Summary: "Two", Start: at(t, "10:00"), End: at(t, "11:00")},
			},
		},
		{
			SourceID: "holidays",
			Events: []Event{
				{Summary: "Holiday", Start: day(t), AllDay: true},
			},
		},
	}

	got := Format(day(t), sources)

	if got.Lines != 3 {
		t.Errorf("Lines = %d, want 3", got.Lines)
	}
	if got.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", got.Skipped)
	}
	if strings.Contains(got.Text, "No start marker") {
		t.Error("malformed record leaked into the digest")
	}

	// Header plus one line per well-formed event, trailing newline.
	gotLines := strings.Count(got.Text, "\n")
	if gotLines != got.Lines+1 {
		t.Errorf("newline count = %d, want %d", gotLines, got.Lines+1)
	}
}

func TestFormatAllMalformedFallsBackToEmptyMessage(t *testing.T) {
	sources := []SourceEvents{
		{SourceID: "primary", Events: []Event{{Summary: "Broken"}, {Summary: "Also broken"}}},
	}

	got := Format(day(t), sources)

	if got.Text != "No events scheduled for 2024-08-17." {
		t.Errorf("Format() = %q", got.Text)
	}
	if got.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", got.Skipped)
	}
}

func TestFormatOrdering(t *testing.T) {
	// Events arrive out of order inside a source and must be sorted by
	// start ascending; sources stay in configured order regardless of
	// their event times.
	sources := []SourceEvents{
		{
			SourceID: "primary",
			Events: []Event{
				{Summary: "Late", Start: at(t, "17:00"), End: at(t, "18:00")},
				{Summary: "Early", Start: at(t, "07:30"), End: at(t, "08:00")},
				{Summary: "Midday", Start: at(t, "12:00"), End: at(t, "13:00")},
			},
		},
		{
			SourceID: "team",
			Events: []Event{
				{Summary: "Team breakfast", Start: at(t, "06:00"), End: at(t, "07:00")},
			},
		},
	}

	got := Format(day(t), sources)

	order := []string{"Early", "Midday", "Late", "Team breakfast"}
	last := -1
	for _, summary := range order {
		idx := strings.Index(got.Text, summary)
		if idx < 0 {
			t.Fatalf("missing %q in digest %q", summary, got.Text)
		}
		if idx < last {
			t.Errorf("%q appears out of order in digest:\n%s", summary, got.Text)
		}
		last = idx
	}
}

func TestFormatIsPure(t *testing.T) {
	sources := []SourceEvents{
		{
			SourceID: "primary",
			Events: []Event{
				{Summary: "B", Start: at(t, "15:00"), End: at(t, "16:00")},
				{Summary: "A", Start: at(t, "09:00"), End: at(t, "10:00")},
			},
		},
	}

	first := Format(day(t), sources)
	second := Format(day(t), sources)

	if first.Text != second.Text {
		t.Errorf("Format is not deterministic:\n%q\nvs\n%q", first.Text, second.Text)
	}

	// The input slices must not be reordered by the sort.
	if sources[0].Events[0].Summary != "B" {
		t.Error("Format mutated its input")
	}
}

func TestFormatUntitledAndOpenEnded(t *testing.T) {
	sources := []SourceEvents{
		{
			SourceID: "primary",
			Events: []Event{
				{Start: at(t, "09:00"), End: at(t, "10:00")},
				{Summary: "Open ended", Start: at(t, "20:00")},
			},
		},
	}

	got := Format(day(t), sources)

	if !strings.Contains(got.Text, "- [2024-08-17] Untitled Event (09:00 - 10:00)") {
		t.Errorf("missing untitled fallback in %q", got.Text)
	}
	if !strings.Contains(got.Text, "- [2024-08-17] Open ended (20:00)") {
		t.Errorf("missing open-ended line in %q", got.Text)
	}
}

func TestFormatRendersInFixedOffset(t *testing.T) {
	// 02:00 UTC is 09:00 in the +07:00 window.
	utcStart := time.Date(2024, 8, 17, 2, 0, 0, 0, time.UTC)
	sources := []SourceEvents{
		{
			SourceID: "primary",
			Events: []Event{
				{Summary: "Standup", Start: utcStart, End: utcStart.Add(15 * time.Minute)},
			},
		},
	}

	got := Format(day(t), sources)

	if !strings.Contains(got.Text, "(09:00 - 09:15)") {
		t.Errorf("expected times rendered in +07:00, got %q", got.Text)
	}
}
