package agenda

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// untitledSummary replaces an empty event summary.
	untitledSummary = "Untitled Event"
)

// Format renders the events of one day into a single text block.
//
// It is a pure function: the same inputs always produce the identical
// Agenda. Within a source, events are ordered by start time ascending;
// sources are concatenated in the order given. Records without a start
// marker are dropped and counted in Skipped.
func Format(day time.Time, sources []SourceEvents) Agenda {
	date := day.Format(dateLayout)
	loc := day.Location()

	var b strings.Builder
	lines := 0
	skipped := 0

	for _, src := range sources {
		events := make([]Event, len(src.Events))
		copy(events, src.Events)
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Start.Before(events[j].Start)
		})

		for _, e := range events {
			line, ok := formatLine(e, loc)
			if !ok {
				skipped++
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
			lines++
		}
	}

	if lines == 0 {
		return Agenda{
			Text:    fmt.Sprintf("No events scheduled for %s.", date),
			Skipped: skipped,
		}
	}

	return Agenda{
		Text:    fmt.Sprintf("Schedule for %s:\n%s", date, b.String()),
		Lines:   lines,
		Skipped: skipped,
	}
}

// formatLine renders one event. ok is false for malformed records
// (missing start marker).
func formatLine(e Event, loc *time.Location) (string, bool) {
	if e.Start.IsZero() {
		return "", false
	}

	title := e.Summary
	if title == "" {
		title = untitledSummary
	}

	start := e.Start.In(loc)
	eventDate := start.Format(dateLayout)

	var timeStr string
	if e.AllDay {
		timeStr = "All-day"
	} else {
		timeStr = start.Format(timeLayout)
		if !e.End.IsZero() {
			timeStr += " - " + e.End.In(loc).Format(timeLayout)
		}
	}

	return fmt.Sprintf("- [%s] %s (%s)", eventDate, title, timeStr), true
}
