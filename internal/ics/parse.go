package ics

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/teemow/daybrief/internal/agenda"
)

// parseVEvent normalizes one VEVENT. ok is false when the event has no
// usable DTSTART.
//
// All-day detection inspects the raw DTSTART marker: a VALUE=DATE
// parameter or a date-only value (no time component) means all-day.
// The distinction is captured here, at extraction time.
func parseVEvent(ve *ical.VEvent, loc *time.Location) (agenda.Event, bool) {
	var e agenda.Event

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Summary = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return e, false
	}

	if isDateOnly(dtStart) {
		start, err := time.ParseInLocation("20060102", dtStart.Value, loc)
		if err != nil {
			return e, false
		}
		e.Start = start
		e.AllDay = true

		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if end, err := time.ParseInLocation("20060102", dtEnd.Value, loc); err == nil {
				e.End = end
			}
		}
		return e, true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return e, false
	}
	e.Start = start

	if end, err := ve.GetEndAt(); err == nil {
		e.End = end
	}

	return e, true
}

func isDateOnly(p *ical.IANAProperty) bool {
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
