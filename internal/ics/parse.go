package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Event is the normalized representation of a VEVENT as far as the
// scheduler cares: when it blocks the calendar and how it recurs.
type Event struct {
	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule string
	ExDates  []time.Time
}

// Parse parses a single iCalendar payload into events. VEVENTs without a
// usable DTSTART are skipped; recurrence rules are recorded raw and
// expanded later by BusyIntervals.
func Parse(body []byte) ([]Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ics body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ics: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, perr := parseVEvent(ve)
		if perr != nil {
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var out Event

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	out.AllDay = isAllDay(ve.GetProperty(ical.ComponentPropertyDtStart))

	start, err := ve.GetStartAt()
	if err != nil {
		start, err = ve.GetAllDayStartAt()
		if err != nil {
			return out, fmt.Errorf("missing DTSTART: %w", err)
		}
	}
	out.Start = start

	end, err := ve.GetEndAt()
	if err != nil {
		end, err = ve.GetAllDayEndAt()
		if err != nil {
			end = time.Time{}
		}
	}
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, terr := parseICSTime(part); terr == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, nil
}

// isAllDay detects VALUE=DATE starts, either via the explicit parameter or
// the absence of a time component in the value.
func isAllDay(dtStart *ical.IANAProperty) bool {
	if dtStart == nil {
		return false
	}
	if vs, ok := dtStart.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(dtStart.Value, "T")
}

// parseICSTime parses the basic EXDATE forms: UTC date-time, floating
// date-time and date-only.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
