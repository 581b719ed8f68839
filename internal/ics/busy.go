package ics

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"voxsched/internal/schedule"
)

// maxOccurrencesPerEvent caps recurrence expansion so a rule without an end
// cannot blow up a query over a long window.
const maxOccurrencesPerEvent = 1000

// BusyIntervals expands the events into the busy intervals that overlap the
// window, converted to the window's location and sorted ascending. The
// result feeds directly into the availability engine.
func BusyIntervals(events []Event, window schedule.Interval) ([]schedule.Interval, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	loc := window.Start.Location()
	var busy []schedule.Interval
	for _, ev := range events {
		occurrences, err := expand(ev, window)
		if err != nil {
			return nil, err
		}
		for _, iv := range occurrences {
			busy = append(busy, iv.In(loc))
		}
	}

	sort.Slice(busy, func(i, j int) bool {
		if busy[i].Start.Equal(busy[j].Start) {
			return busy[i].End.Before(busy[j].End)
		}
		return busy[i].Start.Before(busy[j].Start)
	})

	return busy, nil
}

func expand(ev Event, window schedule.Interval) ([]schedule.Interval, error) {
	start, end := ev.Start, ev.End
	if ev.AllDay {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
	}
	if !end.After(start) {
		// Zero-length or inverted events block nothing.
		return nil, nil
	}

	if ev.RawRRule == "" {
		iv := schedule.Interval{Start: start, End: end}
		if iv.Overlaps(window) {
			return []schedule.Interval{iv}, nil
		}
		return nil, nil
	}

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil, fmt.Errorf("invalid RRULE %q for event %s: %w", ev.RawRRule, ev.UID, err)
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(start.Location()))
	}

	dur := end.Sub(start)

	// An occurrence starting up to dur before the window can still reach
	// into it, so widen the query range on the left.
	rangeStart := window.Start.Add(-dur).In(start.Location())
	rangeEnd := window.End.In(start.Location())

	times := set.Between(rangeStart, rangeEnd, true)
	if len(times) > maxOccurrencesPerEvent {
		times = times[:maxOccurrencesPerEvent]
	}

	var out []schedule.Interval
	for _, occStart := range times {
		iv := schedule.Interval{Start: occStart, End: occStart.Add(dur)}
		if iv.Overlaps(window) {
			out = append(out, iv)
		}
	}
	return out, nil
}
