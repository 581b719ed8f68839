package schedule

import (
	"sort"
	"time"
)

// FreeSlots computes the free gaps of at least window.Duration within
// [window.Start, window.End), given the calendar's busy intervals. When
// hours is non-nil each gap is additionally intersected with the
// business-hours sub-interval of every calendar day it spans, so an
// overnight gap splits into per-day slots.
//
// The returned intervals are disjoint, sorted ascending, each at least
// window.Duration long, and none overlaps a busy interval. A window with no
// room left yields an empty slice, not an error. Busy intervals need not be
// sorted or disjoint; an interval with end <= start is rejected.
func FreeSlots(window SearchWindow, busy []Interval, hours *BusinessHours) ([]Interval, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if hours != nil {
		if err := hours.Validate(); err != nil {
			return nil, err
		}
	}

	clipped := make([]Interval, 0, len(busy))
	for _, b := range busy {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		c, ok := clip(b, window)
		if ok {
			clipped = append(clipped, c)
		}
	}

	merged := mergeIntervals(clipped)
	gaps := complement(window, merged)

	if hours != nil {
		gaps = applyBusinessHours(gaps, *hours)
	}

	slots := gaps[:0]
	for _, g := range gaps {
		if g.Duration() >= window.Duration {
			slots = append(slots, g)
		}
	}
	return slots, nil
}

// IsAvailable reports whether the candidate interval is free of conflicts.
// A busy interval conflicts iff busy.Start < candidate.End and
// busy.End > candidate.Start; back-to-back intervals are not a conflict.
func IsAvailable(candidate Interval, busy []Interval) (bool, error) {
	conflicts, err := Conflicts(candidate, busy)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// Conflicts returns the busy intervals that overlap the candidate, sorted by
// start (ties broken by end). The result is used for conflict readback when
// a requested time is taken.
func Conflicts(candidate Interval, busy []Interval) ([]Interval, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	var out []Interval
	for _, b := range busy {
		if b.Overlaps(candidate) {
			out = append(out, b)
		}
	}
	sortIntervals(out)
	return out, nil
}

// TrimToDuration shortens each slot to its first d-length slice. Callers use
// this when configuration asks for bookable slots rather than full gaps.
func TrimToDuration(slots []Interval, d time.Duration) []Interval {
	out := make([]Interval, 0, len(slots))
	for _, s := range slots {
		end := s.Start.Add(d)
		if end.After(s.End) {
			end = s.End
		}
		out = append(out, Interval{Start: s.Start, End: end})
	}
	return out
}

// clip restricts b to the window bounds. ok is false when they do not
// overlap at all.
func clip(b Interval, window SearchWindow) (Interval, bool) {
	if !b.Overlaps(Interval{Start: window.Start, End: window.End}) {
		return Interval{}, false
	}
	if b.Start.Before(window.Start) {
		b.Start = window.Start
	}
	if b.End.After(window.End) {
		b.End = window.End
	}
	return b, true
}

// mergeIntervals collapses overlapping or adjacent intervals into a minimal
// disjoint set, sorted by start. The classic sweep: sort, then extend the
// current interval while the next one starts at or before its end.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sortIntervals(intervals)

	merged := []Interval{intervals[0]}
	for _, next := range intervals[1:] {
		current := &merged[len(merged)-1]
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// complement returns the gaps of the window not covered by the merged,
// disjoint, sorted busy set.
func complement(window SearchWindow, merged []Interval) []Interval {
	var gaps []Interval
	cursor := window.Start
	for _, b := range merged {
		if b.Start.After(cursor) {
			gaps = append(gaps, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if window.End.After(cursor) {
		gaps = append(gaps, Interval{Start: cursor, End: window.End})
	}
	return gaps
}

// applyBusinessHours intersects each gap with the open interval of every
// calendar day it spans. Gaps outside the open hours disappear; a multi-day
// gap yields one sub-gap per applicable day.
func applyBusinessHours(gaps []Interval, hours BusinessHours) []Interval {
	var out []Interval
	for _, g := range gaps {
		loc := g.Start.Location()
		y, m, d := g.Start.In(loc).Date()
		for day := time.Date(y, m, d, 0, 0, 0, 0, loc); day.Before(g.End); day = day.AddDate(0, 0, 1) {
			open, ok := hours.dayInterval(day)
			if !ok || !open.Overlaps(g) {
				continue
			}
			sub := g
			if open.Start.After(sub.Start) {
				sub.Start = open.Start
			}
			if open.End.Before(sub.End) {
				sub.End = open.End
			}
			out = append(out, sub)
		}
	}
	return out
}

func sortIntervals(intervals []Interval) {
	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].End.Before(intervals[j].End)
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})
}
