package schedule

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayouts are the accepted explicit formats, most specific first.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

const dateOnlyLayout = "2006-01-02"

// ParseLocalTime parses an explicit date or datetime string in one of the
// supported layouts, interpreted in loc. Fragments without a time component
// resolve to midnight of that day.
func ParseLocalTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: could not parse %q", ErrAmbiguousInput, s)
}

// ResolveDate resolves a date fragment relative to now, returning midnight
// of the resolved day in now's location. Accepted fragments:
//
//   - explicit dates in any supported layout (time portion discarded)
//   - "today", "tomorrow"
//   - "this <weekday>" (the upcoming occurrence, today included) and
//     "next <weekday>" (one week after the upcoming occurrence)
//
// A bare weekday name carries no direction and resolves to
// ErrAmbiguousInput; the caller must re-prompt instead of guessing.
func ResolveDate(now time.Time, fragment string) (time.Time, error) {
	loc := now.Location()
	frag := strings.ToLower(strings.TrimSpace(fragment))
	if frag == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrAmbiguousInput)
	}

	today := midnight(now)
	switch frag {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if t, err := ParseLocalTime(frag, loc); err == nil {
		return midnight(t), nil
	}

	if _, ok := weekdayByName(frag); ok {
		// No direction: "friday" could mean this week or next.
		return time.Time{}, fmt.Errorf("%w: weekday %q needs a direction such as \"this\" or \"next\"", ErrAmbiguousInput, frag)
	}

	if direction, rest, found := strings.Cut(frag, " "); found {
		if wd, ok := weekdayByName(strings.TrimSpace(rest)); ok {
			switch direction {
			case "this":
				return upcomingWeekday(today, wd), nil
			case "next":
				// Always a week beyond "this", so the direction word
				// stays meaningful on every weekday.
				return upcomingWeekday(today, wd).AddDate(0, 0, 7), nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("%w: could not resolve date %q", ErrAmbiguousInput, fragment)
}

// ResolveRange builds a concrete Interval from start and end fragments,
// relative to now. A date-only end fragment is extended to the start of the
// following day so the whole end day is covered.
func ResolveRange(now time.Time, startFragment, endFragment string) (Interval, error) {
	loc := now.Location()

	start, _, err := resolveInstant(now, startFragment, loc)
	if err != nil {
		return Interval{}, err
	}

	end, endHasTime, err := resolveInstant(now, endFragment, loc)
	if err != nil {
		return Interval{}, err
	}
	if !endHasTime {
		end = end.AddDate(0, 0, 1)
	}

	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// ResolveWindow builds a SearchWindow from start and end date fragments and
// a minimum slot duration, relative to now.
func ResolveWindow(now time.Time, startFragment, endFragment string, duration time.Duration) (SearchWindow, error) {
	iv, err := ResolveRange(now, startFragment, endFragment)
	if err != nil {
		return SearchWindow{}, err
	}

	w := SearchWindow{Start: iv.Start, End: iv.End, Duration: duration}
	if err := w.Validate(); err != nil {
		return SearchWindow{}, err
	}
	return w, nil
}

// ResolveCandidate builds a concrete Interval from explicit start and end
// datetime strings, relative to now's location.
func ResolveCandidate(now time.Time, startStr, endStr string) (Interval, error) {
	loc := now.Location()
	start, err := ParseLocalTime(startStr, loc)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseLocalTime(endStr, loc)
	if err != nil {
		return Interval{}, err
	}
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// resolveInstant resolves a fragment that may be an explicit datetime, an
// explicit date, or a relative date. hasTime reports whether the fragment
// carried a time-of-day component.
func resolveInstant(now time.Time, fragment string, loc *time.Location) (t time.Time, hasTime bool, err error) {
	frag := strings.TrimSpace(fragment)
	for _, layout := range dateTimeLayouts {
		parsed, perr := time.ParseInLocation(layout, frag, loc)
		if perr != nil {
			continue
		}
		return parsed, layout != dateOnlyLayout, nil
	}
	t, err = ResolveDate(now, frag)
	return t, false, err
}

// upcomingWeekday returns the next day with the given weekday at or after
// base, base itself included.
func upcomingWeekday(base time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(base.Weekday()) + 7) % 7
	return base.AddDate(0, 0, delta)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func weekdayByName(s string) (time.Weekday, bool) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}
