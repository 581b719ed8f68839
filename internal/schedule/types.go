package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End). It represents either a
// busy period owned by a calendar or a free slot produced by the engine.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the two intervals share at least one instant.
// Back-to-back intervals (iv.End == other.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// In returns the interval with both endpoints converted to loc. The absolute
// instants are unchanged.
func (iv Interval) In(loc *time.Location) Interval {
	return Interval{Start: iv.Start.In(loc), End: iv.End.In(loc)}
}

// Validate returns ErrInvalidInterval unless Start < End.
func (iv Interval) Validate() error {
	if !iv.End.After(iv.Start) {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return nil
}

// SearchWindow bounds a free-slot query: slots are computed within
// [Start, End) and must be at least Duration long.
type SearchWindow struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Validate returns ErrInvalidInterval unless Start < End and Duration > 0.
func (w SearchWindow) Validate() error {
	if err := (Interval{Start: w.Start, End: w.End}).Validate(); err != nil {
		return err
	}
	if w.Duration <= 0 {
		return fmt.Errorf("%w: window duration must be positive, got %s", ErrInvalidInterval, w.Duration)
	}
	return nil
}

// TimeOfDay is a wall-clock time within a day, independent of date and zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour) into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 24 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return t, nil
}

// String renders the time of day as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// minutes returns the offset from midnight in minutes.
func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// BusinessHours restricts free slots to a daily open interval. A slot is
// valid only if it lies entirely within [Open, Close) of a single calendar
// day on which the hours apply.
type BusinessHours struct {
	Open  TimeOfDay
	Close TimeOfDay

	// Weekdays lists the days the hours apply to. Empty means every day.
	Weekdays []time.Weekday
}

// Validate checks that Open precedes Close.
func (bh BusinessHours) Validate() error {
	if bh.Open.minutes() >= bh.Close.minutes() {
		return fmt.Errorf("%w: business hours open %s is not before close %s",
			ErrInvalidInterval, bh.Open, bh.Close)
	}
	return nil
}

// appliesOn reports whether the hours are in effect on the given weekday.
func (bh BusinessHours) appliesOn(day time.Weekday) bool {
	if len(bh.Weekdays) == 0 {
		return true
	}
	for _, wd := range bh.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

// dayInterval returns the open interval for the calendar day containing t,
// in t's location. ok is false when the hours do not apply on that weekday.
// The instants are built with time.Date, so DST transitions shift the
// absolute length of the interval rather than its wall-clock bounds.
func (bh BusinessHours) dayInterval(t time.Time) (Interval, bool) {
	if !bh.appliesOn(t.Weekday()) {
		return Interval{}, false
	}
	y, m, d := t.Date()
	loc := t.Location()
	return Interval{
		Start: time.Date(y, m, d, bh.Open.Hour, bh.Open.Minute, 0, 0, loc),
		End:   time.Date(y, m, d, bh.Close.Hour, bh.Close.Minute, 0, 0, loc),
	}, true
}

// PreferenceHours maps a spoken time-of-day preference onto business hours:
// morning 08:00-12:00, afternoon 12:00-17:00, evening 17:00-20:00, and
// anytime (or empty) 08:00-18:00.
func PreferenceHours(preference string) (BusinessHours, error) {
	switch preference {
	case "morning":
		return BusinessHours{Open: TimeOfDay{Hour: 8}, Close: TimeOfDay{Hour: 12}}, nil
	case "afternoon":
		return BusinessHours{Open: TimeOfDay{Hour: 12}, Close: TimeOfDay{Hour: 17}}, nil
	case "evening":
		return BusinessHours{Open: TimeOfDay{Hour: 17}, Close: TimeOfDay{Hour: 20}}, nil
	case "anytime", "":
		return BusinessHours{Open: TimeOfDay{Hour: 8}, Close: TimeOfDay{Hour: 18}}, nil
	default:
		return BusinessHours{}, fmt.Errorf("unknown time preference %q (expected morning, afternoon, evening or anytime)", preference)
	}
}
