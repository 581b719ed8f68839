package scheduling_tools

import (
	"fmt"
	"strings"
	"time"

	"voxsched/internal/calendar"
	"voxsched/internal/schedule"
)

// formatSlot renders a free slot the way it would be spoken:
// "Monday, March 3 from 9:00 AM to 10:30 AM".
func formatSlot(iv schedule.Interval) string {
	return fmt.Sprintf("%s from %s to %s",
		iv.Start.Format("Monday, January 2"),
		iv.Start.Format("3:04 PM"),
		iv.End.Format("3:04 PM"))
}

// formatSlots renders up to max slots as a numbered spoken list, noting how
// many more were found beyond the cap.
func formatSlots(slots []schedule.Interval, duration time.Duration, max int) string {
	if len(slots) == 0 {
		return "No available time slots found in that range. Try a different day or a shorter duration."
	}

	shown := slots
	if len(shown) > max {
		shown = shown[:max]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d available option(s) for a %d minute meeting:\n\n",
		len(slots), int(duration.Minutes()))
	for i, slot := range shown {
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatSlot(slot))
	}
	if len(slots) > len(shown) {
		fmt.Fprintf(&b, "\n...and %d more. Narrow the range to hear the rest.", len(slots)-len(shown))
	}
	return b.String()
}

// formatConflicts renders the events blocking a candidate time so the user
// hears what is in the way, not just that the time is taken.
func formatConflicts(candidate schedule.Interval, conflicts []calendar.EventSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is not available. It conflicts with:\n\n", formatSlot(candidate))
	for i, ev := range conflicts {
		title := ev.Summary
		if title == "" {
			title = "a private event"
		}
		fmt.Fprintf(&b, "%d. %s (%s to %s)\n", i+1, title,
			ev.Start.Format("3:04 PM"), ev.End.Format("3:04 PM"))
	}
	return b.String()
}

// formatEvents renders an event listing for readback.
func formatEvents(window schedule.Interval, events []calendar.EventSummary) string {
	if len(events) == 0 {
		return fmt.Sprintf("No events between %s and %s.",
			window.Start.Format("Monday, January 2"),
			window.End.Add(-time.Nanosecond).Format("Monday, January 2"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d event(s):\n\n", len(events))
	for i, ev := range events {
		fmt.Fprintf(&b, "%d. %s: %s from %s to %s",
			i+1, ev.Summary,
			ev.Start.Format("Monday, January 2"),
			ev.Start.Format("3:04 PM"),
			ev.End.Format("3:04 PM"))
		if ev.Location != "" {
			fmt.Fprintf(&b, " at %s", ev.Location)
		}
		b.WriteString("\n")
	}
	return b.String()
}
