package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	calendar "google.golang.org/api/calendar/v3"

	"voxsched/internal/schedule"
)

// EventInput represents the input for creating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
	Recurrence  []string // RRULE, RDATE, EXDATE

	// AddMeet attaches a Google Meet conference to the event.
	AddMeet bool
}

// Validate checks the input before it is sent to the API. The time bounds
// follow the engine's half-open convention, so end must be strictly after
// start.
func (in EventInput) Validate() error {
	if strings.TrimSpace(in.Summary) == "" {
		return fmt.Errorf("event summary cannot be empty")
	}
	iv := schedule.Interval{Start: in.Start, End: in.End}
	if err := iv.Validate(); err != nil {
		return err
	}
	for _, rule := range in.Recurrence {
		if err := validateRecurrenceRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// validateRecurrenceRule rejects malformed RRULE lines before the API sees
// them. RDATE and EXDATE lines are passed through unchecked.
func validateRecurrenceRule(rule string) error {
	body, ok := strings.CutPrefix(rule, "RRULE:")
	if !ok {
		if strings.HasPrefix(rule, "RDATE") || strings.HasPrefix(rule, "EXDATE") {
			return nil
		}
		return fmt.Errorf("unsupported recurrence line %q", rule)
	}
	if _, err := rrule.StrToRRule(body); err != nil {
		return fmt.Errorf("invalid recurrence rule %q: %w", rule, err)
	}
	return nil
}

// EventSummary represents a simplified calendar event for listing
type EventSummary struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Organizer   string
	Status      string
	Attendees   []AttendeeInfo
	MeetLink    string
}

// Interval returns the event's time bounds as an engine interval.
func (e EventSummary) Interval() schedule.Interval {
	return schedule.Interval{Start: e.Start, End: e.End}
}

// AttendeeInfo represents information about an event attendee
type AttendeeInfo struct {
	Email          string
	DisplayName    string
	ResponseStatus string // "needsAction", "declined", "tentative", "accepted"
	Optional       bool
	Organizer      bool
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(event *calendar.Event) EventSummary {
	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
	}

	summary.Start = parseEventTime(event.Start)
	summary.End = parseEventTime(event.End)

	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}

	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
		})
	}

	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				summary.MeetLink = ep.Uri
				break
			}
		}
	}

	return summary
}

// parseEventTime handles both timed and all-day event boundaries.
func parseEventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
