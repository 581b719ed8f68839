package calendar

import (
	"errors"
	"fmt"
	"testing"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"voxsched/internal/schedule"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", &googleapi.Error{Code: 401}, ErrAuth},
		{"forbidden", &googleapi.Error{Code: 403}, ErrAuth},
		{"rate limited", &googleapi.Error{Code: 429}, ErrUnavailable},
		{"server error", &googleapi.Error{Code: 503}, ErrUnavailable},
		{"transport failure", fmt.Errorf("connection refused"), ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	// Client errors like 404 keep their identity.
	notFound := &googleapi.Error{Code: 404}
	if got := classify(notFound); errors.Is(got, ErrAuth) || errors.Is(got, ErrUnavailable) {
		t.Errorf("classify(404) should pass through, got %v", got)
	}
}

func TestBusyFromResponse(t *testing.T) {
	response := &calendar.FreeBusyResponse{
		Calendars: map[string]calendar.FreeBusyCalendar{
			"primary": {
				Busy: []*calendar.TimePeriod{
					{Start: "2025-03-05T14:00:00Z", End: "2025-03-05T15:00:00Z"},
					{Start: "2025-03-05T10:00:00Z", End: "2025-03-05T12:00:00Z"},
					{Start: "2025-03-05T10:00:00Z", End: "2025-03-05T10:30:00Z"},
				},
			},
		},
	}

	busy, err := busyFromResponse(response, "primary", time.UTC)
	if err != nil {
		t.Fatalf("busyFromResponse() error = %v", err)
	}

	// Sorted by start, equal starts ordered by end.
	want := []schedule.Interval{
		{Start: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)},
		{Start: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)},
		{Start: time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC)},
	}
	if len(busy) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(busy))
	}
	for i := range want {
		if !busy[i].Start.Equal(want[i].Start) || !busy[i].End.Equal(want[i].End) {
			t.Errorf("interval %d = %v/%v, want %v/%v", i, busy[i].Start, busy[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestBusyFromResponse_Errors(t *testing.T) {
	withError := &calendar.FreeBusyResponse{
		Calendars: map[string]calendar.FreeBusyCalendar{
			"primary": {Errors: []*calendar.Error{{Reason: "notFound"}}},
		},
	}
	if _, err := busyFromResponse(withError, "primary", time.UTC); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for calendar-level error, got %v", err)
	}

	malformed := &calendar.FreeBusyResponse{
		Calendars: map[string]calendar.FreeBusyCalendar{
			"primary": {Busy: []*calendar.TimePeriod{{Start: "not a time", End: "2025-03-05T15:00:00Z"}}},
		},
	}
	if _, err := busyFromResponse(malformed, "primary", time.UTC); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for malformed period, got %v", err)
	}
}

func TestEventInputValidate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2025, time.March, 7, 10, 0, 0, 0, loc)

	valid := EventInput{
		Summary: "Dentist",
		Start:   start,
		End:     start.Add(30 * time.Minute),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	tests := []struct {
		name  string
		input EventInput
	}{
		{"empty summary", EventInput{Start: start, End: start.Add(time.Hour)}},
		{"inverted times", EventInput{Summary: "x", Start: start.Add(time.Hour), End: start}},
		{"zero-length", EventInput{Summary: "x", Start: start, End: start}},
		{"bad recurrence", EventInput{Summary: "x", Start: start, End: start.Add(time.Hour), Recurrence: []string{"RRULE:FREQ=NEVER"}}},
		{"unknown recurrence line", EventInput{Summary: "x", Start: start, End: start.Add(time.Hour), Recurrence: []string{"BOGUS:FREQ=DAILY"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.input.Validate(); err == nil {
				t.Error("Validate() should reject input")
			}
		})
	}

	inverted := EventInput{Summary: "x", Start: start.Add(time.Hour), End: start}
	if err := inverted.Validate(); !errors.Is(err, schedule.ErrInvalidInterval) {
		t.Errorf("Validate() error = %v, want ErrInvalidInterval", err)
	}
}

func TestValidateRecurrenceRule(t *testing.T) {
	valid := []string{
		"RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
		"RRULE:FREQ=DAILY;COUNT=10",
		"EXDATE;TZID=America/New_York:20250307T100000",
		"RDATE:20250401T100000Z",
	}
	for _, rule := range valid {
		if err := validateRecurrenceRule(rule); err != nil {
			t.Errorf("validateRecurrenceRule(%q) error = %v, want nil", rule, err)
		}
	}

	invalid := []string{
		"RRULE:FREQ=NEVER",
		"RRULE:",
		"not a rule",
	}
	for _, rule := range invalid {
		if err := validateRecurrenceRule(rule); err == nil {
			t.Errorf("validateRecurrenceRule(%q) should fail", rule)
		}
	}
}

func TestBuildEvent(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2025, time.March, 7, 10, 0, 0, 0, loc)

	input := EventInput{
		Summary:     "Team sync",
		Description: "weekly",
		Location:    "Room 2",
		Start:       start,
		End:         start.Add(time.Hour),
		Attendees:   []string{"a@example.com", "b@example.com"},
		Recurrence:  []string{"RRULE:FREQ=WEEKLY"},
	}

	event := buildEvent(input)

	if event.Start.TimeZone != "Europe/Berlin" {
		t.Errorf("Start.TimeZone = %s, want Europe/Berlin", event.Start.TimeZone)
	}
	if event.Start.DateTime != start.Format(time.RFC3339) {
		t.Errorf("Start.DateTime = %s", event.Start.DateTime)
	}
	if len(event.Attendees) != 2 {
		t.Errorf("attendees = %d, want 2", len(event.Attendees))
	}
	if len(event.Recurrence) != 1 {
		t.Errorf("recurrence = %d, want 1", len(event.Recurrence))
	}

	// Explicit timezone wins over the start location.
	input.TimeZone = "UTC"
	event = buildEvent(input)
	if event.Start.TimeZone != "UTC" {
		t.Errorf("Start.TimeZone = %s, want UTC", event.Start.TimeZone)
	}
}
