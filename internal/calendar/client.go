package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"voxsched/internal/google"
	"voxsched/internal/schedule"
)

// Client wraps the Google Calendar service
type Client struct {
	svc     *calendar.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccountWithProvider checks if credentials exist for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// HasTokenForAccount checks if credentials exist for the specified account
func HasTokenForAccount(account string) bool {
	return HasTokenForAccountWithProvider(account, google.DefaultTokenProvider())
}

// NewClientForAccountWithProvider creates a new Calendar client authenticated
// for a specific account, with credentials from the given provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	ts, err := tokenProvider.TokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("%w: no credentials for account %s: %v", ErrAuth, account, err)
	}

	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClientForAccount creates a new Calendar client for a specific account
// using the default token provider for the environment.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.DefaultTokenProvider())
}

// NewClient creates a new Calendar client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListEvents lists events in a calendar within a time range. Expanded
// recurring instances are returned individually, ordered by start time.
func (c *Client) ListEvents(calendarID string, timeMin, timeMax time.Time, query string) ([]EventSummary, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")

	if query != "" {
		call = call.Q(query)
	}

	events, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", classify(err))
	}

	var summaries []EventSummary
	for _, event := range events.Items {
		summaries = append(summaries, toEventSummary(event))
	}

	return summaries, nil
}

// BusyIntervals queries freebusy for the calendar and returns its busy
// periods within the window as engine intervals, sorted ascending and
// converted to the window's location.
func (c *Client) BusyIntervals(calendarID string, window schedule.Interval) ([]schedule.Interval, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	query := &calendar.FreeBusyRequest{
		TimeMin: window.Start.Format(time.RFC3339),
		TimeMax: window.End.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}

	result, err := c.svc.Freebusy.Query(query).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", classify(err))
	}

	return busyFromResponse(result, calendarID, window.Start.Location())
}

// busyFromResponse converts a freebusy response into engine intervals in
// loc, sorted by start with ties broken by end ascending.
func busyFromResponse(result *calendar.FreeBusyResponse, calendarID string, loc *time.Location) ([]schedule.Interval, error) {
	var busy []schedule.Interval
	for _, cal := range result.Calendars {
		for _, ferr := range cal.Errors {
			return nil, fmt.Errorf("%w: freebusy error for %s: %s", ErrUnavailable, calendarID, ferr.Reason)
		}
		for _, b := range cal.Busy {
			start, serr := time.Parse(time.RFC3339, b.Start)
			end, eerr := time.Parse(time.RFC3339, b.End)
			if serr != nil || eerr != nil {
				return nil, fmt.Errorf("%w: malformed busy period %s/%s", ErrUnavailable, b.Start, b.End)
			}
			busy = append(busy, schedule.Interval{Start: start.In(loc), End: end.In(loc)})
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

// CreateEvent creates a new calendar event
func (c *Client) CreateEvent(calendarID string, input EventInput) (*EventSummary, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	event := buildEvent(input)

	call := c.svc.Events.Insert(calendarID, event)
	if input.AddMeet {
		call = call.ConferenceDataVersion(1)
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: fmt.Sprintf("meet-%s", uuid.NewString()),
			},
		}
	}
	if len(input.Attendees) > 0 {
		call = call.SendUpdates("all")
	}

	created, err := call.Do()
	if err != nil {
		cerr := classify(err)
		if errors.Is(cerr, ErrAuth) {
			return nil, fmt.Errorf("failed to create event: %w", cerr)
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	summary := toEventSummary(created)
	return &summary, nil
}

// buildEvent converts validated input into the API representation.
func buildEvent(input EventInput) *calendar.Event {
	tz := input.TimeZone
	if tz == "" {
		tz = input.Start.Location().String()
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{
			Email: email,
		})
	}

	if len(input.Recurrence) > 0 {
		event.Recurrence = input.Recurrence
	}

	return event
}
