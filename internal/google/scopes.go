package google

import (
	calendar "google.golang.org/api/calendar/v3"
)

// OAuthScopes are the Google OAuth scopes requested by voxsched. The
// scheduler only ever touches the calendar.
var OAuthScopes = []string{
	calendar.CalendarScope,
}
