package calendar

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrUnavailable indicates the calendar backend could not be reached or
	// returned a transient failure. Callers should suggest retrying.
	ErrUnavailable = errors.New("calendar service unavailable")

	// ErrAuth indicates missing or rejected credentials.
	ErrAuth = errors.New("calendar authentication failed")

	// ErrCreateFailed indicates the event write was rejected.
	ErrCreateFailed = errors.New("failed to create event")
)

// classify maps a Google API error onto the package taxonomy. Status 401
// and 403 become ErrAuth, rate limits and server errors become
// ErrUnavailable, and transport failures (no HTTP response at all) are
// treated as unavailable too. Other API errors pass through unchanged.
func classify(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
