// Package calendar wraps the Google Calendar API for the scheduling tools.
//
// The client exposes the three operations the scheduler needs: listing
// events, reading busy intervals via freebusy, and creating events. API
// failures are classified into the package's error taxonomy so callers can
// distinguish authentication problems from transient outages.
package calendar
