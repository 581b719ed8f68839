// Package google provides Google API credentials for the calendar client.
//
// Two authentication modes are supported. A service account key (from
// GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE) is preferred
// and can impersonate a workspace user via domain-wide delegation. Without
// one, per-account OAuth tokens cached on disk by the auth flow are used.
package google
