// Package logging provides structured logging utilities for voxsched.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// Attendee and calendar owner emails are PII: they are hashed before
// logging so entries can be correlated without exposing addresses.
package logging
