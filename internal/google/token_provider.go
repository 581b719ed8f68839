package google

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth token sources for Google APIs. The
// abstraction lets the server swap service-account credentials for cached
// user tokens without the calendar client knowing the difference.
type TokenProvider interface {
	// TokenSourceForAccount returns a refreshing token source for the
	// specified account.
	TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error)

	// HasTokenForAccount checks if credentials exist for the specified account
	HasTokenForAccount(account string) bool
}

// FileTokenProvider provides tokens cached on disk by the auth flow.
type FileTokenProvider struct{}

// NewFileTokenProvider creates a new file-based token provider
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

func (p *FileTokenProvider) TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, account)
}

func (p *FileTokenProvider) HasTokenForAccount(account string) bool {
	return HasTokenForAccount(account)
}

// ServiceAccountProvider mints tokens from a service-account key. The
// account argument is ignored; impersonation is controlled by
// GOOGLE_CALENDAR_USER_EMAIL.
type ServiceAccountProvider struct{}

// NewServiceAccountProvider creates a new service-account token provider
func NewServiceAccountProvider() *ServiceAccountProvider {
	return &ServiceAccountProvider{}
}

func (p *ServiceAccountProvider) TokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	return ServiceAccountTokenSource(ctx)
}

func (p *ServiceAccountProvider) HasTokenForAccount(account string) bool {
	return HasServiceAccount()
}

// DefaultTokenProvider picks the provider for the current environment: the
// service account when one is configured, cached user tokens otherwise.
func DefaultTokenProvider() TokenProvider {
	if HasServiceAccount() {
		return NewServiceAccountProvider()
	}
	return NewFileTokenProvider()
}
