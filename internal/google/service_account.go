package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Environment variables configuring service-account authentication.
const (
	EnvServiceAccountJSON = "GOOGLE_SERVICE_ACCOUNT_JSON"
	EnvServiceAccountFile = "GOOGLE_SERVICE_ACCOUNT_FILE"
	EnvDelegatedUser      = "GOOGLE_CALENDAR_USER_EMAIL"
)

// HasServiceAccount reports whether service-account credentials are
// configured in the environment.
func HasServiceAccount() bool {
	return os.Getenv(EnvServiceAccountJSON) != "" || os.Getenv(EnvServiceAccountFile) != ""
}

func serviceAccountKey() ([]byte, error) {
	if raw := os.Getenv(EnvServiceAccountJSON); raw != "" {
		return []byte(raw), nil
	}
	path := os.Getenv(EnvServiceAccountFile)
	if path == "" {
		return nil, fmt.Errorf("no service account configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}
	return data, nil
}

// ServiceAccountTokenSource builds a token source from the configured
// service-account key. When GOOGLE_CALENDAR_USER_EMAIL is set, the minted
// tokens impersonate that user via domain-wide delegation.
func ServiceAccountTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	data, err := serviceAccountKey()
	if err != nil {
		return nil, err
	}

	conf, err := google.JWTConfigFromJSON(data, OAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key: %w", err)
	}
	if subject := os.Getenv(EnvDelegatedUser); subject != "" {
		conf.Subject = subject
	}

	return conf.TokenSource(ctx), nil
}
