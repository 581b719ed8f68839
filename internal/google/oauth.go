package google

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oobRedirectURL = "urn:ietf:wg:oauth:2.0:oob"

// GetOAuthConfig returns the OAuth2 configuration for the user-consent
// flow. Client credentials come from the environment so no secret is baked
// into the binary.
func GetOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		RedirectURL:  oobRedirectURL,
		Scopes:       OAuthScopes,
	}
}

var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName rejects account names that could escape the token
// cache directory or collide with other files.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

func cacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "voxsched")
}

func getTokenFilePath(account string) string {
	return filepath.Join(cacheDir(), fmt.Sprintf("google-%s.token", account))
}

// HasTokenForAccount checks whether a cached OAuth token exists for the
// specified account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.Stat(getTokenFilePath(account))
	return err == nil
}

// GetAuthURLForAccount returns the consent URL the user must visit to
// authorize access for the specified account.
func GetAuthURLForAccount(account string) string {
	return GetOAuthConfig().AuthCodeURL(account)
}

// SaveTokenForAccount exchanges an authorization code for tokens and caches
// them for the specified account.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	t, err := GetOAuthConfig().Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	if err := os.MkdirAll(cacheDir(), 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(getTokenFilePath(account), []byte(tokenData), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// GetTokenSourceForAccount returns a refreshing token source backed by the
// cached token for the specified account.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found for account %s", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %s", account)
	}

	ts := GetOAuthConfig().TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for account %s is invalid: %w", account, err)
	}

	return ts, nil
}

// GetAuthenticationErrorMessage builds the message returned to the caller
// when no credentials are available for an account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("No Google credentials found for account %q.\n\n"+
		"Either configure a service account via GOOGLE_SERVICE_ACCOUNT_FILE "+
		"(or GOOGLE_SERVICE_ACCOUNT_JSON), or complete the OAuth flow:\n\n"+
		"1. Visit:\n%s\n\n"+
		"2. Authorize calendar access and copy the code\n"+
		"3. Run: voxsched auth --account %s --code <code>",
		account, GetAuthURLForAccount(account), account)
}
