package google

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{"valid default", "default", false},
		{"valid work", "work", false},
		{"valid with hyphen", "work-email", false},
		{"valid with underscore", "personal_email", false},
		{"valid alphanumeric", "account123", false},
		{"empty", "", true},
		{"with spaces", "my account", true},
		{"with special chars", "account@work", true},
		{"with slash", "work/personal", true},
		{"with dot", "work.email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAccountName(tt.account)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAccountName() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetTokenFilePath(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{"default account", "default", "google-default.token"},
		{"work account", "work", "google-work.token"},
		{"personal account", "personal", "google-personal.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getTokenFilePath(tt.account)
			if filepath.Base(got) != tt.want {
				t.Errorf("getTokenFilePath() = %v, want base %v", got, tt.want)
			}
		})
	}
}

func TestHasTokenForAccount(t *testing.T) {
	if HasTokenForAccount("invalid account") {
		t.Error("HasTokenForAccount() should return false for invalid account name")
	}

	if HasTokenForAccount("") {
		t.Error("HasTokenForAccount() should return false for empty account name")
	}
}

func TestGetAuthenticationErrorMessage(t *testing.T) {
	for _, account := range []string{"default", "work", "personal"} {
		msg := GetAuthenticationErrorMessage(account)
		if msg == "" {
			t.Error("GetAuthenticationErrorMessage() should return non-empty message")
		}
		if !strings.Contains(msg, account) {
			t.Errorf("GetAuthenticationErrorMessage() should mention account %s", account)
		}
		if !strings.Contains(msg, "OAuth") {
			t.Error("GetAuthenticationErrorMessage() should mention OAuth")
		}
	}
}

func TestHasServiceAccount(t *testing.T) {
	t.Setenv(EnvServiceAccountJSON, "")
	t.Setenv(EnvServiceAccountFile, "")
	if HasServiceAccount() {
		t.Error("HasServiceAccount() should be false without configuration")
	}

	t.Setenv(EnvServiceAccountJSON, `{"type":"service_account"}`)
	if !HasServiceAccount() {
		t.Error("HasServiceAccount() should be true with inline JSON")
	}
}

func TestServiceAccountTokenSource_Errors(t *testing.T) {
	ctx := context.Background()

	t.Setenv(EnvServiceAccountJSON, "")
	t.Setenv(EnvServiceAccountFile, "")
	if _, err := ServiceAccountTokenSource(ctx); err == nil {
		t.Error("ServiceAccountTokenSource() should fail without configuration")
	}

	t.Setenv(EnvServiceAccountJSON, "not json")
	if _, err := ServiceAccountTokenSource(ctx); err == nil {
		t.Error("ServiceAccountTokenSource() should fail on malformed key")
	}

	t.Setenv(EnvServiceAccountJSON, "")
	t.Setenv(EnvServiceAccountFile, filepath.Join(t.TempDir(), "missing.json"))
	if _, err := ServiceAccountTokenSource(ctx); err == nil {
		t.Error("ServiceAccountTokenSource() should fail on unreadable key file")
	}
}

func TestServiceAccountKey_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvServiceAccountJSON, "")
	t.Setenv(EnvServiceAccountFile, path)

	data, err := serviceAccountKey()
	if err != nil {
		t.Fatalf("serviceAccountKey() error = %v", err)
	}
	if !strings.Contains(string(data), "service_account") {
		t.Errorf("serviceAccountKey() = %s, want file contents", data)
	}
}

func TestDefaultTokenProvider(t *testing.T) {
	t.Setenv(EnvServiceAccountJSON, `{"type":"service_account"}`)
	t.Setenv(EnvServiceAccountFile, "")
	if _, ok := DefaultTokenProvider().(*ServiceAccountProvider); !ok {
		t.Error("DefaultTokenProvider() should prefer the service account when configured")
	}

	t.Setenv(EnvServiceAccountJSON, "")
	if _, ok := DefaultTokenProvider().(*FileTokenProvider); !ok {
		t.Error("DefaultTokenProvider() should fall back to cached tokens")
	}
}
