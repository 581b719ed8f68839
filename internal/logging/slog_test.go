package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestAnonymizeEmail(t *testing.T) {
	if got := AnonymizeEmail(""); got != "" {
		t.Errorf("AnonymizeEmail(\"\") = %q, want empty", got)
	}

	if got := AnonymizeEmail("primary"); got != "primary" {
		t.Errorf("AnonymizeEmail(\"primary\") = %q, want passthrough", got)
	}

	hashed := AnonymizeEmail("alice@example.com")
	if !strings.HasPrefix(hashed, "user:") {
		t.Errorf("AnonymizeEmail() = %q, want user: prefix", hashed)
	}
	if strings.Contains(hashed, "alice") || strings.Contains(hashed, "example.com") {
		t.Errorf("AnonymizeEmail() = %q leaks the address", hashed)
	}

	// Same input hashes to the same value for correlation.
	if hashed != AnonymizeEmail("alice@example.com") {
		t.Error("AnonymizeEmail() should be deterministic")
	}
	if hashed == AnonymizeEmail("bob@example.com") {
		t.Error("AnonymizeEmail() should distinguish addresses")
	}
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("ok", Err(nil))
	if strings.Contains(buf.String(), KeyError) {
		t.Errorf("Err(nil) should be omitted, got %q", buf.String())
	}

	buf.Reset()
	logger.Info("failed", Err(errTest))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("Err() should log the message, got %q", buf.String())
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }

func TestAttributeHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("msg",
		Operation("find_slots"),
		Tool("scheduler_find_available_slots"),
		Account("default"),
		Calendar("owner@example.com"),
		Status(StatusSuccess),
		Slots(3),
	)

	out := buf.String()
	for _, want := range []string{
		"operation=find_slots",
		"tool=scheduler_find_available_slots",
		"account=default",
		"status=success",
		"slots=3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "owner@example.com") {
		t.Errorf("calendar id should be anonymized: %s", out)
	}
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithOperation(WithTool(WithAccount(logger, "work"), "scheduler_list_events"), "list").Info("msg")

	out := buf.String()
	for _, want := range []string{"account=work", "tool=scheduler_list_events", "operation=list"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}
