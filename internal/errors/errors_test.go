package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestToToolErrorWrapsUnknown(t *testing.T) {
	err := ToToolError(fmt.Errorf("dial failed: password=secret123"))
	if err.Code != CodeInternalError {
		t.Fatalf("expected internal error code, got %s", err.Code)
	}
	if strings.Contains(fmt.Sprint(err.Details["cause"]), "secret123") {
		t.Fatalf("expected scrubbed cause, got %v", err.Details["cause"])
	}
}

func TestScrubURLCredentials(t *testing.T) {
	got := scrub("connect postgresql://svc:hunter2@db:5432/netra failed")
	if strings.Contains(got, "hunter2") || strings.Contains(got, "svc:") {
		t.Fatalf("credentials leaked: %q", got)
	}
	if !strings.Contains(got, "postgresql://***@db:5432/netra") {
		t.Fatalf("endpoint should survive scrubbing: %q", got)
	}
}

func TestNewInvalidInput(t *testing.T) {
	e := NewInvalidInput("bad", "hint", map[string]any{"field": "x"})
	if e.Code != CodeInvalidInput {
		t.Fatalf("expected %s, got %s", CodeInvalidInput, e.Code)
	}
}
