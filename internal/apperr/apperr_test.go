package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", Invalid("count", "must not be negative"), ErrValidation},
		{"document", InvalidDocument("", "no phases found"), ErrInvalidDocument},
		{"document is validation", InvalidDocument("frontmatter", "is not closed"), ErrValidation},
		{"not found", NotFound("project", "LAUNCH-009"), ErrNotFound},
		{"blocked", &PhaseBlockedError{Phase: "SETUP", Blocking: []string{"Register domain"}}, ErrPhaseBlocked},
		{"final", &AlreadyFinalError{Phase: "LAUNCH"}, ErrAlreadyFinal},
		{"store", Store("failed to get project", errors.New("disk I/O error")), ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("failed to advance: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
		})
	}
}

func TestPhaseBlockedError_As(t *testing.T) {
	err := fmt.Errorf("advance: %w", &PhaseBlockedError{Phase: "SETUP", Blocking: []string{"a", "b"}})

	var blocked *PhaseBlockedError
	if !errors.As(err, &blocked) {
		t.Fatal("expected errors.As to find PhaseBlockedError")
	}
	if len(blocked.Blocking) != 2 {
		t.Errorf("expected 2 blocking items, got %d", len(blocked.Blocking))
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := NotFound("document", "DOC-042")
	if err.Error() != "document DOC-042 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStore_NilPassthrough(t *testing.T) {
	if Store("op", nil) != nil {
		t.Error("expected nil for nil error")
	}
	if !IsRetryable(Store("op", errors.New("locked"))) {
		t.Error("store errors should be retryable")
	}
	if IsRetryable(NotFound("item", "ITEM-0001")) {
		t.Error("not found errors should not be retryable")
	}
}

func TestValidationError_Message(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{InvalidDocument("", "no phase headings found"), "invalid document: no phase headings found"},
		{Invalid("platform", "is required"), "invalid platform: is required"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.err.Error())
		}
	}
}

func TestInvalid_IsNotDocumentError(t *testing.T) {
	err := fmt.Errorf("failed to log post: %w", Invalid("count", "must not be negative"))
	if errors.Is(err, ErrInvalidDocument) {
		t.Error("request validation should not match ErrInvalidDocument")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected ErrValidation")
	}
}
