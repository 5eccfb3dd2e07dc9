package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "test-endpoint", "bad request", "INVALID_ARGUMENT")

	expected := "API error [400] at test-endpoint: bad request (INVALID_ARGUMENT)"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "ep", "boom", "")
	if noStatus.Error() != "API error at ep: boom" {
		t.Errorf("Error() = %s", noStatus.Error())
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("generate content", "https://example.com", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected NetworkError to unwrap to its cause")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("Expected IsNetworkError to see through wrapping")
	}
	if GetEndpoint(err) != "https://example.com" {
		t.Errorf("GetEndpoint() = %q", GetEndpoint(err))
	}
}

func TestBlockedError(t *testing.T) {
	if NewBlockedError("").Error() != "content blocked" {
		t.Error("unexpected empty-reason message")
	}
	err := NewBlockedError("SAFETY")
	if err.Error() != "content blocked: SAFETY" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !IsBlockedError(err) {
		t.Error("Expected IsBlockedError to be true")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("no candidates found", "candidates")
	if err.Error() != `parse error at "candidates": no candidates found` {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("Expected ParseError to match ErrInvalidResponse")
	}
	if errors.Is(err, ErrNoContent) {
		t.Error("Plain ParseError should not match ErrNoContent")
	}

	noContent := NewNoContentError("candidates.0")
	if !errors.Is(noContent, ErrNoContent) {
		t.Error("Expected no-content error to match ErrNoContent")
	}
}

func TestProviderError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewProviderError("sdk", cause)
	if err.Error() != "sdk provider error: quota exceeded" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected ProviderError to unwrap to its cause")
	}
}

func TestAllKindsMatchGenerationFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"api", NewAPIError(500, "ep", "internal", "")},
		{"network", NewNetworkError("op", "", errors.New("x"))},
		{"blocked", NewBlockedError("SAFETY")},
		{"parse", NewParseError("bad", "")},
		{"provider", NewProviderError("sdk", errors.New("x"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("generate: %w", tt.err)
			if !errors.Is(wrapped, ErrGenerationFailed) {
				t.Errorf("%T should match ErrGenerationFailed", tt.err)
			}
		})
	}

	if errors.Is(ErrEmptyPrompt, ErrGenerationFailed) {
		t.Error("ErrEmptyPrompt is a caller error, not a generation failure")
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		auth      bool
		rateLimit bool
	}{
		{"unauthorized", NewAPIError(401, "ep", "bad key", ""), 401, true, false},
		{"forbidden", NewAPIError(403, "ep", "denied", ""), 403, true, false},
		{"rate limited", NewAPIError(429, "ep", "slow down", ""), 429, false, true},
		{"network", NewNetworkError("op", "ep", errors.New("x")), 0, false, false},
		{"nil", nil, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetHTTPStatus(tt.err); got != tt.status {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := IsAuthError(tt.err); got != tt.auth {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.auth)
			}
			if got := IsRateLimitError(tt.err); got != tt.rateLimit {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.rateLimit)
			}
		})
	}
}
