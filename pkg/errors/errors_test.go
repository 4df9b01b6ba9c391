package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "ticket not found",
			},
			expected: "EntityNotFound: ticket not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeUnavailable,
				Message: "ticketing service is unreachable",
				Err:     errors.New("connection refused"),
			},
			expected: "ServiceUnavailable: ticketing service is unreachable (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should find original error through AppError")
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("wrapped app error is found", func(t *testing.T) {
		inner := Forbidden("nope")
		wrapped := fmt.Errorf("authorize: %w", inner)

		if got := AsAppError(wrapped); got != inner {
			t.Errorf("expected inner AppError, got %v", got)
		}
		if !HasCode(wrapped, CodeForbidden) {
			t.Errorf("HasCode should match %s", CodeForbidden)
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))
		if got.Code != CodeInternal || got.HTTPStatus != http.StatusInternalServerError {
			t.Errorf("expected internal error, got %+v", got)
		}
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteError(w, EntityCreationFailed("Payment ID not found in client token.")); err != nil {
		t.Fatalf("WriteError returned %v", err)
	}

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.ErrorCode != CodeEntityCreationFailed {
		t.Errorf("expected errorCode %s, got %s", CodeEntityCreationFailed, resp.ErrorCode)
	}
	if resp.Message != "Payment ID not found in client token." {
		t.Errorf("unexpected message %q", resp.Message)
	}
}
