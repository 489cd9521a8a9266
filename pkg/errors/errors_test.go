package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
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
				Code:    CodeSlotUnavailable,
				Message: "time slot is not available",
			},
			expected: "SLOT_UNAVAILABLE: time slot is not available",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestDomainConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"invalid interval", InvalidInterval("start must be before end"), CodeInvalidInterval, http.StatusBadRequest},
		{"slot unavailable", SlotUnavailable("slot taken"), CodeSlotUnavailable, http.StatusConflict},
		{"already cancelled", AlreadyCancelled("cannot modify"), CodeAlreadyCancelled, http.StatusConflict},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := SlotUnavailable("taken")

	if !HasCode(err, CodeSlotUnavailable) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, CodeNotFound) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Error("HasCode should be false for non-AppError")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !HasCode(wrapped, CodeSlotUnavailable) {
		t.Error("HasCode should unwrap wrapped AppErrors")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Facility")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same AppError")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected %s for plain error, got %s", CodeInternal, got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("converted error should wrap the original")
	}
}
