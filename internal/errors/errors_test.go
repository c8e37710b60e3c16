package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid value %d for flag %s", 0, "-max-workers")
	if err.Error() != "invalid value 0 for flag -max-workers" {
		t.Errorf("unexpected message %q", err.Error())
	}
	var cfgErr ConfigError
	if !errors.As(WrapError(err, "loading config"), &cfgErr) {
		t.Error("errors.As should find ConfigError through WrapError")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		err     CalculationError
		wantMsg string
		wantIs  error
	}{
		{
			name:    "labelled",
			err:     CalculationError{Label: "parallel(4)", Cause: ErrInvalidInput},
			wantMsg: "parallel(4): invalid input",
			wantIs:  ErrInvalidInput,
		},
		{
			name:    "unlabelled",
			err:     CalculationError{Cause: context.Canceled},
			wantMsg: "context canceled",
			wantIs:  context.Canceled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantIs) {
				t.Errorf("errors.Is should find %v", tt.wantIs)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "size", Message: "must be at least 2"}
	want := `validation error for "size": must be at least 2`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	wrapped := WrapError(context.DeadlineExceeded, "run %s", "serial")
	if wrapped.Error() != "run serial: context deadline exceeded" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Error("wrapped error should preserve the chain")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped", fmt.Errorf("x: %w", context.Canceled), true},
		{"other", errors.New("nope"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("%s: IsContextError = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"timeout", fmt.Errorf("benchmark: %w", context.DeadlineExceeded), ExitErrorTimeout, "timed out"},
		{"canceled", context.Canceled, ExitErrorCanceled, "canceled"},
		{"invalid input", CalculationError{Label: "serial", Cause: fmt.Errorf("lengths 3 and 4: %w", ErrInvalidInput)}, ExitErrorInvalidInput, "Invalid input"},
		{"generic", errors.New("worker panic"), ExitErrorGeneric, "worker panic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, 1500*time.Millisecond, &buf, plainColors{})
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantOut)
			}
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorInvalidInput, ExitErrorCanceled}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled = %d, want 130 (SIGINT convention)", ExitErrorCanceled)
	}
}
