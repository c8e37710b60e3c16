package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes returned to the OS.
const (
	ExitSuccess           = 0   // Successful execution.
	ExitErrorGeneric      = 1   // Generic error.
	ExitErrorTimeout      = 2   // The benchmark exceeded its timeout.
	ExitErrorMismatch     = 3   // Serial and parallel counts disagree.
	ExitErrorConfig       = 4   // Invalid configuration.
	ExitErrorInvalidInput = 5   // Input sequences rejected by the aggregator.
	ExitErrorCanceled     = 130 // Canceled by SIGINT.
)

// ConfigError represents a user configuration error, such as an invalid flag
// value or an unreadable configuration file.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while running one benchmark
// configuration, recording which configuration failed.
type CalculationError struct {
	// Label identifies the configuration, e.g. "serial" or "parallel(4)".
	Label string
	// Cause is the underlying error.
	Cause error
}

func (e CalculationError) Error() string {
	if e.Label == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Label, e.Cause)
}

// Unwrap returns the wrapped cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// ValidationError identifies a field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps err with a formatted context message using %w.
// It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ErrInvalidInput is the sentinel matched by every input rejected by the
// Kendall aggregator (mismatched lengths, worker count below one).
var ErrInvalidInput = errors.New("invalid input")

// ColorProvider supplies the ANSI sequences used when reporting errors.
// It keeps this package free of a dependency on the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError prints a failure report for err and returns the
// matching exit code. A nil error yields ExitSuccess.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration.Round(time.Millisecond))
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sBenchmark timed out%s%s: %v\n", colors.Yellow(), elapsed, colors.Reset(), err)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sBenchmark canceled%s%s.\n", colors.Yellow(), elapsed, colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, ErrInvalidInput):
		fmt.Fprintf(out, "%sInvalid input%s: %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorInvalidInput
	default:
		fmt.Fprintf(out, "%sBenchmark failed%s%s: %v\n", colors.Red(), elapsed, colors.Reset(), err)
		return ExitErrorGeneric
	}
}
