package kendall

import (
	"fmt"

	apperrors "github.com/agbru/kendallbench/internal/errors"
)

// ErrInvalidInput is matched by every InvalidInputError.
var ErrInvalidInput = apperrors.ErrInvalidInput

// InvalidInputError reports input the aggregator refuses to process. It is
// detected before any work starts, so no partial result accompanies it.
type InvalidInputError struct {
	LenX, LenY int
	Workers    int
	Reason     string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func checkLengths(x, y []float64) error {
	if len(x) != len(y) {
		return &InvalidInputError{
			LenX:   len(x),
			LenY:   len(y),
			Reason: fmt.Sprintf("input sequences must have the same length (got %d and %d)", len(x), len(y)),
		}
	}
	return nil
}
