package calculator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument is returned for empty input, non-positive windows and
	// unknown ranking keys or directions.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDivisionByZero is returned when a reference or previous close is zero.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrInvalidArgument)
)

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func requireBars(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: empty bar sequence", ErrInvalidArgument)
	}
	return nil
}
