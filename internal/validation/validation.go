package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid marks user-correctable input failures so handlers can map
// them to a 400 instead of a 500.
var ErrInvalid = errors.New("invalid input")

func failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
