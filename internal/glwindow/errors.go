package glwindow

import (
	"errors"
	"fmt"
)

// ErrRecoverable is the single failure kind reported by Window. Callers are
// expected to abandon the current bring-up and may retry, for instance with
// a lower context version.
var ErrRecoverable = errors.New("recoverable graphics error")

func recoverable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecoverable, fmt.Sprintf(format, args...))
}
