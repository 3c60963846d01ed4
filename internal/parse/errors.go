package parse

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent marks an event that failed structural validation.
// Callers filter with errors.Is and drop the event; parse failures are a
// per-event condition, never a batch failure.
var ErrInvalidEvent = errors.New("invalid event")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidEvent, fmt.Sprintf(format, args...))
}
