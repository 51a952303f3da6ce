package engine

import (
	"errors"
	"fmt"
)

// ErrNoNames is returned by Enable and Disable when no names were given.
var ErrNoNames = errors.New("no dependencies specified")

// ConfigError is a manifest that could not be read, parsed, or written. It
// aborts the whole operation.
type ConfigError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("failed to %s manifest %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// InputError is a user-supplied name or identifier that cannot be acted on.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid dependency %q: %s", e.Input, e.Reason)
}
