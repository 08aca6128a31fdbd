package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrSaveFailed             = errors.New("save action failed")
	ErrHostServiceUnavailable = errors.New("host service unavailable")
	ErrCollaboratorPanic      = errors.New("host collaborator panicked")
)

// ConfigurationError reports an ignored pattern that is not a valid
// regular expression. The pattern is treated as non-matching.
type ConfigurationError struct {
	Pattern string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q: %v", e.Pattern, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
