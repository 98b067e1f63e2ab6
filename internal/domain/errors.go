package domain

import (
	"errors"
	"fmt"
)

// ErrNoEntry is returned by the entry store when a random fetch hits an
// empty table. The retry executor treats it as one failed attempt.
var ErrNoEntry = errors.New("no entry found")

// ConfigError reports an invalid or conflicting lexicon definition at
// startup. It is the only error allowed to terminate the process.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// NewConfigError creates a ConfigError for the given field path.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// HandlerError reports that a lexicon handler could not produce text for
// a random fetch. It never reaches the user: the retry executor absorbs
// it and eventually falls back to the descriptor's failure message.
type HandlerError struct {
	Lexicon string
	Table   string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler: table %s: %v", e.Lexicon, e.Table, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
