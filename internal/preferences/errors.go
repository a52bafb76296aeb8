package preferences

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidThemeMode   = errors.New("theme mode must be light, dark or system")
	ErrInvalidColorScheme = errors.New("device theme must be light or dark")
	ErrInvalidFontSize    = errors.New("font size out of range")
	ErrUnknownFont        = errors.New("unknown font")
	ErrInvalidSpeed       = errors.New("pronunciation speed must be normal or slow")
	ErrInvalidTime        = errors.New("time must be HH:MM")
)

// PersistenceError wraps a failed read or write against the key-value store.
// It is only ever logged.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
