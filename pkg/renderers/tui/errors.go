package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned for choice fields that declare no options.
	ErrNoOptions = errors.New("tui: choice field has no options")
)
