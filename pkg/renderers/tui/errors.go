package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoContentTypes is returned when the registry has nothing to offer.
	ErrNoContentTypes = errors.New("tui: no content types registered")
	// ErrNoSelection is returned when fields are edited before a type is chosen.
	ErrNoSelection = errors.New("tui: no content type selected")
)
