package terminal

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("terminal: aborted")
	// ErrNoFields is returned when Prompt receives a form without fields.
	ErrNoFields = errors.New("terminal: form has no fields")
	// ErrDeclined is returned when the final confirmation is answered no.
	ErrDeclined = errors.New("terminal: submission declined")
)
