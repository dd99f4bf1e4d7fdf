package state

import (
	"errors"

	"projectswitch/internal/prompt"
)

var (
	// ErrNotFound means the referenced project or group does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData means the persisted document exists but cannot be parsed.
	ErrCorruptData = errors.New("corrupt project data")

	// ErrCancelled means the user aborted a prompt; the enclosing operation
	// must stop without persisting anything.
	ErrCancelled = prompt.ErrCancelled

	// ErrEmptyInput means a required value was left empty.
	ErrEmptyInput = errors.New("empty input")
)
