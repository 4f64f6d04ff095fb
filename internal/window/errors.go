package window

import (
	"errors"
	"fmt"
)

// Window errors.
var (
	// ErrEmptyPath indicates OpenFile was called without a path.
	ErrEmptyPath = errors.New("empty file path")

	// ErrEmptyName indicates an empty color scheme or icon theme name.
	ErrEmptyName = errors.New("empty name")

	// ErrNoDocument indicates a controller was constructed without a document.
	ErrNoDocument = errors.New("window requires a document")

	// ErrNoSpawner indicates a new window was needed but no spawner is set.
	ErrNoSpawner = errors.New("window cannot create new windows")

	// ErrWindowClosed indicates an operation on a closed window.
	ErrWindowClosed = errors.New("window closed")

	// ErrSaveUnsupported indicates the document cannot be saved.
	ErrSaveUnsupported = errors.New("document does not support saving")
)

// OperationError reports a failed window operation.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "set", "spawn")
	Target string // File path or settings key
	Err    error
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Target: target, Err: err}
}
