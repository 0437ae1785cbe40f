package stacknav

import (
	"errors"
	"fmt"
)

// ErrQuit is returned by a view when the user asked to leave the app.
// It is normal flow control, not a failure.
var ErrQuit = errors.New("quit requested by user")

// InfrastructureError represents a failure of the machinery around the
// navigation core (opening a window, rendering, serving metrics) rather
// than of a navigation request.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "render", "open_window")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stacknav: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("stacknav: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsQuit checks if an error indicates the user quit.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
