package router

import (
	"errors"
	"fmt"
)

// UnknownRouteError is returned when a route name does not resolve in the
// registry. It is fatal to the dispatch that triggered it.
type UnknownRouteError struct {
	Op        string // Operation that failed (e.g., "navigate", "reset", "emit")
	RouteName string
}

func (e *UnknownRouteError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("router: %s: unknown route %q", e.Op, e.RouteName)
	}
	return fmt.Sprintf("router: unknown route %q", e.RouteName)
}

// NewUnknownRouteError creates a new unknown route error.
func NewUnknownRouteError(op, routeName string) *UnknownRouteError {
	return &UnknownRouteError{Op: op, RouteName: routeName}
}

// InvalidResetError is returned when a Reset index falls outside its
// entries or two entries carry the same key.
type InvalidResetError struct {
	Index        int
	Len          int
	DuplicateKey string
}

func (e *InvalidResetError) Error() string {
	if e.DuplicateKey != "" {
		return fmt.Sprintf("router: reset: duplicate key %q", e.DuplicateKey)
	}
	if e.Len == 0 {
		return "router: reset: no entries"
	}
	return fmt.Sprintf("router: reset: index %d out of range [0,%d)", e.Index, e.Len)
}

// IsUnknownRoute checks if an error is an unknown route error.
func IsUnknownRoute(err error) bool {
	var target *UnknownRouteError
	return errors.As(err, &target)
}

// IsInvalidReset checks if an error is an invalid reset error.
func IsInvalidReset(err error) bool {
	var target *InvalidResetError
	return errors.As(err, &target)
}
