package store

import (
	"errors"
	"log/slog"
)

// API is the slice of the store a middleware can reach. Dispatch re-enters
// the full chain; GetState reads the committed state.
type API[S any] struct {
	Dispatch Dispatch
	GetState func() S
}

// Middleware wraps dispatch. It must call next to let the action reach the
// reducer, and may do work before or after.
type Middleware[S any] func(api API[S]) func(next Dispatch) Dispatch

var errConstructing = errors.New("store: dispatch while constructing middleware")

func chain[S any](s *Store[S], middleware []Middleware[S]) Dispatch {
	api := API[S]{
		Dispatch: s.Dispatch,
		GetState: s.GetState,
	}

	next := Dispatch(s.reduce)
	for i := len(middleware) - 1; i >= 0; i-- {
		next = middleware[i](api)(next)
	}
	return next
}

// TypeThunk is reported by Thunk.Type. Thunks never reach a reducer when
// ThunkMiddleware is installed.
const TypeThunk = "@@stacknav/THUNK"

// Thunk is a deferred action: a function run by ThunkMiddleware with the
// store's dispatch, that emits plain actions when it is ready.
type Thunk func(dispatch Dispatch, getState func() any) error

func (Thunk) Type() string { return TypeThunk }

// ThunkMiddleware runs Thunk actions instead of forwarding them.
func ThunkMiddleware[S any]() Middleware[S] {
	return func(api API[S]) func(Dispatch) Dispatch {
		getState := func() any { return api.GetState() }
		return func(next Dispatch) Dispatch {
			return func(action Action) error {
				if thunk, ok := action.(Thunk); ok {
					return thunk(api.Dispatch, getState)
				}
				return next(action)
			}
		}
	}
}

// LoggerMiddleware traces every action and the state around it at debug
// level. Failed reduces are logged at warn level and passed through.
func LoggerMiddleware[S any](logger *slog.Logger) Middleware[S] {
	return func(api API[S]) func(Dispatch) Dispatch {
		return func(next Dispatch) Dispatch {
			return func(action Action) error {
				logger.Debug("Dispatching action", "action", action.Type(), "state", api.GetState())
				if err := next(action); err != nil {
					logger.Warn("Action rejected", "action", action.Type(), "error", err)
					return err
				}
				logger.Debug("Action reduced", "action", action.Type(), "state", api.GetState())
				return nil
			}
		}
	}
}
