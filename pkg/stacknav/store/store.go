// Package store is a small unidirectional state container.
//
// A Store holds one value of type S. The only way to change it is to
// Dispatch an Action, which runs through the middleware chain and finally
// the reducer. The reducer must be pure: it gets the current state and the
// action and returns the next state.
package store

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// Action is a plain value describing something that happened.
type Action interface {
	Type() string
}

// Dispatch sends an action into a store.
type Dispatch func(Action) error

// Reducer computes the next state. Returning an error aborts the dispatch
// and leaves the current state in place.
type Reducer[S any] func(state S, action Action) (S, error)

// TypeInit is the type of the action used to build the initial state.
const TypeInit = "@@stacknav/INIT"

// Init is dispatched once, against the zero value of S, when a store is created.
type Init struct{}

func (Init) Type() string { return TypeInit }

// ErrNilAction is returned when Dispatch is called with a nil action.
var ErrNilAction = errors.New("store: nil action")

// Store owns the canonical state. It is safe for concurrent use; reduces
// are serialised so no two actions are ever reduced at the same time.
//
// Reducers have no dispatch handle and must not capture one: a reducer
// that dispatches into its own store deadlocks.
type Store[S any] struct {
	mu      sync.Mutex
	reducer Reducer[S]
	state   S
	version atomic.Uint64
	pending int // Reduced actions whose subscribers have not run yet

	listenersMu sync.Mutex
	listeners   []listener
	nextID      int

	dispatch Dispatch
}

type listener struct {
	id int
	fn func()
}

// New creates a store. The initial state is whatever reducer returns for
// Init applied to the zero value of S. Middleware is applied in order, so
// the first middleware sees an action first.
func New[S any](reducer Reducer[S], middleware ...Middleware[S]) (*Store[S], error) {
	if reducer == nil {
		return nil, fmt.Errorf("store: nil reducer")
	}

	s := &Store[S]{reducer: reducer}

	var zero S
	initial, err := reducer(zero, Init{})
	if err != nil {
		return nil, fmt.Errorf("store: initial state: %w", err)
	}
	s.state = initial

	s.dispatch = s.reduce
	if len(middleware) > 0 {
		s.dispatch = chain(s, middleware)
	}
	return s, nil
}

// Dispatch sends action through the middleware chain and the reducer.
func (s *Store[S]) Dispatch(action Action) error {
	if action == nil {
		return ErrNilAction
	}
	if s.dispatch == nil {
		return errConstructing
	}
	err := s.dispatch(action)
	s.flush()
	return err
}

// GetState returns the current state.
func (s *Store[S]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Version counts the actions reduced since the store was created.
func (s *Store[S]) Version() uint64 {
	return s.version.Load()
}

// Subscribe registers fn to run after every successful dispatch. Listeners
// run in subscription order, once per reduced action, after the dispatch has
// left the middleware chain, so they may dispatch themselves. The returned
// function removes the listener.
func (s *Store[S]) Subscribe(fn func()) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// reduce is the innermost dispatch.
func (s *Store[S]) reduce(action Action) error {
	s.mu.Lock()
	next, err := s.reducer(s.state, action)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	s.version.Inc()
	s.pending++
	s.mu.Unlock()
	return nil
}

// flush runs the subscribers owed for actions reduced so far.
func (s *Store[S]) flush() {
	s.mu.Lock()
	n := s.pending
	s.pending = 0
	s.mu.Unlock()

	for range n {
		s.notify()
	}
}

func (s *Store[S]) notify() {
	s.listenersMu.Lock()
	snapshot := make([]listener, len(s.listeners))
	copy(snapshot, s.listeners)
	s.listenersMu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}
