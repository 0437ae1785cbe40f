package nav

import (
	"fmt"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// Option configures a Reducer.
type Option func(*Reducer)

// WithInitialRoute sets the route the stack is seeded with.
func WithInitialRoute(name string, params router.Params) Option {
	return func(r *Reducer) {
		r.initialRoute = name
		r.initialParams = params
	}
}

// WithAdvanceRoute sets the route ADVANCE navigates to.
func WithAdvanceRoute(name string) Option {
	return func(r *Reducer) {
		r.advanceRoute = name
	}
}

// WithIntent maps an additional intent type to a navigation action.
// Mapping TypeAdvance or TypeReturn replaces the default behaviour.
func WithIntent(kind string, fn func() router.Action) Option {
	return func(r *Reducer) {
		r.intents[kind] = fn
	}
}

// WithNavigationActions lets router.Navigate, router.Back and router.Reset
// reach the state machine directly. Without it the reducer only reacts to
// its intents and ignores raw navigation actions.
func WithNavigationActions() Option {
	return func(r *Reducer) {
		r.navigationActions = true
	}
}

// Reducer is the navigation slice reducer.
type Reducer struct {
	router            *router.Router
	initialRoute      string
	initialParams     router.Params
	advanceRoute      string
	intents           map[string]func() router.Action
	navigationActions bool
}

// NewReducer builds a reducer over r. The initial and advance routes must
// be registered.
func NewReducer(r *router.Router, opts ...Option) (*Reducer, error) {
	if r == nil {
		return nil, fmt.Errorf("nav: nil router")
	}

	red := &Reducer{
		router:  r,
		intents: make(map[string]func() router.Action),
	}
	for _, opt := range opts {
		opt(red)
	}

	if !r.Registry().Has(red.initialRoute) {
		return nil, router.NewUnknownRouteError("initial route", red.initialRoute)
	}

	if _, ok := red.intents[TypeAdvance]; !ok {
		if !r.Registry().Has(red.advanceRoute) {
			return nil, router.NewUnknownRouteError("advance route", red.advanceRoute)
		}
		advance := red.advanceRoute
		red.intents[TypeAdvance] = func() router.Action {
			return router.Navigate{RouteName: advance}
		}
	}
	if _, ok := red.intents[TypeReturn]; !ok {
		red.intents[TypeReturn] = func() router.Action { return router.Back{} }
	}

	return red, nil
}

// Reduce returns the next navigation state. A nil state yields the initial
// stack. Actions the reducer does not understand return state itself.
func (r *Reducer) Reduce(state *router.State, action store.Action) (*router.State, error) {
	if state == nil {
		initial, err := r.router.InitialState(r.initialRoute, r.initialParams)
		if err != nil {
			return nil, err
		}
		state = initial
	}

	if fn, ok := r.intents[action.Type()]; ok {
		return r.router.Transition(state, fn())
	}

	if r.navigationActions {
		if nav, ok := action.(router.NavigationAction); ok {
			return r.router.Transition(state, nav)
		}
	}

	return state, nil
}

// Func returns Reduce as a store.Reducer for stores holding only the
// navigation stack.
func (r *Reducer) Func() store.Reducer[*router.State] {
	return r.Reduce
}
