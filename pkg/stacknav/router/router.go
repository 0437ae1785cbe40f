package router

// Option configures a Router.
type Option func(*Router)

// WithKeyFunc sets the generator used for new entry keys.
func WithKeyFunc(fn KeyFunc) Option {
	return func(r *Router) {
		if fn != nil {
			r.freshKey = fn
		}
	}
}

// Router is the navigation state machine. It owns no state of its own:
// the current stack is always passed in and a new one handed back.
type Router struct {
	registry *Registry
	freshKey KeyFunc
}

// New creates a Router over a snapshot of registry.
// Registering more screens on registry afterwards has no effect.
func New(registry *Registry, opts ...Option) *Router {
	r := &Router{
		registry: registry.snapshot(),
		freshKey: UUIDKeys(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the registry snapshot the router resolves routes in.
func (r *Router) Registry() *Registry {
	return r.registry
}

// InitialState seeds a one-entry stack focused on routeName.
func (r *Router) InitialState(routeName string, params Params) (*State, error) {
	return r.Transition(nil, Reset{
		Index:  0,
		Routes: []RouteEntry{{RouteName: routeName, Params: params}},
	})
}

// Transition computes the next state for action.
//
// Navigate pushes, Back pops (returning state itself at the root) and
// Reset replaces the stack. Any other action returns state itself. On
// error the returned state is nil and the input is left untouched.
func (r *Router) Transition(state *State, action Action) (*State, error) {
	switch a := action.(type) {
	case Navigate:
		return r.navigate(state, a)
	case *Navigate:
		if a == nil {
			return state, nil
		}
		return r.navigate(state, *a)
	case Back, *Back:
		return back(state), nil
	case Reset:
		return r.reset(a)
	case *Reset:
		if a == nil {
			return state, nil
		}
		return r.reset(*a)
	default:
		return state, nil
	}
}

func (r *Router) navigate(state *State, a Navigate) (*State, error) {
	if !r.registry.Has(a.RouteName) {
		return nil, NewUnknownRouteError("navigate", a.RouteName)
	}
	return state.pushed(newEntry(r.freshKey(), a.RouteName, a.Params)), nil
}

func back(state *State) *State {
	if state.IsRoot() {
		return state
	}
	return state.popped()
}

func (r *Router) reset(a Reset) (*State, error) {
	if a.Index < 0 || a.Index >= len(a.Routes) {
		return nil, &InvalidResetError{Index: a.Index, Len: len(a.Routes)}
	}
	seen := make(map[string]struct{}, len(a.Routes))
	for _, e := range a.Routes {
		if !r.registry.Has(e.RouteName) {
			return nil, NewUnknownRouteError("reset", e.RouteName)
		}
		if e.Key == "" {
			continue
		}
		if hasKey(seen, e.Key) {
			return nil, &InvalidResetError{Index: a.Index, Len: len(a.Routes), DuplicateKey: e.Key}
		}
		seen[e.Key] = struct{}{}
	}
	routes := make([]RouteEntry, len(a.Routes))
	for i, e := range a.Routes {
		key := e.Key
		for key == "" {
			// a fresh key must not shadow one the caller supplied
			if k := r.freshKey(); !hasKey(seen, k) {
				key = k
				seen[k] = struct{}{}
			}
		}
		routes[i] = newEntry(key, e.RouteName, e.Params)
	}
	return &State{Index: a.Index, Routes: routes}, nil
}

func hasKey(seen map[string]struct{}, key string) bool {
	_, ok := seen[key]
	return ok
}
