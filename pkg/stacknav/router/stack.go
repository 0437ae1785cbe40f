package router

import (
	"fmt"
	"maps"
	"slices"
)

// Params carries route parameters. Entries own a private copy.
type Params map[string]any

// RouteEntry is a single frame in the navigation stack.
// Key is assigned once when the entry is created and never reused.
type RouteEntry struct {
	Key       string `json:"key"`
	RouteName string `json:"routeName"`
	Params    Params `json:"params,omitempty"`
}

// State is an immutable navigation stack. Routes[Index] is the focused
// entry and everything below it is the back-stack.
//
// A *State is never modified after the router hands it out; every accepted
// action produces a new value, so pointer equality means "nothing changed".
type State struct {
	Index  int          `json:"index"`
	Routes []RouteEntry `json:"routes"`
}

// Focused returns the visible entry, or the zero entry for a nil or empty
// stack.
func (s *State) Focused() RouteEntry {
	if s == nil || s.Index < 0 || s.Index >= len(s.Routes) {
		return RouteEntry{}
	}
	return s.Routes[s.Index]
}

// Len returns the number of entries in the stack.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Routes)
}

// IsRoot returns true if the focused entry is the bottom of the stack.
func (s *State) IsRoot() bool {
	return s == nil || s.Index == 0
}

// BackStack returns a copy of the entries below the focused one.
func (s *State) BackStack() []RouteEntry {
	if s == nil {
		return nil
	}
	return slices.Clone(s.Routes[:s.Index])
}

// RouteNames returns the route names from bottom to top.
func (s *State) RouteNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Routes))
	for i, r := range s.Routes {
		names[i] = r.RouteName
	}
	return names
}

// Validate checks the stack invariants.
func (s *State) Validate() error {
	if s == nil {
		return fmt.Errorf("router: nil state")
	}
	if len(s.Routes) == 0 {
		return fmt.Errorf("router: empty stack")
	}
	if s.Index < 0 || s.Index >= len(s.Routes) {
		return fmt.Errorf("router: index %d out of range [0,%d)", s.Index, len(s.Routes))
	}
	return nil
}

// pushed returns a new state with entry placed directly above the focused
// entry. Forward history beyond Index is discarded.
func (s *State) pushed(entry RouteEntry) *State {
	if s == nil {
		return &State{Index: 0, Routes: []RouteEntry{entry}}
	}
	routes := make([]RouteEntry, s.Index+2)
	copy(routes, s.Routes[:s.Index+1])
	routes[s.Index+1] = entry
	return &State{Index: s.Index + 1, Routes: routes}
}

// popped returns a new state without the focused entry.
// Callers must check IsRoot first.
func (s *State) popped() *State {
	return &State{
		Index:  s.Index - 1,
		Routes: slices.Clone(s.Routes[:s.Index]),
	}
}

func newEntry(key, routeName string, params Params) RouteEntry {
	return RouteEntry{Key: key, RouteName: routeName, Params: maps.Clone(params)}
}
