// Package router is the navigation state machine.
//
// A navigation stack is an immutable *State value. Router.Transition takes
// the current stack and an action and returns the next stack; it never
// modifies its input and never keeps the stack itself. This keeps the
// canonical stack in whatever store owns it and lets observers skip work
// when the returned pointer is the one they already have.
//
// # Basic Usage
//
//	registry := router.NewRegistry().
//	    Register("page1", router.Screen{Title: "Page 1"}).
//	    Register("page2", router.Screen{Title: "Page 2"})
//
//	r := router.New(registry)
//
//	state, _ := r.InitialState("page1", nil)
//	state, _ = r.Transition(state, router.Navigate{RouteName: "page2"})
//	state, _ = r.Transition(state, router.Back{})
//
// # Actions
//
// Navigate pushes a new entry directly above the focused one, discarding
// any forward history. Every Navigate creates a new entry with its own key,
// even when the same route is already focused.
//
// Back pops the focused entry. At the root it returns the same *State.
//
// Reset replaces the whole stack. Its index must point inside its entries.
//
// Any other action returns the input state unchanged.
//
// # Errors
//
// Route names are checked against the Registry. An unknown name yields an
// *UnknownRouteError and a bad Reset yields an *InvalidResetError. Neither
// is swallowed: a failed transition must not look like a no-op.
package router
