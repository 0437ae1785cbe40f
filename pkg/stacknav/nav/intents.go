// Package nav adapts the router state machine to a store reducer and
// provides the action creators the UI dispatches.
package nav

import "github.com/BrandonKowalski/stacknav/pkg/stacknav/store"

// Intent types understood by Reducer out of the box.
const (
	TypeAdvance = "ADVANCE"
	TypeReturn  = "RETURN"
)

// Intent is a high level user intent. It carries no data: what an intent
// means in terms of navigation is decided by the Reducer.
type Intent struct {
	Kind string `json:"type"`
}

func (i Intent) Type() string { return i.Kind }

// Advance asks to move to the next screen.
func Advance() Intent {
	return Intent{Kind: TypeAdvance}
}

// Retreat asks to return to the previous screen.
func Retreat() Intent {
	return Intent{Kind: TypeReturn}
}

// AdvanceAsync is Advance wrapped in a thunk, for stores with
// store.ThunkMiddleware installed.
func AdvanceAsync() store.Thunk {
	return deferred(Advance())
}

// RetreatAsync is Retreat wrapped in a thunk.
func RetreatAsync() store.Thunk {
	return deferred(Retreat())
}

func deferred(a store.Action) store.Thunk {
	return func(dispatch store.Dispatch, _ func() any) error {
		return dispatch(a)
	}
}
