package router

// Action is anything that can be fed to the state machine. Only Navigate,
// Back and Reset change state; every other Action is treated as a no-op.
type Action interface {
	Type() string
}

// Action type names. They share a prefix so store middleware can tell
// navigation actions apart from application intents.
const (
	TypeNavigate = "Navigation/NAVIGATE"
	TypeBack     = "Navigation/BACK"
	TypeReset    = "Navigation/RESET"
)

// NavigationAction is the closed set of actions the state machine understands.
type NavigationAction interface {
	Action
	navigation()
}

// Navigate pushes a new entry for RouteName on top of the focused entry.
type Navigate struct {
	RouteName string `json:"routeName"`
	Params    Params `json:"params,omitempty"`
}

// Back pops the focused entry. It is a no-op at the root.
type Back struct{}

// Reset replaces the whole stack. Entries without a Key get a fresh one.
type Reset struct {
	Index  int          `json:"index"`
	Routes []RouteEntry `json:"routes"`
}

func (Navigate) Type() string { return TypeNavigate }
func (Back) Type() string     { return TypeBack }
func (Reset) Type() string    { return TypeReset }

func (Navigate) navigation() {}
func (Back) navigation()     {}
func (Reset) navigation()    {}

// IsNavigationAction reports whether a belongs to the closed navigation set.
func IsNavigationAction(a Action) bool {
	_, ok := a.(NavigationAction)
	return ok
}
