package router

import (
	"maps"
	"slices"
)

// Screen describes a registered route. The router only cares that a name
// resolves; the remaining fields are read by rendering collaborators.
type Screen struct {
	Title      string // Fallback title when no translation exists
	TitleID    string // i18n message ID for the title
	Button     string // Label of the screen's primary button
	ButtonID   string // i18n message ID for the button label
	Background uint32 // Background colour as 0xRRGGBB
	Icon       string // Path to an SVG icon, empty for none
}

// Registry maps route names to screen descriptors.
// It is filled at startup and read-only once handed to New.
type Registry struct {
	screens map[string]Screen
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{screens: make(map[string]Screen)}
}

// Register adds a screen under the given route name, replacing any
// previous descriptor with the same name.
func (r *Registry) Register(name string, screen Screen) *Registry {
	r.screens[name] = screen
	return r
}

// Lookup returns the descriptor registered for name.
func (r *Registry) Lookup(name string) (Screen, bool) {
	if r == nil {
		return Screen{}, false
	}
	s, ok := r.screens[name]
	return s, ok
}

// Has reports whether name resolves to a screen.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered route names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.screens))
}

// Len returns the number of registered screens.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.screens)
}

func (r *Registry) snapshot() *Registry {
	if r == nil {
		return NewRegistry()
	}
	return &Registry{screens: maps.Clone(r.screens)}
}
