// Package teaview renders the navigation stack in a terminal with
// Bubble Tea. It is a Navigator: the store tells it what to show, and key
// presses go back to the store as actions.
package teaview

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/bridge"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/i18n"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// Host is what the view needs from the application.
type Host interface {
	Dispatch(action store.Action) error
	Emit(ev bridge.Event) error
	Registry() *router.Registry
	Localizer() *i18n.Localizer
}

// View is a terminal Navigator.
type View struct {
	host Host

	projection atomic.Pointer[router.State]

	mu      sync.Mutex
	program *tea.Program
}

type stateMsg struct {
	state *router.State
}

type dispatchedMsg struct {
	err error
}

// New creates a view. Hand it to App.Start, then call Run.
func New(host Host) *View {
	return &View{host: host}
}

// RenderWithState records the new projection, emits the focus events
// it implies and asks the running program to redraw.
func (v *View) RenderWithState(state *router.State, dispatch store.Dispatch) error {
	prev := v.projection.Swap(state)

	for _, ev := range bridge.FocusEvents(prev, state) {
		ev.Dispatch = dispatch
		if err := v.host.Emit(ev); err != nil {
			return err
		}
	}

	v.mu.Lock()
	p := v.program
	v.mu.Unlock()
	if p != nil {
		go p.Send(stateMsg{state: state})
	}
	return nil
}

// Rendered returns the last projection handed to the view.
func (v *View) Rendered() *router.State {
	return v.projection.Load()
}

// Run shows the view until the user quits or ctx is cancelled.
func (v *View) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(newModel(v), opts...)

	v.mu.Lock()
	v.program = p
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.program = nil
		v.mu.Unlock()
	}()

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := final.(model); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}

// send dispatches a key press. Presses before the first render are refused.
func (v *View) send(action store.Action) error {
	if v.Rendered() == nil {
		return errNotStarted
	}
	return v.host.Dispatch(action)
}

var errNotStarted = errors.New("teaview: view has not been rendered yet")
