// Package bridge keeps an imperative navigator in step with the navigation
// stack held in a store.
//
// The store stays the single source of truth. The bridge is installed as
// store middleware: every action is reduced first, and only then is the new
// stack forwarded to the navigator. The navigator in turn reports what it
// does through two paths: navigation requests go back through dispatch as
// ordinary actions, and lifecycle events (focus, blur) go through Emit to
// the listeners registered with AddListener.
//
// The navigator and listeners receive a dispatch scoped to the cycle that
// is forwarding. Actions sent through it while the cycle runs are queued and
// applied in order once the current forward returns. Any other caller,
// including other goroutines, waits for the cycle to finish.
//
// Install the bridge after store.ThunkMiddleware and before any middleware
// that should only see actions that will actually be reduced.
package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// Navigator is the imperative side: something that renders a navigation
// stack and may ask for changes through dispatch. It must treat state as
// read-only.
type Navigator interface {
	RenderWithState(state *router.State, dispatch store.Dispatch) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(state *router.State, dispatch store.Dispatch) error

func (f NavigatorFunc) RenderWithState(state *router.State, dispatch store.Dispatch) error {
	return f(state, dispatch)
}

// ErrNotInstalled is returned by Start when the bridge middleware was never
// handed to a store.
var ErrNotInstalled = errors.New("bridge: middleware not installed in a store")

// Bridge synchronises a Navigator with the navigation slice of a store
// holding state of type S.
type Bridge[S any] struct {
	registry  *router.Registry
	selector  func(S) *router.State
	navigator Navigator
	listeners listeners

	// gate serialises reduce-and-forward cycles.
	gate sync.Mutex
	last *router.State

	api  store.API[S]
	next store.Dispatch
}

// New creates a bridge. selector picks the navigation stack out of the
// store's state; registry is used to validate events raised by navigator.
func New[S any](registry *router.Registry, selector func(S) *router.State, navigator Navigator) *Bridge[S] {
	return &Bridge[S]{
		registry:  registry,
		selector:  selector,
		navigator: navigator,
	}
}

// AddListener subscribes fn to a channel. Listeners of a channel run
// synchronously in registration order. A listener running inside a
// dispatch must dispatch through Event.Dispatch.
func (b *Bridge[S]) AddListener(ch Channel, fn func(Event)) Subscription {
	return b.listeners.add(ch, fn)
}

// Emit delivers an event raised by the navigator to the listeners of its
// channel. Events about a route the registry does not know are rejected
// with *router.UnknownRouteError. A navigator emitting from RenderWithState
// should set ev.Dispatch to the dispatch it was handed; when unset,
// listeners get the store's dispatch.
func (b *Bridge[S]) Emit(ev Event) error {
	if ev.Channel != ChannelAction && !b.registry.Has(ev.Route.RouteName) {
		return router.NewUnknownRouteError("emit "+string(ev.Channel), ev.Route.RouteName)
	}
	if ev.Dispatch == nil {
		ev.Dispatch = b.api.Dispatch
	}
	b.listeners.notify(ev)
	return nil
}

// Middleware returns the store middleware. A bridge serves one store.
func (b *Bridge[S]) Middleware() store.Middleware[S] {
	return func(api store.API[S]) func(store.Dispatch) store.Dispatch {
		b.api = api
		return func(next store.Dispatch) store.Dispatch {
			b.next = next
			return b.dispatch
		}
	}
}

// Start forwards the current stack to the navigator. Call it once after the
// store is created so the navigator renders the initial screen.
func (b *Bridge[S]) Start() error {
	if b.next == nil {
		return ErrNotInstalled
	}
	b.gate.Lock()
	defer b.gate.Unlock()
	return b.settle(store.Init{})
}

// dispatch is the entry point for every caller outside a cycle. Concurrent
// callers wait for the running cycle to finish and get their own result.
func (b *Bridge[S]) dispatch(action store.Action) error {
	b.gate.Lock()
	defer b.gate.Unlock()

	if err := b.next(action); err != nil {
		return err
	}
	return b.settle(action)
}

// settle forwards the state produced by action, then reduces and forwards
// whatever was dispatched through the cycle's handle meanwhile, in order.
// Must be called with gate held.
func (b *Bridge[S]) settle(action store.Action) error {
	c := &cycle{}
	dispatch := b.cycleDispatch(c)
	errs := []error{b.forward(action, dispatch)}

	for {
		queued, ok := c.pop()
		if !ok {
			return errors.Join(errs...)
		}
		if err := b.next(queued); err != nil {
			errs = append(errs, err)
			continue
		}
		errs = append(errs, b.forward(queued, dispatch))
	}
}

// cycleDispatch returns the dispatch handed to the navigator and listeners
// during one cycle. While the cycle runs, actions are queued behind it and
// their errors surface from the dispatch that started the cycle. Once the
// cycle is over the handle dispatches through the store like any caller.
func (b *Bridge[S]) cycleDispatch(c *cycle) store.Dispatch {
	getState := func() any { return b.api.GetState() }

	var dispatch store.Dispatch
	dispatch = func(action store.Action) error {
		if action == nil {
			return store.ErrNilAction
		}
		if thunk, ok := action.(store.Thunk); ok {
			return thunk(dispatch, getState)
		}
		if c.push(action) {
			return nil
		}
		return b.api.Dispatch(action)
	}
	return dispatch
}

func (b *Bridge[S]) forward(action store.Action, dispatch store.Dispatch) error {
	state := b.selector(b.api.GetState())
	if state == b.last {
		return nil
	}
	last := b.last
	b.last = state

	b.listeners.notify(Event{Channel: ChannelAction, Action: action, State: state, LastState: last, Dispatch: dispatch})

	if b.navigator == nil {
		return nil
	}
	if err := b.navigator.RenderWithState(state, dispatch); err != nil {
		return fmt.Errorf("bridge: navigator: %w", err)
	}
	return nil
}

// cycle holds the actions dispatched from inside one reduce-and-forward
// cycle. It closes when its queue is found empty.
type cycle struct {
	mu     sync.Mutex
	closed bool
	queue  []store.Action
}

func (c *cycle) push(action store.Action) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.queue = append(c.queue, action)
	return true
}

func (c *cycle) pop() (store.Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		c.closed = true
		return nil, false
	}
	action := c.queue[0]
	c.queue = c.queue[1:]
	return action, true
}
