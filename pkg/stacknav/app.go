// Package stacknav composes a stack navigator backed by a store.
//
// The navigation stack lives in the store as a plain value. Views render
// that value and report user input by dispatching intents; lifecycle events
// they raise go through Emit to listeners. New wires the pieces together
// from a config.Config:
//
//	app, err := stacknav.New(stacknav.Options{Config: cfg})
//	view := teaview.New(app)
//	err = app.Start(view)
package stacknav

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/bridge"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/config"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/devtools"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/i18n"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/metrics"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/nav"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// historyLimit bounds the devtools action log.
const historyLimit = 256

// AppState is the state held by the store.
type AppState struct {
	Nav *router.State `json:"rootNavigatorState"`
}

// SelectNav returns the navigation stack of s.
func SelectNav(s AppState) *router.State {
	return s.Nav
}

// Options configures New.
type Options struct {
	Config   *config.Config   // Defaults to config.Default()
	Recorder metrics.Recorder // Defaults to metrics.NoopRecorder
	Sink     devtools.Sink    // Receives every reduced action; optional
}

// App is a running navigator: the store, the bridge to the view and the
// services around them.
type App struct {
	cfg       *config.Config
	registry  *router.Registry
	reducer   *nav.Reducer
	store     *store.Store[AppState]
	bridge    *bridge.Bridge[AppState]
	history   *devtools.Recorder[AppState]
	localizer *i18n.Localizer
	sink      devtools.Sink

	mu        sync.RWMutex
	navigator bridge.Navigator
	started   bool
}

// New builds an App. The config is validated; logging is configured from it.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LogPath != "" {
		internal.SetLogPath(cfg.LogPath)
	}
	SetRawLogLevel(cfg.LogLevel)
	if constants.IsDevMode() {
		internal.SetTraceLevel(slog.LevelDebug)
	}
	logger := internal.GetLogger()

	registry := cfg.Registry()
	r := router.New(registry, router.WithKeyFunc(cfg.KeyFunc()))

	reducerOpts := []nav.Option{
		nav.WithInitialRoute(cfg.InitialRoute, nil),
		nav.WithAdvanceRoute(cfg.AdvanceRoute),
	}
	if cfg.FullActionCoverage {
		reducerOpts = append(reducerOpts, nav.WithNavigationActions())
	}
	reducer, err := nav.NewReducer(r, reducerOpts...)
	if err != nil {
		return nil, err
	}

	localizer, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, NewInfrastructureError("load_locales", err)
	}

	historyOpts := []devtools.Option{devtools.WithLimit(historyLimit), devtools.WithLogger(logger)}
	if opts.Sink != nil {
		historyOpts = append(historyOpts, devtools.WithSink(opts.Sink))
	}

	app := &App{
		cfg:       cfg,
		registry:  r.Registry(),
		reducer:   reducer,
		history:   devtools.NewRecorder[AppState](historyOpts...),
		localizer: localizer,
		sink:      opts.Sink,
	}
	app.bridge = bridge.New(app.registry, SelectNav, bridge.NavigatorFunc(app.render))

	app.store, err = store.New(app.reduce,
		store.ThunkMiddleware[AppState](),
		app.bridge.Middleware(),
		store.LoggerMiddleware[AppState](internal.GetTraceLogger()),
		metrics.Middleware(opts.Recorder, SelectNav),
		app.history.Middleware(),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("Navigator ready",
		"routes", app.registry.Names(),
		"initial_route", cfg.InitialRoute,
		"advance_route", cfg.AdvanceRoute,
		"full_action_coverage", cfg.FullActionCoverage)

	return app, nil
}

func (a *App) reduce(s AppState, action store.Action) (AppState, error) {
	next, err := a.reducer.Reduce(s.Nav, action)
	if err != nil {
		return s, err
	}
	s.Nav = next
	return s, nil
}

func (a *App) render(state *router.State, dispatch store.Dispatch) error {
	a.mu.RLock()
	n := a.navigator
	a.mu.RUnlock()
	if n == nil {
		return nil
	}
	return n.RenderWithState(state, dispatch)
}

// Start attaches the view and renders the initial screen. Calling it again
// swaps in another view and renders the current screen to it.
func (a *App) Start(navigator bridge.Navigator) error {
	a.mu.Lock()
	a.navigator = navigator
	first := !a.started
	a.started = true
	a.mu.Unlock()

	if first {
		return a.bridge.Start()
	}
	if navigator == nil {
		return nil
	}
	return navigator.RenderWithState(a.Nav(), a.Dispatch)
}

// Dispatch sends an action through the store.
func (a *App) Dispatch(action store.Action) error {
	return a.store.Dispatch(action)
}

// State returns the current application state.
func (a *App) State() AppState {
	return a.store.GetState()
}

// Nav returns the current navigation stack.
func (a *App) Nav() *router.State {
	return a.store.GetState().Nav
}

// Subscribe registers fn to run after every successful dispatch. fn may
// dispatch.
func (a *App) Subscribe(fn func()) (unsubscribe func()) {
	return a.store.Subscribe(fn)
}

// AddListener subscribes fn to a lifecycle or action channel. Listeners
// run while a dispatch is in progress; dispatch from them through
// Event.Dispatch.
func (a *App) AddListener(ch bridge.Channel, fn func(bridge.Event)) bridge.Subscription {
	return a.bridge.AddListener(ch, fn)
}

// Emit delivers a lifecycle event raised by the view.
func (a *App) Emit(ev bridge.Event) error {
	return a.bridge.Emit(ev)
}

// Registry returns the route registry.
func (a *App) Registry() *router.Registry {
	return a.registry
}

// Localizer returns the localizer for the configured locale.
func (a *App) Localizer() *i18n.Localizer {
	return a.localizer
}

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// History returns the most recent reduced actions, oldest first.
func (a *App) History() []devtools.Entry[AppState] {
	return a.history.Entries()
}

// Close releases the devtools sink, if it holds resources.
func (a *App) Close() error {
	var errs []error
	if c, ok := a.sink.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
