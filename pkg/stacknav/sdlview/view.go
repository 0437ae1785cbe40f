// Package sdlview renders the navigation stack in an SDL window, for
// devices without a terminal. Keyboard, game controller and an optional
// evdev back button are mapped onto the same intents as the terminal view.
package sdlview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/bridge"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/i18n"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal/icons"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal/input"
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

// Options configures the window.
type Options struct {
	Title          string
	Width, Height  int32
	Window         WindowOptions
	Theme          Theme
	BackDevicePath string // evdev device for the hardware back button; empty disables it
}

// View is an SDL Navigator.
type View struct {
	host Host
	opts Options

	projection atomic.Pointer[router.State]
	lastErr    atomic.Error
}

// New creates a view. Hand it to App.Start, then call Run from the main
// goroutine.
func New(host Host, opts Options) *View {
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme()
	}
	return &View{host: host, opts: opts}
}

// RenderWithState records the new projection and emits the focus events
// it implies. Drawing happens on the next frame of Run.
func (v *View) RenderWithState(state *router.State, dispatch store.Dispatch) error {
	prev := v.projection.Swap(state)

	for _, ev := range bridge.FocusEvents(prev, state) {
		ev.Dispatch = dispatch
		if err := v.host.Emit(ev); err != nil {
			return err
		}
	}
	return nil
}

// Rendered returns the last projection handed to the view.
func (v *View) Rendered() *router.State {
	return v.projection.Load()
}

func (v *View) press(vb constants.VirtualButton) error {
	action := actionFor(vb)
	if action == nil {
		return nil
	}
	if v.Rendered() == nil {
		return nil
	}
	err := v.host.Dispatch(action)
	v.lastErr.Store(err)
	return err
}

// Run opens the window and runs the event loop until the user quits or ctx
// is cancelled. SDL requires it to run on the main goroutine.
func (v *View) Run(ctx context.Context) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("sdlview: init: %w", err)
	}
	defer sdl.Quit()
	if err := ttf.Init(); err != nil {
		return fmt.Errorf("sdlview: ttf: %w", err)
	}
	defer ttf.Quit()

	if v.opts.Window.isZero() {
		if constants.IsDevMode() {
			v.opts.Window = WindowOptions{Borderless: true, Resizable: true}
		} else {
			v.opts.Window = WindowOptions{Resizable: true}
		}
	}

	win, err := openWindow(v.opts.Title, v.opts.Width, v.opts.Height, v.opts.Window)
	if err != nil {
		return fmt.Errorf("sdlview: open window: %w", err)
	}
	defer win.close()

	r := newRenderer(win, v.opts.Theme, v.host)
	defer r.close()

	controllers := openControllers()
	defer func() {
		for _, c := range controllers {
			c.Close()
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	defer wg.Wait()
	if v.opts.BackDevicePath != "" {
		v.watchBackButton(ctx, &wg)
	}

	for ctx.Err() == nil {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if quit := v.handle(event); quit {
				return nil
			}
		}
		r.draw(v.Rendered(), v.lastErr.Load())
		win.Present()
	}
	return nil
}

func (v *View) handle(event sdl.Event) (quit bool) {
	var vb constants.VirtualButton
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return false
		}
		vb = keyboardButton(e.Keysym.Sym)
	case *sdl.ControllerButtonEvent:
		if e.Type != sdl.CONTROLLERBUTTONDOWN {
			return false
		}
		vb = controllerButton(e.Button)
	default:
		return false
	}

	if vb == constants.VirtualButtonMenu {
		return true
	}
	if err := v.press(vb); err != nil {
		internal.GetLogger().Warn("Navigation rejected", "button", vb.String(), "error", err)
	}
	return false
}

func (v *View) watchBackButton(ctx context.Context, wg *sync.WaitGroup) {
	bb, err := input.OpenBackButton(v.opts.BackDevicePath)
	if err != nil {
		internal.GetLogger().Warn("Hardware back button unavailable", "device", v.opts.BackDevicePath, "error", err)
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer bb.Close()
		err := bb.Run(ctx, func() {
			if err := v.press(constants.VirtualButtonBack); err != nil {
				internal.GetLogger().Warn("Back gesture rejected", "error", err)
			}
		})
		if err != nil {
			internal.GetLogger().Error("Hardware back button stopped", "error", err)
		}
	}()
}

func openControllers() []*sdl.GameController {
	var out []*sdl.GameController
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if c := sdl.GameControllerOpen(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// renderer draws one screen per frame.
type renderer struct {
	win      *window
	theme    Theme
	host     Host
	font     *ttf.Font
	small    *ttf.Font
	textures *textureCache[*sdl.Texture]
}

func newRenderer(win *window, theme Theme, host Host) *renderer {
	r := &renderer{
		win:      win,
		theme:    theme,
		host:     host,
		textures: newTextureCache[*sdl.Texture](defaultMaxCacheSize),
	}
	if theme.FontPath != "" {
		var err error
		if r.font, err = ttf.OpenFont(theme.FontPath, 42); err != nil {
			internal.GetLogger().Warn("Failed to load font; text disabled", "path", theme.FontPath, "error", err)
		}
		if r.small, err = ttf.OpenFont(theme.FontPath, 22); err != nil {
			r.small = nil
		}
	}
	return r
}

func (r *renderer) close() {
	r.textures.Destroy()
	if r.font != nil {
		r.font.Close()
	}
	if r.small != nil {
		r.small.Close()
	}
}

func (r *renderer) draw(state *router.State, navErr error) {
	ren := r.win.Renderer
	if state.Len() == 0 {
		_ = ren.SetDrawColor(0, 0, 0, 0xFF)
		_ = ren.Clear()
		return
	}

	focused := state.Focused()
	screen, _ := r.host.Registry().Lookup(focused.RouteName)
	loc := r.host.Localizer()
	width, height := r.win.size()

	bg := HexToColor(screen.Background)
	_ = ren.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	_ = ren.Clear()

	fg := TextColorFor(screen.Background)
	y := height / 4

	if screen.Icon != "" {
		if tex, w, h, err := r.icon(screen.Icon, 96); err == nil {
			_ = ren.Copy(tex, nil, &sdl.Rect{X: (width - w) / 2, Y: y, W: w, H: h})
			y += h + 24
		}
	}

	title := loc.Text(screen.TitleID, screen.Title)
	if title == "" {
		title = focused.RouteName
	}
	if tex, w, h, err := r.text(r.font, title, fg); err == nil {
		_ = ren.Copy(tex, nil, &sdl.Rect{X: (width - w) / 2, Y: y, W: w, H: h})
		y += h + 32
	}

	if label := loc.Text(screen.ButtonID, screen.Button); label != "" {
		if tex, w, h, err := r.text(r.small, label, r.theme.ButtonLabelColor); err == nil {
			pill := sdl.Rect{X: (width-w)/2 - 24, Y: y, W: w + 48, H: h + 20}
			bc := r.theme.ButtonColor
			_ = ren.SetDrawColor(bc.R, bc.G, bc.B, bc.A)
			_ = ren.FillRect(&pill)
			_ = ren.Copy(tex, nil, &sdl.Rect{X: pill.X + 24, Y: pill.Y + 10, W: w, H: h})
		}
	}

	hint := fmt.Sprintf("%s   %s   (%d/%d)",
		loc.Text("hint.advance", "Enter: next"),
		loc.Text("hint.retreat", "B: back"),
		state.Index+1, state.Len())
	if tex, w, h, err := r.text(r.small, hint, fg); err == nil {
		_ = ren.Copy(tex, nil, &sdl.Rect{X: (width - w) / 2, Y: height - h - 24, W: w, H: h})
	}

	if navErr != nil && (router.IsUnknownRoute(navErr) || router.IsInvalidReset(navErr)) {
		msg := loc.Text("error.title", "Navigation error") + ": " + navErr.Error()
		if tex, w, h, err := r.text(r.small, msg, r.theme.ErrorColor); err == nil {
			_ = ren.Copy(tex, nil, &sdl.Rect{X: (width - w) / 2, Y: 24, W: w, H: h})
		}
	}
}

var errNoFont = errors.New("sdlview: no font loaded")

func (r *renderer) text(font *ttf.Font, s string, color sdl.Color) (*sdl.Texture, int32, int32, error) {
	if font == nil {
		return nil, 0, 0, errNoFont
	}
	key := fmt.Sprintf("text:%p:%08x:%s", font, uint32(color.R)<<24|uint32(color.G)<<16|uint32(color.B)<<8|uint32(color.A), s)
	if tex, ok := r.textures.Get(key); ok {
		return querySize(tex)
	}

	surface, err := font.RenderUTF8Blended(s, color)
	if err != nil {
		return nil, 0, 0, err
	}
	defer surface.Free()

	tex, err := r.win.Renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, 0, 0, err
	}
	r.textures.Set(key, tex)
	return tex, surface.W, surface.H, nil
}

func (r *renderer) icon(ref string, size int) (*sdl.Texture, int32, int32, error) {
	key := fmt.Sprintf("icon:%s:%d", ref, size)
	if tex, ok := r.textures.Get(key); ok {
		return querySize(tex)
	}

	img, err := icons.Rasterize(ref, size)
	if err != nil {
		return nil, 0, 0, err
	}
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(unsafe.Pointer(&img.Pix[0]),
		int32(size), int32(size), 32, int32(img.Stride), uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil, 0, 0, err
	}
	defer surface.Free()

	tex, err := r.win.Renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, 0, 0, err
	}
	_ = tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	r.textures.Set(key, tex)
	return tex, int32(size), int32(size), nil
}

func querySize(tex *sdl.Texture) (*sdl.Texture, int32, int32, error) {
	_, _, w, h, err := tex.Query()
	return tex, w, h, err
}
