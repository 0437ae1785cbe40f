package sdlview

import (
	"os"
	"strconv"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
)

// window wraps the SDL window and renderer.
type window struct {
	Window          *sdl.Window
	Renderer        *sdl.Renderer
	Title           string
	hasVSync        bool
	lastPresentTime uint64
}

// windowSize resolves the window size. In development mode the
// WINDOW_WIDTH and WINDOW_HEIGHT environment variables win.
func windowSize(width, height int32) (int32, int32) {
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 768
	}
	if !constants.IsDevMode() {
		return width, height
	}
	return envSize(constants.WindowWidthEnvVar, width), envSize(constants.WindowHeightEnvVar, height)
}

func envSize(name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		internal.GetLogger().Warn("Invalid window size; using default", "variable", name, "value", v)
		return fallback
	}
	return int32(n)
}

func openWindow(title string, width, height int32, opts WindowOptions) (*window, error) {
	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)
	if constants.IsDevMode() {
		opts.Borderless = false
		x, y = 50, 50
	}
	width, height = windowSize(width, height)

	internal.GetLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	w, err := sdl.CreateWindow(title, x, y, width, height, opts.sdlFlags())
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(w, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		internal.GetLogger().Warn("Accelerated renderer unavailable; falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(w, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		_ = w.Destroy()
		return nil, err
	}
	_ = renderer.SetLogicalSize(width, height)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &window{
		Window:   w,
		Renderer: renderer,
		Title:    title,
		hasVSync: vsync,
	}, nil
}

func (w *window) size() (int32, int32) {
	return w.Renderer.GetLogicalSize()
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available.
func (w *window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		frame := uint64(constants.FrameInterval.Milliseconds())
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < frame {
			sdl.Delay(uint32(frame - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

func (w *window) close() {
	_ = w.Renderer.Destroy()
	_ = w.Window.Destroy()
}
