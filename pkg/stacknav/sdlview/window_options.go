package sdlview

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
)

// WindowOptions selects SDL window flags. The zero value lets Run choose:
// borderless in dev mode, a plain resizable window otherwise.
type WindowOptions struct {
	Borderless        bool
	Resizable         bool
	Fullscreen        bool
	FullscreenDesktop bool // Fullscreen at desktop resolution
	Hidden            bool
}

// WindowMode maps a window.mode config value to options. An empty mode
// yields the zero value.
func WindowMode(mode string) (WindowOptions, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "":
		return WindowOptions{}, nil
	case "windowed":
		return WindowOptions{Resizable: true}, nil
	case "borderless":
		return WindowOptions{Borderless: true, Resizable: true}, nil
	case "fullscreen":
		return WindowOptions{Fullscreen: true}, nil
	case "desktop":
		return WindowOptions{FullscreenDesktop: true}, nil
	}
	return WindowOptions{}, fmt.Errorf("sdlview: unknown window mode %q", mode)
}

func (wo WindowOptions) isZero() bool {
	return wo == WindowOptions{}
}

func (wo WindowOptions) sdlFlags() uint32 {
	var flags uint32
	if !wo.Hidden {
		flags = sdl.WINDOW_SHOWN
	}
	for _, f := range []struct {
		set  bool
		flag uint32
	}{
		{wo.Resizable, sdl.WINDOW_RESIZABLE},
		{wo.Borderless, sdl.WINDOW_BORDERLESS},
		{wo.Fullscreen, sdl.WINDOW_FULLSCREEN},
		{wo.FullscreenDesktop, sdl.WINDOW_FULLSCREEN_DESKTOP},
	} {
		if f.set {
			flags |= f.flag
		}
	}
	return flags
}
