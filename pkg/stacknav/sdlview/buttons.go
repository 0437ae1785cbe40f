package sdlview

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/nav"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/store"
)

// keyboardButton maps a key to a virtual button.
func keyboardButton(sym sdl.Keycode) constants.VirtualButton {
	switch sym {
	case sdl.K_RETURN, sdl.K_KP_ENTER, sdl.K_a:
		return constants.VirtualButtonA
	case sdl.K_BACKSPACE, sdl.K_b:
		return constants.VirtualButtonB
	case sdl.K_ESCAPE, sdl.K_AC_BACK:
		return constants.VirtualButtonBack
	case sdl.K_q:
		return constants.VirtualButtonMenu
	default:
		return constants.VirtualButtonUnassigned
	}
}

// controllerButton maps a game controller button to a virtual button. SDL
// reports positions, so A is the bottom face button.
func controllerButton(button uint8) constants.VirtualButton {
	switch sdl.GameControllerButton(button) {
	case sdl.CONTROLLER_BUTTON_A:
		return constants.VirtualButtonA
	case sdl.CONTROLLER_BUTTON_B:
		return constants.VirtualButtonB
	case sdl.CONTROLLER_BUTTON_BACK:
		return constants.VirtualButtonBack
	case sdl.CONTROLLER_BUTTON_GUIDE, sdl.CONTROLLER_BUTTON_START:
		return constants.VirtualButtonMenu
	default:
		return constants.VirtualButtonUnassigned
	}
}

// actionFor returns the action a button press dispatches, or nil.
func actionFor(vb constants.VirtualButton) store.Action {
	switch vb {
	case constants.VirtualButtonA:
		return nav.Advance()
	case constants.VirtualButtonB:
		return nav.Retreat()
	case constants.VirtualButtonBack:
		return router.Back{}
	default:
		return nil
	}
}
