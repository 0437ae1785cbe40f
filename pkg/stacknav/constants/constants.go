// Package constants defines shared constants, types, and configuration values
// used throughout stacknav.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	LogLevelEnvVar     = "STACKNAV_LOG_LEVEL"
	LocaleEnvVar       = "STACKNAV_LOCALE"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// NavigationStateKey is the agreed name of the application state field
// holding the navigation stack.
const NavigationStateKey = "rootNavigatorState"

// Routes of the stock two-screen app.
const (
	DefaultInitialRoute = "page1"
	DefaultAdvanceRoute = "page2"
)

// VirtualButton represents an abstract input button, mapped from physical
// keys and hardware buttons by each navigator.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonA                        // Advance
	VirtualButtonB                        // Retreat
	VirtualButtonBack                     // Hardware back gesture
	VirtualButtonMenu                     // Quit
)

func (vb VirtualButton) String() string {
	switch vb {
	case VirtualButtonUnassigned:
		return "Unassigned"
	case VirtualButtonA:
		return "A"
	case VirtualButtonB:
		return "B"
	case VirtualButtonBack:
		return "Back"
	case VirtualButtonMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// Default timing constants.
const (
	DefaultInputDelay = 20 * time.Millisecond // Debounce delay between input events
	FrameInterval     = 16 * time.Millisecond // ~60fps when VSync is unavailable
)
