package sdlview

import "github.com/veandco/go-sdl2/sdl"

// Theme is the palette drawn over each screen's own background colour.
type Theme struct {
	ButtonColor      sdl.Color // Button pill background
	ButtonLabelColor sdl.Color // Text inside the button pill
	HintColor        sdl.Color // Footer hints
	ErrorColor       sdl.Color // Navigation error banner
	FontPath         string    // TTF used for all text; empty disables text
}

// DefaultFontPath is tried when no font is configured.
const DefaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		ButtonColor:      HexToColor(0x008080),
		ButtonLabelColor: HexToColor(0xFFFFFF),
		HintColor:        HexToColor(0x000000),
		ErrorColor:       HexToColor(0xB00020),
		FontPath:         DefaultFontPath,
	}
}

// HexToColor converts 0xRRGGBB to an opaque colour.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
		A: 0xFF,
	}
}

// TextColorFor picks black or white text for a background colour.
func TextColorFor(bg uint32) sdl.Color {
	c := HexToColor(bg)
	if int(c.R)*299+int(c.G)*587+int(c.B)*114 > 128_000 {
		return HexToColor(0x000000)
	}
	return HexToColor(0xFFFFFF)
}
