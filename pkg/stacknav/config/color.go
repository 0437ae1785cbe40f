package config

import (
	"fmt"
	"strconv"
	"strings"
)

var namedColors = map[string]uint32{
	"black":   0x000000,
	"white":   0xFFFFFF,
	"red":     0xFF0000,
	"green":   0x008000,
	"blue":    0x0000FF,
	"yellow":  0xFFFF00,
	"orange":  0xFFA500,
	"purple":  0x800080,
	"gray":    0x808080,
	"grey":    0x808080,
	"teal":    0x008080,
	"navy":    0x000080,
	"magenta": 0xFF00FF,
	"cyan":    0x00FFFF,
}

// ParseColor parses "#rrggbb", "#rgb", "0xrrggbb" or a basic colour name
// into 0xRRGGBB. An empty string is white.
func ParseColor(raw string) (uint32, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0xFFFFFF, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	var hex string
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"):
		hex = s[2:]
	default:
		return 0, fmt.Errorf("unknown colour %q", raw)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid colour %q", raw)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid colour %q", raw)
	}
	return uint32(v), nil
}
