package style

import (
	"fmt"
	"strconv"
	"strings"
)

// maxByte is the maximum value of a byte, used for color normalization.
const maxByte = 255.0

// Color is stored as ARGB (0xAARRGGBB). The zero value is fully
// transparent, which export sinks treat as "do not paint".
type Color uint32

// RGBA constructs a Color from red, green, blue, alpha bytes.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xFF)
}

// RGBAF returns normalized color components (0.0 to 1.0).
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// Alpha returns the alpha byte of the color.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// IsTransparent returns true if the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.Alpha() == 0
}

// Hex returns the color as a CSS hex string ("#rrggbb"). The alpha
// channel is dropped; callers that need opacity read it separately.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(c>>16), uint8(c>>8), uint8(c))
}

// ParseColor parses a CSS-style hex color: "#rgb", "#rrggbb", or
// "#rrggbbaa". An empty string parses to the transparent zero value.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return ColorTransparent, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("color %q: missing '#' prefix", s)
	}
	switch len(hex) {
	case 3:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		r := uint8(v >> 8 & 0xF)
		g := uint8(v >> 4 & 0xF)
		b := uint8(v & 0xF)
		return RGB(r<<4|r, g<<4|g, b<<4|b), nil
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return Color(uint32(v) | 0xFF000000), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
	default:
		return 0, fmt.Errorf("color %q: expected 3, 6 or 8 hex digits", s)
	}
}

// Common colors.
var (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
