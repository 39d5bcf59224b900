package certificate

import (
	"strconv"
	"strings"
)

// RGB is a color in the 0-255 range as expected by the PDF canvas.
type RGB struct {
	R int
	G int
	B int
}

var (
	colorBlack = RGB{0, 0, 0}
	colorWhite = RGB{255, 255, 255}
)

// parseHexColor converts a "#RRGGBB" string into an RGB triple. Malformed
// input returns the fallback instead of an error so that a bad color stored
// in a template can never abort certificate generation.
func parseHexColor(s string, fallback RGB) RGB {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}

	// Parse the whole string at once so a single bad digit anywhere
	// rejects the value instead of yielding a partial color.
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return RGB{int(v >> 16), int(v >> 8 & 0xFF), int(v & 0xFF)}
}
