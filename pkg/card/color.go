package card

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// ParseHexColor parses "#RRGGBB", "#RRGGBBAA" or the "#RGB" shorthand.
// The leading '#' is optional. Colors without an alpha component are opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
