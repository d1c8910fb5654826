// Package fonts resolves TrueType faces for card rendering.
//
// Rendering code asks a [Resolver] for a face by pixel size and [Style]; it
// never touches the filesystem itself. Two resolvers are provided:
//
//   - [SystemResolver] searches font directories for well-known DejaVu and
//     GNU FreeFont files and falls back to the embedded Go fonts.
//   - [Embedded] only uses the Go fonts compiled into the binary, which makes
//     rendering fully reproducible (tests use it).
//
// A resolver never fails: a missing font degrades the look of the card, it
// does not abort the run.
package fonts

import (
	"strings"

	"golang.org/x/image/font"
)

// Style selects a font variant.
type Style struct {
	Bold   bool
	Italic bool
	Serif  bool
}

// Common styles used by the card layout.
var (
	Regular         = Style{}
	Bold            = Style{Bold: true}
	SerifBoldItalic = Style{Bold: true, Italic: true, Serif: true}
)

// Resolver returns a usable face for the requested pixel size and style.
type Resolver interface {
	Resolve(size float64, style Style) font.Face
}

// String returns a short human-readable name such as "serif bold italic".
func (s Style) String() string {
	parts := []string{"sans"}
	if s.Serif {
		parts[0] = "serif"
	}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, " ")
}

// Patterns returns candidate font file names for the style, best match first.
func (s Style) Patterns() []string {
	if s.Serif {
		switch {
		case s.Bold && s.Italic:
			return []string{"FreeSerifBoldItalic.ttf", "DejaVuSerif-BoldItalic.ttf"}
		case s.Italic:
			return []string{"FreeSerifItalic.ttf", "DejaVuSerif-Italic.ttf"}
		case s.Bold:
			return []string{"FreeSerifBold.ttf", "DejaVuSerif-Bold.ttf"}
		default:
			return []string{"FreeSerif.ttf", "DejaVuSerif.ttf"}
		}
	}
	switch {
	case s.Bold && s.Italic:
		return []string{"DejaVuSans-BoldOblique.ttf", "FreeSansBoldOblique.ttf"}
	case s.Bold:
		return []string{"DejaVuSans-Bold.ttf", "FreeSansBold.ttf"}
	case s.Italic:
		return []string{"DejaVuSans-Oblique.ttf", "FreeSansOblique.ttf"}
	default:
		return []string{"DejaVuSans.ttf", "FreeSans.ttf"}
	}
}
