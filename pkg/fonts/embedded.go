package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Embedded resolves every request with the Go fonts compiled into the binary.
// The Go fonts have no serif family, so serif styles map to the sans face of
// the same weight and slant.
var Embedded Resolver = embeddedResolver{}

type embeddedResolver struct{}

func (embeddedResolver) Resolve(size float64, style Style) font.Face {
	return embeddedFace(size, style)
}

type variant struct{ bold, italic bool }

// Parsed embedded fonts (computed once on first access).
var (
	embeddedFonts     map[variant]*opentype.Font
	embeddedFontsOnce sync.Once
)

func loadEmbedded() {
	sources := map[variant][]byte{
		{false, false}: goregular.TTF,
		{true, false}:  gobold.TTF,
		{false, true}:  goitalic.TTF,
		{true, true}:   gobolditalic.TTF,
	}
	embeddedFonts = make(map[variant]*opentype.Font, len(sources))
	for v, data := range sources {
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		embeddedFonts[v] = f
	}
}

// embeddedFace builds a Go font face at size pixels. basicfont is the last
// resort and ignores size.
func embeddedFace(size float64, style Style) font.Face {
	embeddedFontsOnce.Do(loadEmbedded)
	f, ok := embeddedFonts[variant{style.Bold, style.Italic}]
	if !ok {
		return basicfont.Face7x13
	}
	face, err := newFace(f, size)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// newFace creates a face whose em size is size pixels.
func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
