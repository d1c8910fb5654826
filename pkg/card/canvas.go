package card

import (
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// Anchor positions text relative to its reference point. X is 0 for left,
// 0.5 for center and 1 for right; Y is 0 for the ascender line and 0.5 for
// the middle between ascender and descender.
type Anchor struct {
	X, Y float64
}

// Anchors used by the card layout.
var (
	AnchorTopLeft  = Anchor{0, 0}
	AnchorTopRight = Anchor{1, 0}
	AnchorCenter   = Anchor{0.5, 0.5}
)

// Canvas is a transparent RGBA raster that the render steps draw onto.
type Canvas struct {
	dc *gg.Context
	im *image.RGBA
}

// NewCanvas creates a fully transparent canvas.
func NewCanvas(width, height int) *Canvas {
	im := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Canvas{dc: gg.NewContextForRGBA(im), im: im}
}

// Image returns the underlying raster. It is shared, not copied.
func (c *Canvas) Image() *image.RGBA {
	return c.im
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.im.Bounds()
}

// FillRect replaces every pixel inside r with fill. Unlike text, rectangles
// are not blended with what is underneath.
func (c *Canvas) FillRect(r Rect, fill color.Color) {
	draw.Draw(c.im, r.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
}

// DrawText draws s with its anchor point at (x, y). Glyphs are composited
// over the existing pixels.
func (c *Canvas) DrawText(s string, face font.Face, col color.Color, x, y float64, a Anchor) {
	if s == "" {
		return
	}
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	w, _ := c.dc.MeasureString(s)

	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	baseline := y + ascent - a.Y*(ascent+descent)

	c.dc.DrawString(s, x-a.X*w, baseline)
}

// DrawImage composites src over the canvas with its top-left corner at at.
func (c *Canvas) DrawImage(src image.Image, at image.Point) {
	b := src.Bounds()
	draw.Draw(c.im, image.Rectangle{Min: at, Max: at.Add(b.Size())}, src, b.Min, draw.Over)
}

// PasteMasked copies src onto the canvas at at, weighted by mask: where the
// mask is opaque the canvas takes the src pixel, where it is transparent the
// canvas is left untouched. Partial mask values interpolate every channel,
// alpha included, between the canvas and src.
func (c *Canvas) PasteMasked(src image.Image, at image.Point, mask image.Image) {
	sb := src.Bounds()
	mb := mask.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(sb.Size())}.Intersect(c.im.Bounds())
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			dx, dy := x-at.X, y-at.Y
			_, _, _, m := mask.At(mb.Min.X+dx, mb.Min.Y+dy).RGBA()
			switch {
			case m == 0:
				continue
			case m == 0xffff:
				c.im.Set(x, y, src.At(sb.Min.X+dx, sb.Min.Y+dy))
			default:
				s := color.NRGBAModel.Convert(src.At(sb.Min.X+dx, sb.Min.Y+dy)).(color.NRGBA)
				d := color.NRGBAModel.Convert(c.im.At(x, y)).(color.NRGBA)
				c.im.Set(x, y, color.NRGBA{
					R: lerp(d.R, s.R, m),
					G: lerp(d.G, s.G, m),
					B: lerp(d.B, s.B, m),
					A: lerp(d.A, s.A, m),
				})
			}
		}
	}
}

// lerp mixes a and b by the 16-bit weight m of b.
func lerp(a, b uint8, m uint32) uint8 {
	return uint8((uint32(b)*m + uint32(a)*(0xffff-m) + 0x7fff) / 0xffff)
}

// EncodePNG writes the canvas as an RGBA PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the canvas to path, creating parent directories.
func (c *Canvas) SavePNG(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, cerr, "close %s", path)
		}
	}()
	if err := c.EncodePNG(f); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode %s", path)
	}
	return nil
}

// CircleMask returns a size×size alpha mask that is opaque inside the
// inscribed circle and transparent outside it.
func CircleMask(size int) *image.Alpha {
	dc := gg.NewContext(size, size)
	r := float64(size) / 2
	dc.DrawCircle(r, r, r)
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	return dc.AsMask()
}
