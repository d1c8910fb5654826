package card

import (
	"image"
	"image/color"
)

// Canvas dimensions of every card template, in pixels.
const (
	CanvasWidth  = 4837
	CanvasHeight = 3078
)

// Rect is an axis-aligned box whose corners are both inclusive, so
// Rect{0, 0, 9, 9} covers 10×10 pixels.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Bounds converts r to a half-open image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1+1, r.Y1+1)
}

// Width returns the number of pixel columns covered by r.
func (r Rect) Width() int { return r.X1 - r.X0 + 1 }

// Height returns the number of pixel rows covered by r.
func (r Rect) Height() int { return r.Y1 - r.Y0 + 1 }

// Box is a filled rectangle.
type Box struct {
	Rect Rect
	Fill color.NRGBA
}

// Label is a line of text centered on At.
type Label struct {
	Text string
	At   image.Point
	Size float64
}

// QSOLayout describes the static QSO data section.
type QSOLayout struct {
	Background  Box
	DataBoxes   []Box  // callsign, UTC, frequency, mode, RST entry areas
	OpaqueBoxes []Box  // remarks and signature
	LabelBoxes  []Rect // black boxes behind the labels
	LabelFill   color.NRGBA
	Labels      []Label
	LabelColor  color.NRGBA
	Heading     Label
	HeadingBold bool
	HeadingFill color.NRGBA
}

// OperatorLayout describes the operator name/address panel.
type OperatorLayout struct {
	MinBox        Rect // only Min.X0 and X1 are used; height follows content
	Fill          color.NRGBA
	TextX         int
	TextY         int
	LineSpacing   int
	FontSize      float64
	EmailGap      int
	TopPadding    int
	RightPadding  int
	BottomPadding int
	TextColor     color.NRGBA
}

// CallsignLayout places the large callsign at the top right.
type CallsignLayout struct {
	RightMargin  int
	Y            int
	FontSize     float64
	DefaultColor string
}

// LogoLayout places the circular logo.
type LogoLayout struct {
	At          image.Point
	DefaultSize int
}

// SignatureLayout places the signature text.
type SignatureLayout struct {
	At           image.Point
	FontSize     float64
	DefaultColor string
}

// QRLayout places the optional QR code.
type QRLayout struct {
	At          image.Point
	DefaultSize int
}

// Layout holds every pixel constant of a card template. The zero value is
// not useful; start from [DefaultLayout].
type Layout struct {
	Width     int
	Height    int
	QSO       QSOLayout
	Operator  OperatorLayout
	Callsign  CallsignLayout
	Logo      LogoLayout
	Signature SignatureLayout
	QR        QRLayout
}

var (
	white     = color.NRGBA{255, 255, 255, 255}
	black     = color.NRGBA{0, 0, 0, 255}
	dataEntry = color.NRGBA{255, 255, 255, 120}
	opaqueBox = color.NRGBA{255, 255, 255, 200}
)

// DefaultLayout returns the layout shared by all cards. The downstream card
// service places its text overlays relative to these boxes, see
// registry.DefaultTextPositions.
func DefaultLayout() Layout {
	return Layout{
		Width:  CanvasWidth,
		Height: CanvasHeight,
		QSO: QSOLayout{
			Background: Box{Rect{1900, 1580, 4720, 3000}, color.NRGBA{255, 255, 255, 80}},
			DataBoxes: []Box{
				{Rect{2720, 1930, 3530, 2120}, dataEntry}, // callsign
				{Rect{2120, 2430, 2900, 2620}, dataEntry}, // UTC
				{Rect{2930, 2430, 3530, 2620}, dataEntry}, // frequency
				{Rect{3560, 2430, 4020, 2620}, dataEntry}, // mode
				{Rect{4050, 2430, 4510, 2620}, dataEntry}, // RST
			},
			OpaqueBoxes: []Box{
				{Rect{1900, 2700, 3300, 3000}, opaqueBox}, // remarks
				{Rect{3350, 2700, 4720, 3000}, opaqueBox}, // signature
			},
			LabelBoxes: []Rect{
				{2720, 1830, 3530, 1920},
				{2120, 2300, 2900, 2420},
				{2930, 2300, 3530, 2420},
				{3560, 2300, 4020, 2420},
				{4050, 2300, 4510, 2420},
			},
			LabelFill: black,
			Labels: []Label{
				{"Your callsign", image.Pt(3125, 1875), 60},
				{"UTC DATE/TIME", image.Pt(2510, 2340), 55},
				{"DD.MM.YYYY HH:MM", image.Pt(2510, 2390), 35},
				{"Frequency MHz", image.Pt(3230, 2360), 55},
				{"Mode", image.Pt(3790, 2360), 55},
				{"R-S-T", image.Pt(4280, 2360), 55},
			},
			LabelColor:  white,
			Heading:     Label{"QSO DATA", image.Pt(3310, 1650), 150},
			HeadingBold: true,
			HeadingFill: black,
		},
		Operator: OperatorLayout{
			MinBox:        Rect{40, 1000, 1200, 1500},
			Fill:          color.NRGBA{255, 255, 255, 160},
			TextX:         80,
			TextY:         1040,
			LineSpacing:   117,
			FontSize:      86,
			EmailGap:      40,
			TopPadding:    40,
			RightPadding:  80,
			BottomPadding: 30,
			TextColor:     black,
		},
		Callsign: CallsignLayout{
			RightMargin:  240,
			Y:            62,
			FontSize:     370,
			DefaultColor: "#FF0000",
		},
		Logo: LogoLayout{
			At:          image.Pt(80, 60),
			DefaultSize: 900,
		},
		Signature: SignatureLayout{
			At:           image.Pt(4400, 2880),
			FontSize:     120,
			DefaultColor: "#000000",
		},
		QR: QRLayout{
			At:          image.Pt(1420, 2580),
			DefaultSize: 360,
		},
	}
}
