package card

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"

	"github.com/matzehuels/qslcard/pkg/fonts"
	"github.com/matzehuels/qslcard/pkg/observability"
)

// Draw step names, in the order they are applied (back to front).
const (
	StepQSO       = "QSO section"
	StepOperator  = "operator info"
	StepCallsign  = "callsign text"
	StepLogo      = "logo"
	StepSignature = "signature"
	StepQRCode    = "QR code"
)

// Renderer draws card templates. It holds no per-card state, so one
// Renderer can render any number of configs sequentially.
type Renderer struct {
	layout Layout
	fonts  fonts.Resolver
	logger *log.Logger
	root   string
	hooks  observability.RenderHooks
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for warnings about missing assets.
func WithLogger(l *log.Logger) RendererOption {
	return func(r *Renderer) { r.logger = l }
}

// WithProjectRoot sets the directory relative logo paths are resolved against.
func WithProjectRoot(dir string) RendererOption {
	return func(r *Renderer) { r.root = dir }
}

// WithHooks overrides the globally registered render hooks.
func WithHooks(h observability.RenderHooks) RendererOption {
	return func(r *Renderer) { r.hooks = h }
}

// NewRenderer creates a renderer for layout using resolver for all text.
func NewRenderer(layout Layout, resolver fonts.Resolver, opts ...RendererOption) *Renderer {
	r := &Renderer{layout: layout, fonts: resolver}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		r.fonts = fonts.Embedded
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	if r.hooks == nil {
		r.hooks = observability.Render()
	}
	return r
}

// Layout returns the layout the renderer draws with.
func (r *Renderer) Layout() Layout {
	return r.layout
}

type step struct {
	name string
	draw func(*Canvas, *Config) error
}

// Render creates a transparent canvas and applies every draw step to it.
// Optional parts (logo, signature, QR code) are skipped when not configured.
func (r *Renderer) Render(ctx context.Context, cfg *Config) (*Canvas, error) {
	steps := []step{
		{StepQSO, func(c *Canvas, _ *Config) error { r.DrawQSOSection(c); return nil }},
		{StepOperator, func(c *Canvas, cfg *Config) error { r.DrawOperatorInfo(c, cfg); return nil }},
		{StepCallsign, r.DrawCallsign},
		{StepLogo, r.DrawLogo},
		{StepSignature, r.DrawSignature},
	}
	if cfg.QR != nil {
		steps = append(steps, step{StepQRCode, r.DrawQRCode})
	}

	canvas := NewCanvas(r.layout.Width, r.layout.Height)
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.hooks.OnStepStart(ctx, s.name)
		start := time.Now()
		err := s.draw(canvas, cfg)
		r.hooks.OnStepComplete(ctx, s.name, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return canvas, nil
}

// DrawQSOSection draws the data-entry boxes, their labels and the heading.
// The result does not depend on any config.
func (r *Renderer) DrawQSOSection(c *Canvas) {
	q := r.layout.QSO

	c.FillRect(q.Background.Rect, q.Background.Fill)
	for _, b := range q.DataBoxes {
		c.FillRect(b.Rect, b.Fill)
	}
	for _, b := range q.OpaqueBoxes {
		c.FillRect(b.Rect, b.Fill)
	}
	for _, rect := range q.LabelBoxes {
		c.FillRect(rect, q.LabelFill)
	}
	for _, l := range q.Labels {
		face := r.fonts.Resolve(l.Size, fonts.Regular)
		c.DrawText(l.Text, face, q.LabelColor, float64(l.At.X), float64(l.At.Y), AnchorCenter)
	}

	style := fonts.Regular
	if q.HeadingBold {
		style = fonts.Bold
	}
	h := q.Heading
	c.DrawText(h.Text, r.fonts.Resolve(h.Size, style), q.HeadingFill, float64(h.At.X), float64(h.At.Y), AnchorCenter)
}

// operatorLines returns the panel lines in drawing order, without the email.
func operatorLines(op Operator) []string {
	return append([]string{op.Name}, op.Address...)
}

// OperatorPanel computes the background rectangle of the operator panel.
// The panel is at least as wide as the layout minimum and grows with the
// widest line; its height follows the number of lines.
func (r *Renderer) OperatorPanel(cfg *Config) Rect {
	l := r.layout.Operator
	op := cfg.Operator
	lines := operatorLines(op)

	total := len(lines)
	gap := 0
	measured := lines
	if op.Email != "" {
		total++
		gap = l.EmailGap
		measured = append(append([]string(nil), lines...), op.Email)
	}

	face := r.fonts.Resolve(l.FontSize, fonts.Regular)
	maxWidth := 0
	for _, line := range measured {
		if w := font.MeasureString(face, line).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}

	right := max(l.TextX+maxWidth+l.RightPadding, l.MinBox.X1)
	bottom := l.TextY + total*l.LineSpacing + gap + l.BottomPadding
	return Rect{X0: l.MinBox.X0, Y0: l.TextY - l.TopPadding, X1: right, Y1: bottom}
}

// DrawOperatorInfo draws the operator panel and returns its rectangle. The
// panel background is drawn even when every operator field is empty.
func (r *Renderer) DrawOperatorInfo(c *Canvas, cfg *Config) Rect {
	l := r.layout.Operator
	panel := r.OperatorPanel(cfg)
	c.FillRect(panel, l.Fill)

	face := r.fonts.Resolve(l.FontSize, fonts.Regular)
	x := float64(l.TextX)
	y := l.TextY
	for _, line := range operatorLines(cfg.Operator) {
		c.DrawText(line, face, l.TextColor, x, float64(y), AnchorTopLeft)
		y += l.LineSpacing
	}
	if email := cfg.Operator.Email; email != "" {
		y += l.EmailGap
		c.DrawText(email, face, l.TextColor, x, float64(y), AnchorTopLeft)
	}
	return panel
}

// DrawCallsign draws the uppercased callsign, right-aligned near the top
// right corner.
func (r *Renderer) DrawCallsign(c *Canvas, cfg *Config) error {
	l := r.layout.Callsign
	col, err := colorOr(cfg.CallsignColor, l.DefaultColor)
	if err != nil {
		return err
	}
	face := r.fonts.Resolve(l.FontSize, fonts.Bold)
	x := float64(r.layout.Width - l.RightMargin)
	c.DrawText(cfg.DisplayCallsign(), face, col, x, float64(l.Y), AnchorTopRight)
	return nil
}

// DrawSignature draws the signature text centered in the signature box.
func (r *Renderer) DrawSignature(c *Canvas, cfg *Config) error {
	if cfg.Signature == nil || cfg.Signature.Text == "" {
		return nil
	}
	l := r.layout.Signature
	col, err := colorOr(cfg.Signature.Color, l.DefaultColor)
	if err != nil {
		return err
	}
	face := r.fonts.Resolve(l.FontSize, fonts.SerifBoldItalic)
	c.DrawText(cfg.Signature.Text, face, col, float64(l.At.X), float64(l.At.Y), AnchorCenter)
	return nil
}

func colorOr(hex, fallback string) (color.NRGBA, error) {
	if hex == "" {
		hex = fallback
	}
	return ParseHexColor(hex)
}
