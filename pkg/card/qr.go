package card

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// QRPosition returns where the QR code is drawn, honouring config overrides.
func (r *Renderer) QRPosition(q *QRCode) image.Point {
	at := r.layout.QR.At
	if q.X != nil {
		at.X = *q.X
	}
	if q.Y != nil {
		at.Y = *q.Y
	}
	return at
}

// DrawQRCode draws a QR code of the QRZ link when the config enables it.
func (r *Renderer) DrawQRCode(c *Canvas, cfg *Config) error {
	if cfg.QR == nil {
		return nil
	}
	size := cfg.QR.Size
	if size == 0 {
		size = r.layout.QR.DefaultSize
	}

	q, err := qrcode.New(cfg.Link(), qrcode.Medium)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode QR code for %s", cfg.Link())
	}
	c.DrawImage(q.Image(size), r.QRPosition(cfg.QR))
	return nil
}
