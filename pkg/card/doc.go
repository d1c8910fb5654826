// Package card renders QSL card templates.
//
// A card template is a transparent 4837×3078 RGBA image holding the static
// QSO data section (labeled boxes the card service later fills with contact
// details), an operator panel, the large callsign, and optionally a circular
// logo, a signature and a QR code. All pixel constants live in a [Layout];
// [DefaultLayout] returns the one every card uses.
//
// # Rendering
//
//	cfg, err := card.LoadConfig("configs/oe8kks.json")
//	if err != nil {
//	    return err
//	}
//	r := card.NewRenderer(card.DefaultLayout(), fonts.NewSystemResolver())
//	canvas, err := r.Render(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	err = canvas.SavePNG("data/cards/oe8kks/card.png")
//
// Steps are drawn back to front: QSO section, operator info, callsign, logo,
// signature, QR code. Rectangles replace the pixels beneath them; text is
// composited over them.
package card
