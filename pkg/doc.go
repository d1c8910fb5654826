// Package pkg provides the libraries behind qslcard, a generator for QSL card
// templates.
//
// # Overview
//
// A card template is a transparent PNG that the card service later fills in
// with QSO details. The pkg directory is organized as:
//
//  1. [card] - Config loading, layout constants and the render steps
//  2. [fonts] - TrueType discovery with an embedded fallback
//  3. [registry] - The shared data/callsigns.json registry
//  4. [observability] - Progress hooks for rendering and registration
//  5. [errors], [buildinfo] - Coded errors and version information
//
// # Architecture
//
// The typical data flow:
//
//	configs/<callsign>.json
//	         ↓
//	    [card] LoadConfig
//	         ↓
//	    [card] Renderer (QSO section, operator, callsign, logo, signature, QR)
//	         ↓
//	    data/cards/<callsign>/card.png
//	         ↓
//	    [registry] Store.Register → data/callsigns.json
//
// # Quick Start
//
//	cfg, err := card.LoadConfig("configs/oe8kks.json")
//	if err != nil {
//	    return err
//	}
//
//	r := card.NewRenderer(card.DefaultLayout(), fonts.NewSystemResolver())
//	canvas, err := r.Render(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := canvas.SavePNG("data/cards/oe8kks/card.png"); err != nil {
//	    return err
//	}
//
//	store := registry.NewStore("data")
//	_, _, err = store.Register(ctx, cfg.Callsign, cfg.Link(), time.Now())
package pkg
