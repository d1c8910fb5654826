package card

import (
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// LogoPath resolves the configured logo file against the project root.
// It returns "" when no logo is configured.
func (r *Renderer) LogoPath(cfg *Config) string {
	if cfg.Logo == nil || cfg.Logo.File == "" {
		return ""
	}
	path := cfg.Logo.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	return path
}

// DrawLogo resizes the logo to a square and pastes it through a circular
// mask at the layout's logo position. A missing logo file is logged and
// skipped; an undecodable one is an error.
func (r *Renderer) DrawLogo(c *Canvas, cfg *Config) error {
	path := r.LogoPath(cfg)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("Logo file not found", "path", path)
			return nil
		}
		return errors.Wrap(errors.ErrCodeIO, err, "stat logo %s", path)
	}

	size := cfg.Logo.Size
	if size == 0 {
		size = r.layout.Logo.DefaultSize
	}

	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidImage, err, "decode logo %s", path)
	}
	logo := imaging.Resize(src, size, size, imaging.Lanczos)

	c.PasteMasked(logo, r.layout.Logo.At, CircleMask(size))
	r.logger.Debug("Drew logo", "path", path, "size", size)
	return nil
}
