package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// =============================================================================
// Paths
// =============================================================================

// projectRoot returns the directory holding data/: the --root flag, then
// $QSLCARD_ROOT, then the current directory. The result is absolute.
func projectRoot(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = os.Getenv(envRoot)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeIO, err, "determine working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "resolve project root %s", dir)
	}
	return abs, nil
}

// dataDir returns the directory holding callsigns.json and cards/.
func dataDir(root string) string {
	return filepath.Join(root, "data")
}

// defaultOutput returns data/cards/<id>/card.png under root.
func defaultOutput(root, id string) string {
	return filepath.Join(dataDir(root), "cards", id, "card.png")
}

// fontDirs returns the --font-dir flags followed by $QSLCARD_FONT_DIRS.
func fontDirs(flags []string) []string {
	dirs := append([]string(nil), flags...)
	for _, d := range filepath.SplitList(os.Getenv(envFontDirs)) {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// loadDotEnv loads .env from dir (or the current directory) if present.
// Variables already set in the environment take precedence.
func loadDotEnv(dir string, logger *log.Logger) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeIO, err, "stat %s", path)
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	logger.Debug("Loaded environment", "file", path)
	return nil
}
