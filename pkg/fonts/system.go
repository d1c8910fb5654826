package fonts

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// standardDirs are searched after any Nix store font directories.
var standardDirs = []string{
	"/usr/share/fonts/truetype/dejavu/",
	"/usr/share/fonts/truetype/freefont/",
	"/usr/share/fonts/truetype/",
	"/usr/share/fonts/TTF/",
	"/usr/share/fonts/",
}

// nixStoreGlob matches font directories of packages in the Nix store.
const nixStoreGlob = "/nix/store/*/share/fonts/truetype/"

// DefaultSearchDirs returns the font directories searched by a
// [SystemResolver], in priority order.
func DefaultSearchDirs() []string {
	dirs, _ := filepath.Glob(nixStoreGlob)
	return append(dirs, standardDirs...)
}

// FinderFunc locates a font file by base name outside the search directories.
type FinderFunc func(name string) (string, error)

// Option configures a [SystemResolver].
type Option func(*SystemResolver)

// WithLogger sets the logger used for missing-font warnings.
func WithLogger(l *log.Logger) Option {
	return func(r *SystemResolver) { r.logger = l }
}

// WithDirs adds directories that are searched before the default ones.
func WithDirs(dirs ...string) Option {
	return func(r *SystemResolver) { r.extra = append(r.extra, dirs...) }
}

// WithSearchDirs replaces the default search directories.
func WithSearchDirs(dirs ...string) Option {
	return func(r *SystemResolver) { r.dirs = dirs }
}

// WithFinder sets the lookup used when no search directory has a match.
// A nil finder disables the lookup.
func WithFinder(f FinderFunc) Option {
	return func(r *SystemResolver) { r.find = f }
}

type faceKey struct {
	size  float64
	style Style
}

// SystemResolver finds fonts on the local filesystem.
//
// For a style it walks every search directory (recursively) in order and
// returns the first file whose name matches one of [Style.Patterns], trying
// patterns in priority order within a directory. When no directory has a
// match it asks go-findfont, which knows the per-user and per-OS font
// locations. If that fails too, a warning is logged once per style and the
// embedded Go font is used.
//
// Parsed fonts and faces are cached; a resolver is safe for concurrent use.
type SystemResolver struct {
	logger *log.Logger
	extra  []string
	dirs   []string
	find   FinderFunc

	mu      sync.Mutex
	indexes map[string]map[string]string // dir -> base name -> first path
	located map[Style]string
	fonts   map[string]*opentype.Font
	faces   map[faceKey]font.Face
	warned  map[Style]bool
}

// NewSystemResolver creates a resolver over [DefaultSearchDirs].
func NewSystemResolver(opts ...Option) *SystemResolver {
	r := &SystemResolver{
		dirs:    DefaultSearchDirs(),
		find:    findfont.Find,
		indexes: make(map[string]map[string]string),
		located: make(map[Style]string),
		fonts:   make(map[string]*opentype.Font),
		faces:   make(map[faceKey]font.Face),
		warned:  make(map[Style]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// SearchDirs returns the directories in the order they are searched.
func (r *SystemResolver) SearchDirs() []string {
	return append(append([]string(nil), r.extra...), r.dirs...)
}

// Resolve implements [Resolver].
func (r *SystemResolver) Resolve(size float64, style Style) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := faceKey{size: size, style: style}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face := r.load(size, style)
	r.faces[key] = face
	return face
}

// Locate returns the font file used for style, if any.
func (r *SystemResolver) Locate(style Style) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path := r.locate(style)
	return path, path != ""
}

func (r *SystemResolver) load(size float64, style Style) font.Face {
	if path := r.locate(style); path != "" {
		face, err := r.faceFromFile(path, size)
		if err == nil {
			return face
		}
		r.logger.Warn("Could not load font", "path", path, "err", err)
	}
	if !r.warned[style] {
		r.warned[style] = true
		r.logger.Warn("Could not find TTF font, using embedded default", "style", style)
	}
	return embeddedFace(size, style)
}

func (r *SystemResolver) faceFromFile(path string, size float64) (font.Face, error) {
	f, ok := r.fonts[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, err
		}
		r.fonts[path] = f
	}
	return newFace(f, size)
}

// locate must be called with r.mu held. An empty result is cached too.
func (r *SystemResolver) locate(style Style) string {
	if path, ok := r.located[style]; ok {
		return path
	}
	path := r.search(style.Patterns())
	r.located[style] = path
	return path
}

func (r *SystemResolver) search(patterns []string) string {
	for _, dir := range r.SearchDirs() {
		index := r.index(dir)
		for _, name := range patterns {
			if path, ok := index[name]; ok {
				return path
			}
		}
	}
	if r.find == nil {
		return ""
	}
	for _, name := range patterns {
		if path, err := r.find(name); err == nil && path != "" {
			return path
		}
	}
	return ""
}

// index lists the files below dir by base name, keeping the first path in
// lexical walk order. Symlinked directories are followed once each, so font
// trees linked into /usr/share/fonts are found. Unreadable directories yield
// an empty index.
func (r *SystemResolver) index(dir string) map[string]string {
	if idx, ok := r.indexes[dir]; ok {
		return idx
	}
	idx := make(map[string]string)
	walkFonts(dir, idx, make(map[string]bool))
	r.indexes[dir] = idx
	return idx
}

func walkFonts(dir string, idx map[string]string, visited map[string]bool) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil || visited[resolved] {
		return
	}
	visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			isDir = info.IsDir()
		}
		if isDir {
			walkFonts(path, idx, visited)
			continue
		}
		if _, seen := idx[e.Name()]; !seen {
			idx[e.Name()] = path
		}
	}
}

var _ Resolver = (*SystemResolver)(nil)
