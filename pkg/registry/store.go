package registry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qslcard/pkg/errors"
	"github.com/matzehuels/qslcard/pkg/observability"
)

// FileName is the registry file inside the data directory.
const FileName = "callsigns.json"

// Store reads and writes the registry file and the per-callsign card
// directories. There is no locking: concurrent runs against the same data
// directory are not supported.
type Store struct {
	// Path is the registry file.
	Path     string
	// CardsDir holds one directory per registered callsign.
	CardsDir string

	logger *log.Logger
	hooks  observability.RegistryHooks
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for registration notices.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithHooks overrides the globally registered registry hooks.
func WithHooks(h observability.RegistryHooks) Option {
	return func(s *Store) { s.hooks = h }
}

// NewStore creates a store for dataDir, which holds callsigns.json and the
// cards directory. Nothing is created on disk until a callsign is registered.
func NewStore(dataDir string, opts ...Option) *Store {
	s := &Store{
		Path:     filepath.Join(dataDir, FileName),
		CardsDir: filepath.Join(dataDir, "cards"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.hooks == nil {
		s.hooks = observability.Registry()
	}
	return s
}

// CardDir returns the directory holding the artifacts of id.
func (s *Store) CardDir(id string) string {
	return filepath.Join(s.CardsDir, id)
}

// Load reads the registry. A missing file yields an empty registry.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return &Registry{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", s.Path)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegistry, err, "decode %s", s.Path)
	}
	return &reg, nil
}

// Save writes reg with two-space indentation. The file is replaced
// atomically: readers see either the old or the new registry, never a
// partial write.
func (s *Store) Save(reg *Registry) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode registry")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+"-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", tmp.Name())
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "replace %s", s.Path)
	}
	return nil
}

// Register adds callsign to the registry unless an entry with the same id
// (compared case-insensitively) exists. It reports whether an entry was
// added; when it was not, the existing entry is returned and nothing on
// disk changes. New entries get the default text positions and now as
// creation time, and their card directory is created with a backgrounds
// subdirectory.
func (s *Store) Register(ctx context.Context, callsign, qrzLink string, now time.Time) (Entry, bool, error) {
	if err := errors.ValidateCallsign(callsign); err != nil {
		return Entry{}, false, err
	}
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}

	reg, err := s.Load()
	if err != nil {
		return Entry{}, false, err
	}

	entry := NewEntry(callsign, qrzLink, now)
	if existing, ok := reg.Find(entry.ID); ok {
		s.logger.Debug("Callsign already registered, skipping", "callsign", entry.Name, "file", s.Path)
		s.hooks.OnSkipped(ctx, existing.ID)
		return existing, false, nil
	}

	reg.Add(entry)
	if err := s.Save(reg); err != nil {
		return Entry{}, false, err
	}
	s.logger.Debug("Registered callsign", "callsign", entry.Name, "file", s.Path)

	backgrounds := filepath.Join(s.CardDir(entry.ID), "backgrounds")
	if err := os.MkdirAll(backgrounds, 0755); err != nil {
		return entry, true, errors.Wrap(errors.ErrCodeIO, err, "create %s", backgrounds)
	}
	s.logger.Debug("Created directory", "path", backgrounds)

	s.hooks.OnRegistered(ctx, entry.ID)
	return entry, true, nil
}

// Lookup returns the entry for id, compared case-insensitively.
func (s *Store) Lookup(id string) (Entry, bool, error) {
	reg, err := s.Load()
	if err != nil {
		return Entry{}, false, err
	}
	e, ok := reg.Find(id)
	return e, ok, nil
}

// List returns all entries in file order.
func (s *Store) List() ([]Entry, error) {
	reg, err := s.Load()
	if err != nil {
		return nil, err
	}
	return reg.Callsigns, nil
}
