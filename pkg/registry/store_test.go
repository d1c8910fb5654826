package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qslcard/pkg/errors"
	"github.com/matzehuels/qslcard/pkg/observability"
)

type recordingHooks struct {
	registered []string
	skipped    []string
}

func (h *recordingHooks) OnRegistered(_ context.Context, id string) { h.registered = append(h.registered, id) }
func (h *recordingHooks) OnSkipped(_ context.Context, id string)    { h.skipped = append(h.skipped, id) }

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{
		WithLogger(log.New(&bytes.Buffer{})),
		WithHooks(observability.NoopRegistryHooks{}),
	}, opts...)
	return NewStore(filepath.Join(t.TempDir(), "data"), opts...)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	reg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reg.Callsigns) != 0 {
		t.Errorf("Callsigns = %v, want empty", reg.Callsigns)
	}
	if _, err := os.Stat(filepath.Dir(s.Path)); !os.IsNotExist(err) {
		t.Error("Load should not create the data directory")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); !errors.Is(err, errors.ErrCodeInvalidRegistry) {
		t.Errorf("Load err = %v, want INVALID_REGISTRY", err)
	}
}

func TestRegisterDefaultEntry(t *testing.T) {
	hooks := &recordingHooks{}
	s := newTestStore(t, WithHooks(hooks))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	e, added, err := s.Register(context.Background(), "OE8KKS", "https://www.qrz.com/db/OE8KKS", now)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !added {
		t.Fatal("first registration should add an entry")
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatalf("read registry: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("}\n")) {
		t.Error("registry file should end with a newline")
	}
	if !bytes.Contains(data, []byte("\n  \"callsigns\": [")) {
		t.Errorf("registry should use two-space indentation:\n%s", data)
	}

	var doc struct {
		Callsigns []struct {
			ID            string                    `json:"id"`
			Name          string                    `json:"name"`
			QRZLink       string                    `json:"qrzLink"`
			TextPositions map[string]map[string]int `json:"textPositions"`
			CreatedAt     string                    `json:"createdAt"`
		} `json:"callsigns"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Callsigns) != 1 {
		t.Fatalf("entries = %d, want 1", len(doc.Callsigns))
	}
	got := doc.Callsigns[0]
	if got.ID != "oe8kks" || got.Name != "OE8KKS" || got.QRZLink != "https://www.qrz.com/db/OE8KKS" {
		t.Errorf("entry = %+v", got)
	}
	if got.CreatedAt != "2024-05-01T12:00:00.000000Z" || e.CreatedAt != got.CreatedAt {
		t.Errorf("createdAt = %q", got.CreatedAt)
	}

	wantPositions := map[string][2]int{
		"callsign":    {3368, 2026},
		"utcDateTime": {2623, 2499},
		"frequency":   {3398, 2499},
		"mode":        {3906, 2499},
		"rst":         {4353, 2499},
		"additional":  {2027, 2760},
	}
	if len(got.TextPositions) != len(wantPositions) {
		t.Errorf("textPositions has %d fields, want %d", len(got.TextPositions), len(wantPositions))
	}
	for field, xy := range wantPositions {
		p := got.TextPositions[field]
		if p["x"] != xy[0] || p["y"] != xy[1] {
			t.Errorf("textPositions.%s = %v, want x=%d y=%d", field, p, xy[0], xy[1])
		}
	}

	if info, err := os.Stat(filepath.Join(s.CardsDir, "oe8kks", "backgrounds")); err != nil || !info.IsDir() {
		t.Errorf("backgrounds directory not created: %v", err)
	}
	if len(hooks.registered) != 1 || hooks.registered[0] != "oe8kks" {
		t.Errorf("OnRegistered calls = %v", hooks.registered)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	hooks := &recordingHooks{}
	s := newTestStore(t, WithHooks(hooks))
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if _, _, err := s.Register(ctx, "oe8kks", "a", first); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}

	for _, callsign := range []string{"oe8kks", "OE8KKS", "Oe8kkS"} {
		e, added, err := s.Register(ctx, callsign, "b", first.Add(time.Hour))
		if err != nil {
			t.Fatalf("Register(%q): %v", callsign, err)
		}
		if added {
			t.Errorf("Register(%q) added a duplicate", callsign)
		}
		if e.CreatedAt != "2024-05-01T12:00:00.000000Z" || e.QRZLink != "a" {
			t.Errorf("Register(%q) returned %+v, want the existing entry", callsign, e)
		}
	}

	after, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("registry changed on duplicate registration:\n%s\n---\n%s", before, after)
	}
	if len(hooks.skipped) != 3 {
		t.Errorf("OnSkipped calls = %v, want 3", hooks.skipped)
	}
}

func TestRegisterSkipDoesNotCreateDirectories(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		t.Fatal(err)
	}
	existing := `{"callsigns": [{"id": "OE8KKS", "name": "OE8KKS", "qrzLink": "", "createdAt": "2020-01-01T00:00:00Z"}]}`
	if err := os.WriteFile(s.Path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	if _, added, err := s.Register(context.Background(), "oe8kks", "", time.Now()); err != nil || added {
		t.Fatalf("Register = %v, %v; want skip", added, err)
	}
	if _, err := os.Stat(s.CardsDir); !os.IsNotExist(err) {
		t.Error("skipped registration should not create card directories")
	}
	data, _ := os.ReadFile(s.Path)
	if string(data) != existing {
		t.Error("skipped registration rewrote the registry")
	}
}

func TestRegisterKeepsExistingEntries(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		t.Fatal(err)
	}
	existing := `{"callsigns": [{"id": "dl1abc", "name": "DL1ABC", "qrzLink": "x", "createdAt": "2020-01-01T00:00:00Z", "custom": true}], "meta": {"owner": "club"}}`
	if err := os.WriteFile(s.Path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	if _, added, err := s.Register(context.Background(), "oe8kks", "y", time.Now()); err != nil || !added {
		t.Fatalf("Register = %v, %v", added, err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].ID != "dl1abc" || entries[1].ID != "oe8kks" {
		t.Fatalf("entries = %+v", entries)
	}
	data, _ := os.ReadFile(s.Path)
	for _, want := range []string{`"custom": true`, `"owner": "club"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("registry lost %s:\n%s", want, data)
		}
	}
}

func TestRegisterInvalidCallsign(t *testing.T) {
	s := newTestStore(t)
	for _, callsign := range []string{"", "../x", "oe8kks/p", "a b"} {
		if _, _, err := s.Register(context.Background(), callsign, "", time.Now()); !errors.Is(err, errors.ErrCodeInvalidCallsign) {
			t.Errorf("Register(%q) err = %v, want INVALID_CALLSIGN", callsign, err)
		}
	}
	if _, err := os.Stat(s.Path); !os.IsNotExist(err) {
		t.Error("invalid registrations should not write the registry")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	reg := &Registry{}
	reg.Add(NewEntry("oe8kks", "x", time.Now()))
	if err := s.Save(reg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(reg); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	files, err := os.ReadDir(filepath.Dir(s.Path))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name() != FileName {
		var names []string
		for _, f := range files {
			names = append(names, f.Name())
		}
		t.Errorf("data dir contains %v, want only %s", names, FileName)
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("registry mode = %v, want 0644", perm)
	}
}

func TestLookup(t *testing.T) {
	s := newTestStore(t)
	if _, ok, err := s.Lookup("oe8kks"); err != nil || ok {
		t.Fatalf("Lookup on empty registry = %v, %v", ok, err)
	}
	if _, _, err := s.Register(context.Background(), "OE8KKS", "x", time.Now()); err != nil {
		t.Fatal(err)
	}
	e, ok, err := s.Lookup("oE8kKs")
	if err != nil || !ok || e.Name != "OE8KKS" {
		t.Errorf("Lookup = %+v, %v, %v", e, ok, err)
	}
}

func TestRegisterCanceled(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := s.Register(ctx, "oe8kks", "", time.Now()); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
