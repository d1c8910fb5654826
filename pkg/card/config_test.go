package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/qslcard/pkg/errors"
)

func TestParseConfigJSON(t *testing.T) {
	data := []byte(`{
		"callsign": "oe8kks",
		"callsignColor": "#0000FF",
		"operator": {
			"name": "Test Operator",
			"address": ["Street 1", "1234 City"],
			"email": "op@example.com"
		},
		"logo": {"file": "logos/oe8kks.png", "size": 700},
		"signature": {"text": "73 de OE8KKS"}
	}`)

	cfg, err := ParseConfig(data, FormatJSON)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ID() != "oe8kks" {
		t.Errorf("ID() = %q, want %q", cfg.ID(), "oe8kks")
	}
	if cfg.DisplayCallsign() != "OE8KKS" {
		t.Errorf("DisplayCallsign() = %q, want %q", cfg.DisplayCallsign(), "OE8KKS")
	}
	if len(cfg.Operator.Address) != 2 {
		t.Errorf("address lines = %d, want 2", len(cfg.Operator.Address))
	}
	if cfg.Logo == nil || cfg.Logo.Size != 700 {
		t.Errorf("logo = %+v, want size 700", cfg.Logo)
	}
	if cfg.Signature == nil || cfg.Signature.Text != "73 de OE8KKS" {
		t.Errorf("signature = %+v", cfg.Signature)
	}
	if cfg.QR != nil {
		t.Error("QR should be nil when not configured")
	}
}

func TestParseConfigTOML(t *testing.T) {
	data := []byte(`
callsign = "DL1ABC"
registerCallsign = false

[operator]
name = "Erika"
address = ["Hauptstr. 5"]

[qr]
size = 300
x = 100
`)

	cfg, err := ParseConfig(data, FormatTOML)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Callsign != "DL1ABC" {
		t.Errorf("Callsign = %q", cfg.Callsign)
	}
	if cfg.Register() {
		t.Error("Register() = true, want false")
	}
	if cfg.QR == nil || cfg.QR.Size != 300 || cfg.QR.X == nil || *cfg.QR.X != 100 || cfg.QR.Y != nil {
		t.Errorf("QR = %+v, want size 300 with x override only", cfg.QR)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{"callsign": "oe8kks"}`), FormatJSON)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.Register() {
		t.Error("Register() should default to true")
	}
	if got, want := cfg.Link(), "https://www.qrz.com/db/OE8KKS"; got != want {
		t.Errorf("Link() = %q, want %q", got, want)
	}

	cfg.QRZLink = "https://example.com/oe8kks"
	if got := cfg.Link(); got != cfg.QRZLink {
		t.Errorf("Link() = %q, want configured link", got)
	}
}

func TestRegisterCallsign(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{"absent", `{"callsign": "oe8kks"}`, true},
		{"true", `{"callsign": "oe8kks", "registerCallsign": true}`, true},
		{"false", `{"callsign": "oe8kks", "registerCallsign": false}`, false},
		{"null", `{"callsign": "oe8kks", "registerCallsign": null}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data), FormatJSON)
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			if got := cfg.Register(); got != tt.want {
				t.Errorf("Register() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQRZLinkIsFreeForm(t *testing.T) {
	for _, link := range []string{"ftp://example.com/oe8kks", "see qrz.com", "OE8KKS"} {
		cfg, err := ParseConfig([]byte(`{"callsign": "oe8kks", "qrzLink": "`+link+`"}`), FormatJSON)
		if err != nil {
			t.Fatalf("qrzLink %q: %v", link, err)
		}
		if got := cfg.Link(); got != link {
			t.Errorf("Link() = %q, want %q", got, link)
		}
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"missing callsign", `{"operator": {"name": "x"}}`, errors.ErrCodeInvalidConfig},
		{"empty callsign", `{"callsign": ""}`, errors.ErrCodeInvalidConfig},
		{"malformed json", `{"callsign": `, errors.ErrCodeInvalidConfig},
		{"wrong type", `{"callsign": 42}`, errors.ErrCodeInvalidConfig},
		{"path in callsign", `{"callsign": "../etc"}`, errors.ErrCodeInvalidCallsign},
		{"bad callsign color", `{"callsign": "oe8kks", "callsignColor": "red"}`, errors.ErrCodeInvalidColor},
		{"bad signature color", `{"callsign": "oe8kks", "signature": {"text": "x", "color": "#12"}}`, errors.ErrCodeInvalidColor},
		{"negative logo size", `{"callsign": "oe8kks", "logo": {"file": "a.png", "size": -1}}`, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), FormatJSON)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "oe8kks.json")
		if err := os.WriteFile(path, []byte(`{"callsign": "oe8kks"}`), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.ID() != "oe8kks" {
			t.Errorf("ID() = %q", cfg.ID())
		}
	})

	t.Run("toml by extension", func(t *testing.T) {
		path := filepath.Join(dir, "dl1abc.toml")
		if err := os.WriteFile(path, []byte(`callsign = "dl1abc"`), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.ID() != "dl1abc" {
			t.Errorf("ID() = %q", cfg.ID())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.json"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("err = %v, want FILE_NOT_FOUND", err)
		}
	})

	t.Run("invalid content keeps code", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadConfig(path)
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("err = %v, want INVALID_CONFIG", err)
		}
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":     FormatJSON,
		"a.toml":     FormatTOML,
		"A.TOML":     FormatTOML,
		"a":          FormatJSON,
		"dir/a.yaml": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
