package card

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// QRZBaseURL is the prefix of the default QRZ.com profile link.
const QRZBaseURL = "https://www.qrz.com/db/"

// Config is a per-callsign card configuration.
//
// Only Callsign is required. Optional blocks (Logo, Signature, QR) are nil
// when absent from the file.
type Config struct {
	Callsign         string     `json:"callsign" toml:"callsign"`
	CallsignColor    string     `json:"callsignColor,omitempty" toml:"callsignColor"`
	Operator         Operator   `json:"operator" toml:"operator"`
	Logo             *Logo      `json:"logo,omitempty" toml:"logo"`
	Signature        *Signature `json:"signature,omitempty" toml:"signature"`
	QRZLink          string     `json:"qrzLink,omitempty" toml:"qrzLink"`
	RegisterCallsign *bool      `json:"registerCallsign,omitempty" toml:"registerCallsign"`
	QR               *QRCode    `json:"qr,omitempty" toml:"qr"`
}

// Operator holds the contact details printed in the operator panel.
type Operator struct {
	Name    string   `json:"name,omitempty" toml:"name"`
	Address []string `json:"address,omitempty" toml:"address"`
	Email   string   `json:"email,omitempty" toml:"email"`
}

// Logo points at an image drawn as a circle in the top left corner.
// Relative paths are resolved against the project root.
type Logo struct {
	File string `json:"file,omitempty" toml:"file"`
	Size int    `json:"size,omitempty" toml:"size"`
}

// Signature is text drawn in a script-like font in the signature box.
type Signature struct {
	Text  string `json:"text,omitempty" toml:"text"`
	Color string `json:"color,omitempty" toml:"color"`
}

// QRCode enables a QR code linking to the QRZ profile. X and Y override the
// layout position when set.
type QRCode struct {
	Size int  `json:"size,omitempty" toml:"size"`
	X    *int `json:"x,omitempty" toml:"x"`
	Y    *int `json:"y,omitempty" toml:"y"`
}

// Format is a config file encoding.
type Format string

// Supported config formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format by file extension; anything but .toml is JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	cfg, err := ParseConfig(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a config.
func ParseConfig(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json")
		}
		if err := cfg.nullRegisterIsFalse(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required keys, the callsign, colors and sizes. The QRZ
// link is free-form and printed as given.
func (c *Config) Validate() error {
	if c.Callsign == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "missing required key %q", "callsign")
	}
	if err := errors.ValidateCallsign(c.Callsign); err != nil {
		return err
	}
	if c.CallsignColor != "" {
		if _, err := ParseHexColor(c.CallsignColor); err != nil {
			return err
		}
	}
	if c.Signature != nil && c.Signature.Color != "" {
		if _, err := ParseHexColor(c.Signature.Color); err != nil {
			return err
		}
	}
	if c.Logo != nil && c.Logo.Size < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "logo size must be positive, got %d", c.Logo.Size)
	}
	if c.QR != nil && c.QR.Size < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "qr size must be positive, got %d", c.QR.Size)
	}
	return nil
}

// ID returns the lowercased callsign used as registry key and directory name.
func (c *Config) ID() string {
	return strings.ToLower(c.Callsign)
}

// DisplayCallsign returns the uppercased callsign printed on the card.
func (c *Config) DisplayCallsign() string {
	return strings.ToUpper(c.Callsign)
}

// Link returns the configured QRZ link or the QRZ.com profile of the callsign.
func (c *Config) Link() string {
	if c.QRZLink != "" {
		return c.QRZLink
	}
	return QRZBaseURL + c.DisplayCallsign()
}

// nullRegisterIsFalse turns an explicit "registerCallsign": null into false.
// Only an absent key enables registration by default.
func (c *Config) nullRegisterIsFalse(data []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode json")
	}
	if raw, ok := keys["registerCallsign"]; ok && string(raw) == "null" {
		c.RegisterCallsign = new(bool)
	}
	return nil
}

// Register reports whether the callsign should be added to the registry.
// It defaults to true when the key is absent; an explicit null disables it.
func (c *Config) Register() bool {
	return c.RegisterCallsign == nil || *c.RegisterCallsign
}
