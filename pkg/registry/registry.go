// Package registry maintains data/callsigns.json, the list of callsigns the
// card service knows about, together with the pixel positions where it
// overlays QSO details onto each card.
//
// The file is shared with other tools. Entries and top-level keys this
// package does not know are written back unchanged.
package registry

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/qslcard/pkg/errors"
)

// TimeFormat is the layout of Entry.CreatedAt: UTC with microseconds and a
// trailing Z.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// Position is a pixel coordinate on the card.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TextPositions maps each QSO field to where the card service draws it.
type TextPositions struct {
	Callsign    Position `json:"callsign"`
	UTCDateTime Position `json:"utcDateTime"`
	Frequency   Position `json:"frequency"`
	Mode        Position `json:"mode"`
	RST         Position `json:"rst"`
	Additional  Position `json:"additional"`
}

// DefaultTextPositions returns the overlay positions matching the QSO
// section boxes. Every new entry gets this set.
func DefaultTextPositions() TextPositions {
	return TextPositions{
		Callsign:    Position{X: 3368, Y: 2026},
		UTCDateTime: Position{X: 2623, Y: 2499},
		Frequency:   Position{X: 3398, Y: 2499},
		Mode:        Position{X: 3906, Y: 2499},
		RST:         Position{X: 4353, Y: 2499},
		Additional:  Position{X: 2027, Y: 2760},
	}
}

// Entry is one registered callsign.
type Entry struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	QRZLink       string        `json:"qrzLink"`
	TextPositions TextPositions `json:"textPositions"`
	CreatedAt     string        `json:"createdAt"`

	// raw holds the entry as read from disk. Loaded entries are written
	// back exactly as read, so field changes to them are not persisted.
	raw json.RawMessage
}

// NewEntry creates an entry for callsign with the default text positions.
func NewEntry(callsign, qrzLink string, now time.Time) Entry {
	return Entry{
		ID:            strings.ToLower(callsign),
		Name:          strings.ToUpper(callsign),
		QRZLink:       qrzLink,
		TextPositions: DefaultTextPositions(),
		CreatedAt:     now.UTC().Format(TimeFormat),
	}
}

// Created parses CreatedAt. Entries written by other tools may use any
// RFC 3339 variant.
func (e Entry) Created() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, e.CreatedAt)
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entry(p)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	type plain Entry
	return json.Marshal(plain(e))
}

// Registry is the decoded callsigns.json document.
type Registry struct {
	Callsigns []Entry

	// extra holds top-level keys other than "callsigns".
	extra map[string]json.RawMessage
}

// Find returns the entry whose id matches id case-insensitively.
func (r *Registry) Find(id string) (Entry, bool) {
	for _, e := range r.Callsigns {
		if strings.EqualFold(e.ID, id) {
			return e, true
		}
	}
	return Entry{}, false
}

// Add appends e. It does not check for duplicates; see Store.Register.
func (r *Registry) Add(e Entry) {
	r.Callsigns = append(r.Callsigns, e)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidRegistry, "registry must be a JSON object")
	}

	var entries []Entry
	if raw, ok := doc["callsigns"]; ok {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return err
		}
		delete(doc, "callsigns")
	}
	for i, e := range entries {
		if e.ID == "" {
			return errors.New(errors.ErrCodeInvalidRegistry, "entry %d has no id", i)
		}
	}

	r.Callsigns = entries
	r.extra = doc
	return nil
}

// MarshalJSON implements json.Marshaler. "callsigns" comes first, followed
// by any other keys in sorted order.
func (r *Registry) MarshalJSON() ([]byte, error) {
	entries := r.Callsigns
	if entries == nil {
		entries = []Entry{}
	}
	list, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"callsigns":`)
	buf.Write(list)

	for _, k := range slices.Sorted(maps.Keys(r.extra)) {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(r.extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
