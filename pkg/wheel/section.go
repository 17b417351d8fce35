package wheel

import (
	"encoding/json"
	"fmt"
	"math"
)

// BackValue is the sentinel selection value emitted for the back/cancel section
const BackValue = -1

// defaultKeys is the positional shortcut sequence assigned to sections
// that do not bring their own key. Indices past the end of the sequence
// get no default key, which makes them mouse/tab-only.
const defaultKeys = "1234567890abcdefghijklmnopqrstuvwxyz"

// CapacityMode controls how the effective section count is derived
type CapacityMode int

const (
	// Dynamic sizes the wheel to the supplied list plus the back section
	Dynamic CapacityMode = iota
	// Fixed keeps a constant section count; unfilled slots render as
	// disabled blank sections
	Fixed
)

// Config holds the immutable wheel configuration, set once at construction
type Config struct {
	Mode     CapacityMode
	Sections int  // selectable slot count in Fixed mode (back section excluded)
	AutoLock bool // re-lock the wheel after every selection
}

// Validate checks that the configuration is complete
func (c Config) Validate() error {
	if c.Mode == Fixed && c.Sections < 1 {
		return &ConfigurationError{Reason: "fixed capacity mode requires a positive section count"}
	}
	return nil
}

// capacity returns the effective section count for a list of the given
// length, including the implicit back section.
func (c Config) capacity(listLen int) int {
	if c.Mode == Fixed {
		return c.Sections + 1
	}
	return listLen + 1
}

// Section is one normalized selectable option on the wheel
type Section struct {
	Value any    // opaque payload, returned verbatim on selection
	Text  string // display label and accessible name
	Key   string // single-character shortcut; empty means no shortcut
	Image string // optional icon path or URL
}

// Model is the validated, immutable section list together with the
// effective section count. It is replaced wholesale on every update,
// never mutated in place.
type Model struct {
	Sections []Section
	Count    int // effective section count, back section included
}

// BackIndex returns the index of the implicit back/cancel section
func (m *Model) BackIndex() int {
	return m.Count - 1
}

// IsBlank reports whether index i is a fixed-capacity filler slot with
// no backing section. The back section is never blank.
func (m *Model) IsBlank(i int) bool {
	return i != m.BackIndex() && i >= len(m.Sections)
}

// IsSelectable reports whether index i can produce a selection outcome.
// Blank slots and sections with an explicitly empty key are rejected.
func (m *Model) IsSelectable(i int) bool {
	if i == m.BackIndex() {
		return true
	}
	if i < 0 || i >= len(m.Sections) {
		return false
	}
	return m.Sections[i].Key != ""
}

// IndexForKey returns the index of the first section bound to the given
// shortcut character, or -1 if none matches.
func (m *Model) IndexForKey(key string) int {
	if key == "" {
		return -1
	}
	for i, s := range m.Sections {
		if s.Key == key {
			return i
		}
	}
	return -1
}

// Normalize validates the caller-supplied list against the configuration
// and returns an immutable Model. Normalization is all-or-nothing: any
// malformed entry aborts the whole update.
func Normalize(raw []SectionData, cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Reason: "section list is empty"}
	}
	if cfg.Mode == Fixed && len(raw) > cfg.Sections {
		return nil, &CapacityError{Count: len(raw), Capacity: cfg.Sections}
	}

	sections := make([]Section, len(raw))
	for i, item := range raw {
		s, err := item.normalize(i)
		if err != nil {
			return nil, err
		}
		sections[i] = s
	}

	return &Model{
		Sections: sections,
		Count:    cfg.capacity(len(sections)),
	}, nil
}

// SectionData is a caller-supplied section before validation. A nil Key
// means "assign the positional default"; a pointer to the empty string
// means "no shortcut at all".
type SectionData struct {
	Value any     `json:"value"`
	Text  string  `json:"text"`
	Key   *string `json:"key,omitempty"`
	Image *string `json:"image,omitempty"`
}

func (d SectionData) normalize(index int) (Section, error) {
	if d.Text == "" {
		return Section{}, &ValidationError{Reason: fmt.Sprintf("section %d is missing text", index)}
	}
	if d.Value == nil {
		return Section{}, &ValidationError{Reason: fmt.Sprintf("section %d is missing a value", index)}
	}

	key := defaultKey(index)
	if d.Key != nil {
		if n := len([]rune(*d.Key)); n > 1 {
			return Section{}, &ValidationError{Reason: fmt.Sprintf("section %d key %q is not a single character", index, *d.Key)}
		}
		key = *d.Key
	}

	image := ""
	if d.Image != nil {
		image = *d.Image
	}

	return Section{
		Value: d.Value,
		Text:  d.Text,
		Key:   key,
		Image: image,
	}, nil
}

// defaultKey returns the positional shortcut for a section index, or the
// empty string when the index is past the end of the sequence.
func defaultKey(index int) string {
	keys := []rune(defaultKeys)
	if index < 0 || index >= len(keys) {
		return ""
	}
	return string(keys[index])
}

// ParseSections decodes a JSON section list, checking field types the
// same way Normalize does for programmatic input.
func ParseSections(data []byte) ([]SectionData, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("malformed section JSON: %v", err)}
	}

	sections := make([]SectionData, len(entries))
	for i, entry := range entries {
		var s SectionData

		raw, ok := entry["text"]
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("section %d is missing text", i)}
		}
		if err := json.Unmarshal(raw, &s.Text); err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("section %d text is not a string", i)}
		}

		raw, ok = entry["value"]
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("section %d is missing a value", i)}
		}
		if err := json.Unmarshal(raw, &s.Value); err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("section %d value is malformed", i)}
		}

		if raw, ok = entry["key"]; ok {
			var key string
			if err := json.Unmarshal(raw, &key); err != nil {
				return nil, &ValidationError{Reason: fmt.Sprintf("section %d key is not a string", i)}
			}
			s.Key = &key
		}

		if raw, ok = entry["image"]; ok {
			var image string
			if err := json.Unmarshal(raw, &image); err != nil {
				return nil, &ValidationError{Reason: fmt.Sprintf("section %d image is not a string", i)}
			}
			s.Image = &image
		}

		sections[i] = s
	}

	return sections, nil
}

// Constants are the count-derived layout values, recomputed whenever the
// effective section count changes.
type Constants struct {
	AngleStep   float64 // radians per section
	AngleOffset float64 // rotation of section 0, radians
	LabelRadius float64 // key-label placement radius in wheel space
}

// DeriveConstants computes the layout constants for a section count.
// The label radius grows mildly as the count diverges from six.
func DeriveConstants(sectionCount int) Constants {
	step := 2 * math.Pi / float64(sectionCount)
	return Constants{
		AngleStep:   step,
		AngleOffset: math.Pi + step/2,
		LabelRadius: 0.25 + math.Abs(0.1*float64(sectionCount-6)/20),
	}
}
