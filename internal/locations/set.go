package locations

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/nikmy/timebot/internal/translate"
	"github.com/nikmy/timebot/pkg/errors"
)

type Location struct {
	Label string `json:"label" bson:"label" yaml:"label"`
	Zone  string `json:"zone"  bson:"zone"  yaml:"zone"`
}

// Set is an ordered label -> zone mapping. Order is the order
// in which labels were first added and is kept on overwrite.
type Set []Location

// SanitizeLabel keeps only Unicode letters of raw (after NFC normalization).
func SanitizeLabel(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, norm.NFC.String(raw))
}

func (s Set) Index(label string) int {
	for i, l := range s {
		if l.Label == label {
			return i
		}
	}
	return -1
}

func (s Set) Zone(label string) (string, bool) {
	i := s.Index(label)
	if i < 0 {
		return "", false
	}
	return s[i].Zone, true
}

func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	return append(Set(nil), s...)
}

// With returns a copy of s where label maps to zone.
func (s Set) With(label string, zone string) Set {
	c := s.Clone()
	if i := c.Index(label); i >= 0 {
		c[i].Zone = zone
		return c
	}
	return append(c, Location{Label: label, Zone: zone})
}

// Without returns a copy of s without label and reports whether it was there.
func (s Set) Without(label string) (Set, bool) {
	i := s.Index(label)
	if i < 0 {
		return s.Clone(), false
	}

	c := make(Set, 0, len(s)-1)
	c = append(c, s[:i]...)
	return append(c, s[i+1:]...), true
}

func (s Set) Targets() []translate.Target {
	targets := make([]translate.Target, 0, len(s))
	for _, l := range s {
		targets = append(targets, translate.Target{Label: l.Label, Zone: l.Zone})
	}
	return targets
}

// MarshalJSON writes s as a JSON object keeping the order of labels.
func (s Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, l := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(l.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(l.Zone)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (s *Set) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return errors.WrapFail(err, "read location set")
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("location set must be a json object, got %v", tok)
	}

	set := Set{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return errors.WrapFail(err, "read label")
		}
		label, _ := tok.(string)

		var zone string
		err = dec.Decode(&zone)
		if err != nil {
			return errors.WrapFailf(err, "read zone of %q", label)
		}

		set = set.With(label, zone)
	}

	_, err = dec.Token()
	if err != nil {
		return errors.WrapFail(err, "read end of location set")
	}

	*s = set
	return nil
}
