package zones

import (
	"strings"
	"time"
	_ "time/tzdata"
	"unicode"

	"github.com/nikmy/timebot/pkg/errors"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// IsValid reports whether id names a zone of the IANA database.
func IsValid(id string) bool {
	_, err := Load(id)
	return err == nil
}

// Load resolves id into a location. The empty id and "Local" are
// rejected because they depend on the host rather than on the database.
func Load(id string) (*time.Location, error) {
	if id == "" || id == "Local" {
		return nil, errors.Wrapf(ErrInvalidTimezone, "%q", id)
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, errors.Mark(errors.WrapFailf(err, "load location %q", id), ErrInvalidTimezone)
	}

	return loc, nil
}

// Canonical resolves id ignoring letter case and returns the database
// spelling, e.g. "america/new_york" gives "America/New_York". It tries
// id as is, then title case per word, then upper case ("utc").
// Mixed-case words such as "Port-au-Prince" only match as is.
func Canonical(id string) (string, error) {
	var firstErr error
	for _, candidate := range []string{id, titleCase(id), strings.ToUpper(id)} {
		loc, err := Load(candidate)
		if err == nil {
			return loc.String(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

func titleCase(id string) string {
	prev := '/'
	return strings.Map(func(r rune) rune {
		wordStart := !unicode.IsLetter(prev)
		prev = r
		if wordStart {
			return unicode.ToUpper(r)
		}
		return unicode.ToLower(r)
	}, id)
}
