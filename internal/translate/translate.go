package translate

import (
	"regexp"
	"strconv"
	"time"

	"github.com/nikmy/timebot/internal/zones"
	"github.com/nikmy/timebot/pkg/errors"
)

const Layout = "15:04"

var ErrInvalidTimeFormat = errors.New("invalid time format")

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

type Target struct {
	Label string
	Zone  string
}

type Result struct {
	Label string
	Time  string
}

type Option func(*Translator)

func WithClock(c Clock) Option {
	return func(t *Translator) {
		t.clock = c
	}
}

func New(opts ...Option) *Translator {
	t := &Translator{clock: systemClock{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type Translator struct {
	clock Clock
}

// ParseClock accepts "H:mm" and "HH:mm" with hour in [0, 23] and minute in [0, 59].
func ParseClock(s string) (hour int, minute int, err error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, errors.Wrapf(ErrInvalidTimeFormat, "%q", s)
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, errors.Wrapf(ErrInvalidTimeFormat, "%q out of range", s)
	}

	return hour, minute, nil
}

// Instant places the wall clock sourceTime on the current date of sourceZone.
func (t *Translator) Instant(sourceTime string, sourceZone string) (time.Time, error) {
	hour, minute, err := ParseClock(sourceTime)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := zones.Load(sourceZone)
	if err != nil {
		return time.Time{}, errors.WrapFail(err, "resolve source zone")
	}

	today := t.clock.Now().In(loc)
	return time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, loc), nil
}

// Translate converts sourceTime in sourceZone into every target zone.
// Results follow targets order, duplicates included.
func (t *Translator) Translate(sourceTime string, sourceZone string, targets []Target) ([]Result, error) {
	at, err := t.Instant(sourceTime, sourceZone)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		loc, err := zones.Load(target.Zone)
		if err != nil {
			return nil, errors.WrapFailf(err, "resolve zone of %s", target.Label)
		}

		results = append(results, Result{
			Label: target.Label,
			Time:  at.In(loc).Format(Layout),
		})
	}

	return results, nil
}
