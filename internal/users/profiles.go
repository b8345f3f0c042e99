package users

import (
	"context"

	"github.com/nikmy/timebot/internal/repo"
	"github.com/nikmy/timebot/internal/zones"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

const source = "profiles"

type Profile struct {
	UserID   string `json:"user_id"  bson:"user_id"`
	Timezone string `json:"timezone" bson:"timezone"`
}

func New(ctx context.Context, log logger.Logger, cfg repo.Config) (API, error) {
	db, err := repo.New[Profile](ctx, cfg, source, log)
	if err != nil {
		return nil, errors.WrapFail(err, "init profiles repo")
	}

	return NewProfiles(db), nil
}

func NewProfiles(db repo.Repo[Profile]) *Profiles {
	return &Profiles{repo: db}
}

// Profiles keeps zones for platforms that do not expose one.
type Profiles struct {
	repo repo.Repo[Profile]
}

func (p *Profiles) Timezone(ctx context.Context, userID string) (string, error) {
	profile, err := p.repo.Get(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", errors.Wrapf(ErrTimezoneUnknown, "user %s", userID)
	}
	if err != nil {
		return "", errors.Mark(errors.WrapFailf(err, "get profile of %s", userID), ErrUpstream)
	}

	if profile.Timezone == "" {
		return "", errors.Wrapf(ErrTimezoneUnknown, "user %s", userID)
	}

	return profile.Timezone, nil
}

func (p *Profiles) SetTimezone(ctx context.Context, userID string, rawZone string) error {
	zone, err := zones.Canonical(rawZone)
	if err != nil {
		return errors.Wrapf(zones.ErrInvalidTimezone, "%q", rawZone)
	}

	err = p.repo.Put(ctx, userID, Profile{UserID: userID, Timezone: zone})
	return errors.Mark(errors.WrapFailf(err, "save profile of %s", userID), ErrUpstream)
}

func (p *Profiles) Close(ctx context.Context) error {
	return errors.WrapFail(p.repo.Close(ctx), "close profiles repo")
}
