package users

import (
	"context"

	"github.com/nikmy/timebot/pkg/errors"
)

var (
	ErrTimezoneUnknown = errors.New("user timezone unknown")
	ErrUpstream        = errors.New("user directory unavailable")
)

// Directory tells the timezone a chat user has configured.
// Unset zones are reported with ErrTimezoneUnknown, failures of
// the underlying platform or storage with ErrUpstream.
type Directory interface {
	Timezone(ctx context.Context, userID string) (string, error)
}

type API interface {
	Directory

	SetTimezone(ctx context.Context, userID string, zone string) error

	Close(ctx context.Context) error
}
