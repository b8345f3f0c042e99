package commands

import (
	"context"
)

const (
	Time           = "time"
	ListLocations  = "list-locations"
	AddLocation    = "add-location"
	DeleteLocation = "delete-location"
	SetTimezone    = "settz"
)

// Command is a slash command as delivered by a chat platform.
// Name has no leading slash.
type Command struct {
	Name      string
	Text      string
	UserID    string
	UserName  string
	ChannelID string
}

// Responder is the way back to the platform the command came from.
type Responder interface {
	// Ack confirms reception; it is called before anything else.
	Ack(ctx context.Context) error
	// Reply answers the requester only.
	Reply(ctx context.Context, text string) error
	// Post publishes into a channel.
	Post(ctx context.Context, channelID string, text string) error
}

// Handler executes commands. The returned error has already been
// reported to the requester and is meant for logs and metrics only.
type Handler interface {
	Handle(ctx context.Context, cmd Command, r Responder) error
}
