package slack

import (
	"context"
	"strings"

	slackapi "github.com/slack-go/slack"

	"github.com/nikmy/timebot/internal/users"
	"github.com/nikmy/timebot/pkg/errors"
)

type webAPI interface {
	GetUserInfoContext(ctx context.Context, user string) (*slackapi.User, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

const responseEphemeral = "ephemeral"

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText keeps s from being read as a Slack link or mention.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

type webhookFunc func(ctx context.Context, url string, msg *slackapi.WebhookMessage) error

func NewClient(cfg Config) *slackapi.Client {
	var opts []slackapi.Option
	if cfg.APIURL != "" {
		opts = append(opts, slackapi.OptionAPIURL(cfg.APIURL))
	}
	return slackapi.New(cfg.Token, opts...)
}

// NewDirectory reads user zones from Slack profiles (users.info).
func NewDirectory(api webAPI) users.Directory {
	return &directory{api: api}
}

type directory struct {
	api webAPI
}

func (d *directory) Timezone(ctx context.Context, userID string) (string, error) {
	user, err := d.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", errors.Mark(errors.WrapFailf(err, "get info of user %s", userID), users.ErrUpstream)
	}

	if user == nil || user.TZ == "" {
		return "", errors.Wrapf(users.ErrTimezoneUnknown, "user %s", userID)
	}

	return user.TZ, nil
}

// responder answers through the response_url of a slash command
// and posts into channels with chat.postMessage.
type responder struct {
	api         webAPI
	postWebhook webhookFunc
	responseURL string
}

// Ack does nothing: the HTTP response to the slash command request
// has already acknowledged it.
func (r *responder) Ack(context.Context) error {
	return nil
}

func (r *responder) Reply(ctx context.Context, text string) error {
	if r.responseURL == "" {
		return errors.Error("slash command has no response_url")
	}

	err := r.postWebhook(ctx, r.responseURL, &slackapi.WebhookMessage{
		Text:         text,
		ResponseType: responseEphemeral,
	})
	return errors.WrapFail(err, "post to response_url")
}

func (r *responder) Post(ctx context.Context, channelID string, text string) error {
	_, _, err := r.api.PostMessageContext(ctx, channelID, slackapi.MsgOptionText(text, false))
	return errors.WrapFailf(err, "post message to %s", channelID)
}
