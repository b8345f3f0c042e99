package telegram

import (
	"context"
	"strconv"
	"strings"

	"gopkg.in/telebot.v3"

	"github.com/nikmy/timebot/pkg/errors"
)

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// EscapeMarkdown makes s render literally in a Markdown message.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

type responder struct {
	c telebot.Context
}

// Ack shows the "typing" status while the command runs.
func (r *responder) Ack(_ context.Context) error {
	return errors.WrapFail(r.c.Notify(telebot.Typing), "notify typing")
}

func (r *responder) Reply(_ context.Context, text string) error {
	err := r.c.Send(text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	return errors.WrapFail(err, "send reply")
}

func (r *responder) Post(_ context.Context, channelID string, text string) error {
	id, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return errors.WrapFailf(err, "parse chat id %q", channelID)
	}

	opts := &telebot.SendOptions{ParseMode: telebot.ModeMarkdown}
	if chat := r.c.Chat(); chat != nil && chat.ID == id {
		return errors.WrapFail(r.c.Send(text, opts), "send to chat")
	}

	_, err = r.c.Bot().Send(&telebot.Chat{ID: id}, text, opts)
	return errors.WrapFailf(err, "send to chat %d", id)
}
