package telegram

import (
	"context"

	"gopkg.in/telebot.v3"

	"github.com/nikmy/timebot/internal/commands"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

func New(
	log logger.Logger,
	conf Config,
	handler commands.Handler,
	usage string,
) (*Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		Token:   conf.Token,
		Updates: 256,
		Poller: &telebot.LongPoller{
			Timeout: conf.PollInterval,
		},
	})
	if err != nil {
		return nil, errors.WrapFail(err, "create telebot")
	}

	return &Bot{
		bot:     b,
		handler: handler,
		usage:   usage,
		log:     log.With("telegram"),
	}, nil
}

type Bot struct {
	bot *telebot.Bot
	ctx context.Context

	handler commands.Handler
	usage   string

	log logger.Logger
}

func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.setupHandlers()
	go b.bot.Start()
	return nil
}

func (b *Bot) Stop() {
	b.bot.Stop()
}
