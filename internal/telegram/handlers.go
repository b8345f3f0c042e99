package telegram

import (
	"strconv"
	"strings"

	"github.com/vitaliy-ukiru/fsm-telebot"
	"github.com/vitaliy-ukiru/fsm-telebot/storages/memory"
	"gopkg.in/telebot.v3"

	"github.com/nikmy/timebot/internal/commands"
	"github.com/nikmy/timebot/pkg/errors"
)

var (
	initialState = fsm.DefaultState

	settzReadZoneState fsm.State = "settzReadZone"
)

func (b *Bot) setupHandlers() {
	manager := fsm.NewManager(
		b.bot,
		nil,
		memory.NewStorage(),
		nil,
	)

	manager.Bind("/start", fsm.AnyState, b.start)
	manager.Bind("/help", fsm.AnyState, b.start)
	manager.Bind("/cancel", fsm.AnyState, b.cancel)

	manager.Bind("/time", fsm.AnyState, b.command(commands.Time))
	manager.Bind("/list_locations", fsm.AnyState, b.command(commands.ListLocations))
	manager.Bind("/add_location", fsm.AnyState, b.command(commands.AddLocation))
	manager.Bind("/delete_location", fsm.AnyState, b.command(commands.DeleteLocation))

	manager.Bind("/settz", fsm.AnyState, b.startSetTimezone)
	manager.Bind(telebot.OnText, settzReadZoneState, b.setTimezone)
}

func (b *Bot) setState(s fsm.Context, target fsm.State) {
	err := s.Set(target)
	if err != nil {
		b.log.Warn(errors.WrapFailf(err, "set state to \"%s\"", target))
	}
}

func (b *Bot) start(c telebot.Context, s fsm.Context) error {
	b.setState(s, initialState)
	return c.Send("Доступные команды:\n" + telegramNames(b.usage))
}

func (b *Bot) cancel(c telebot.Context, s fsm.Context) error {
	b.setState(s, initialState)
	return c.Send("Отменено")
}

func (b *Bot) command(name string) func(telebot.Context, fsm.Context) error {
	return func(c telebot.Context, s fsm.Context) error {
		b.setState(s, initialState)
		return b.run(c, name, c.Message().Payload)
	}
}

func (b *Bot) startSetTimezone(c telebot.Context, s fsm.Context) error {
	if zone := strings.TrimSpace(c.Message().Payload); zone != "" {
		b.setState(s, initialState)
		return b.run(c, commands.SetTimezone, zone)
	}

	b.setState(s, settzReadZoneState)
	return c.Send("Введите часовой пояс, например Europe/Minsk")
}

func (b *Bot) setTimezone(c telebot.Context, s fsm.Context) error {
	b.setState(s, initialState)
	return b.run(c, commands.SetTimezone, c.Text())
}

// run passes the command to the handler. Failures are reported to the user
// by the handler itself, so they are only logged here.
func (b *Bot) run(c telebot.Context, name string, text string) error {
	sender := c.Sender()
	if sender == nil {
		b.log.Warn(errors.Fail("get sender"))
		return nil
	}

	cmd := commands.Command{
		Name:     name,
		Text:     text,
		UserID:   strconv.FormatInt(sender.ID, 10),
		UserName: displayName(sender),
	}
	if chat := c.Chat(); chat != nil {
		cmd.ChannelID = strconv.FormatInt(chat.ID, 10)
	}

	err := b.handler.Handle(b.ctx, cmd, &responder{c: c})
	if err != nil {
		b.log.Debugf("command %s finished with error: %s", name, err)
	}
	return nil
}

func displayName(u *telebot.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// telegramNames rewrites command names of usage lines into the form
// Telegram accepts, which has no dashes.
func telegramNames(usage string) string {
	lines := strings.Split(usage, "\n")
	for i, line := range lines {
		name, rest, _ := strings.Cut(line, " ")
		lines[i] = strings.ReplaceAll(name, "-", "_") + " " + rest
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
