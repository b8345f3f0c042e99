package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vitaliy-ukiru/fsm-telebot"
	"gopkg.in/telebot.v3"

	"github.com/nikmy/timebot/internal/commands"
	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/internal/repo"
	"github.com/nikmy/timebot/internal/translate"
	"github.com/nikmy/timebot/internal/users"
	"github.com/nikmy/timebot/pkg/logger"
)

// fakeContext implements the part of telebot.Context the bot uses.
type fakeContext struct {
	telebot.Context

	msg    *telebot.Message
	sender *telebot.User
	chat   *telebot.Chat

	sent     []string
	notified []telebot.ChatAction
}

func (f *fakeContext) Message() *telebot.Message { return f.msg }
func (f *fakeContext) Sender() *telebot.User     { return f.sender }
func (f *fakeContext) Chat() *telebot.Chat       { return f.chat }
func (f *fakeContext) Text() string              { return f.msg.Text }

func (f *fakeContext) Send(what any, _ ...any) error {
	f.sent = append(f.sent, what.(string))
	return nil
}

func (f *fakeContext) Notify(action telebot.ChatAction) error {
	f.notified = append(f.notified, action)
	return nil
}

type fakeState struct {
	fsm.Context
	state fsm.State
}

func (f *fakeState) Set(s fsm.State) error {
	f.state = s
	return nil
}

type replyingHandler struct {
	got []commands.Command
}

func (h *replyingHandler) Handle(ctx context.Context, cmd commands.Command, r commands.Responder) error {
	h.got = append(h.got, cmd)
	if err := r.Ack(ctx); err != nil {
		return err
	}
	return r.Reply(ctx, "*Moscow*: 10:00 America/New_York")
}

func newTestBot(h commands.Handler) *Bot {
	return &Bot{
		ctx:     context.Background(),
		handler: h,
		usage:   "/time <ЧЧ:ММ> [account]\n/list-locations <account>\n",
		log:     logger.NewStub(),
	}
}

func newFakeContext(text string, payload string) *fakeContext {
	return &fakeContext{
		msg:    &telebot.Message{Text: text, Payload: payload},
		sender: &telebot.User{ID: 42, Username: "cat_lover"},
		chat:   &telebot.Chat{ID: -100},
	}
}

func TestBot_command(t *testing.T) {
	h := &replyingHandler{}
	b := newTestBot(h)

	c := newFakeContext("/time 09:00 team1", "09:00 team1")
	s := &fakeState{state: settzReadZoneState}

	require.NoError(t, b.command(commands.Time)(c, s))

	require.Equal(t, initialState, s.state)
	require.Equal(t, []commands.Command{{
		Name:      commands.Time,
		Text:      "09:00 team1",
		UserID:    "42",
		UserName:  "@cat_lover",
		ChannelID: "-100",
	}}, h.got)
	require.Equal(t, []telebot.ChatAction{telebot.Typing}, c.notified)
	require.Equal(t, []string{"*Moscow*: 10:00 America/New_York"}, c.sent)
}

func TestBot_commandWithoutSender(t *testing.T) {
	h := &replyingHandler{}
	b := newTestBot(h)

	c := newFakeContext("/time 09:00", "09:00")
	c.sender = nil

	require.NoError(t, b.command(commands.Time)(c, &fakeState{}))
	require.Empty(t, h.got)
}

func TestBot_setTimezoneDialog(t *testing.T) {
	h := &replyingHandler{}
	b := newTestBot(h)
	s := &fakeState{state: initialState}

	c := newFakeContext("/settz", "")
	require.NoError(t, b.startSetTimezone(c, s))
	require.Equal(t, settzReadZoneState, s.state)
	require.Equal(t, []string{"Введите часовой пояс, например Europe/Minsk"}, c.sent)
	require.Empty(t, h.got)

	c = newFakeContext("Europe/Minsk", "")
	require.NoError(t, b.setTimezone(c, s))
	require.Equal(t, initialState, s.state)
	require.Len(t, h.got, 1)
	require.Equal(t, commands.SetTimezone, h.got[0].Name)
	require.Equal(t, "Europe/Minsk", h.got[0].Text)
}

func TestBot_setTimezoneInline(t *testing.T) {
	h := &replyingHandler{}
	b := newTestBot(h)
	s := &fakeState{state: initialState}

	require.NoError(t, b.startSetTimezone(newFakeContext("/settz Asia/Tokyo", " Asia/Tokyo "), s))
	require.Equal(t, initialState, s.state)
	require.Len(t, h.got, 1)
	require.Equal(t, "Asia/Tokyo", h.got[0].Text)
}

func TestBot_start(t *testing.T) {
	b := newTestBot(&replyingHandler{})
	c := newFakeContext("/start", "")

	require.NoError(t, b.start(c, &fakeState{}))
	require.Equal(t, []string{"Доступные команды:\n/time <ЧЧ:ММ> [account]\n/list_locations <account>"}, c.sent)
}

func TestResponder_Post(t *testing.T) {
	c := newFakeContext("", "")
	r := &responder{c: c}

	require.NoError(t, r.Post(context.Background(), "-100", "*hi*"))
	require.Equal(t, []string{"*hi*"}, c.sent)

	require.Error(t, r.Post(context.Background(), "general", "hi"))
}

func Test_displayName(t *testing.T) {
	require.Equal(t, "@neo", displayName(&telebot.User{Username: "neo"}))
	require.Equal(t, "Thomas Anderson", displayName(&telebot.User{FirstName: "Thomas", LastName: "Anderson"}))
	require.Equal(t, "Trinity", displayName(&telebot.User{FirstName: "Trinity"}))
}

func TestEscapeMarkdown(t *testing.T) {
	require.Equal(t, "\\*Star\\* New\\_York \\[x\\] \\`code\\`", EscapeMarkdown("*Star* New_York [x] `code`"))
	require.Equal(t, "Минск", EscapeMarkdown("Минск"))
}

func TestBot_userInputKeepsMarkdownValid(t *testing.T) {
	ctx := context.Background()
	stub := logger.NewStub()

	store := locations.New(repo.NewMemory[locations.Set](), stub)
	require.NoError(t, store.SeedDefault(ctx, locations.Set{{Label: "Minsk", Zone: "Europe/Minsk"}}))

	profiles := users.NewProfiles(repo.NewMemory[users.Profile]())
	require.NoError(t, profiles.SetTimezone(ctx, "42", "America/New_York"))

	summer := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	service := commands.New(
		stub,
		store,
		translate.New(translate.WithClock(translate.Fixed(summer))),
		profiles,
		commands.WithProfiles(profiles),
		commands.WithEscaper(EscapeMarkdown),
	)
	b := newTestBot(service)

	type testcase struct {
		name    string
		payload string
		user    *telebot.User
		want    string
	}

	tests := [...]testcase{
		{
			name:    "time with star",
			payload: "9*00",
			user:    &telebot.User{ID: 42, Username: "cat_lover"},
			want:    `Неверный формат времени: 9\*00. Используйте ЧЧ:ММ, например 09:30.`,
		},
		{
			name:    "name with star",
			payload: "09:00",
			user:    &telebot.User{ID: 42, FirstName: "*Star"},
			want:    "\\*Star назвал время:\n*Minsk*: 16:00\n",
		},
		{
			name:    "username with underscore",
			payload: "09:00",
			user:    &telebot.User{ID: 42, Username: "cat_lover"},
			want:    "@cat\\_lover назвал время:\n*Minsk*: 16:00\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeContext("/time "+tt.payload, tt.payload)
			c.sender = tt.user

			require.NoError(t, b.command(commands.Time)(c, &fakeState{}))
			require.Equal(t, []string{tt.want}, c.sent)
		})
	}
}
