package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/internal/translate"
	"github.com/nikmy/timebot/internal/users"
	"github.com/nikmy/timebot/internal/zones"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

var usages = map[string]string{
	Time:           "/time <ЧЧ:ММ> [account]",
	ListLocations:  "/list-locations <account>",
	AddLocation:    "/add-location <account> <label> <timezone>",
	DeleteLocation: "/delete-location <account> <label>",
	SetTimezone:    "/settz <timezone>",
}

type store interface {
	Get(ctx context.Context, account string) (locations.Set, error)
	Load(ctx context.Context, account string) (locations.Set, error)
	AddLocation(ctx context.Context, account string, rawLabel string, zone string) (locations.Set, error)
	DeleteLocation(ctx context.Context, account string, rawLabel string) (locations.Set, error)
}

type timezoneStore interface {
	Timezone(ctx context.Context, userID string) (string, error)
	SetTimezone(ctx context.Context, userID string, zone string) error
}

type commandFunc func(ctx context.Context, cmd Command, r Responder) error

type Option func(*Service)

// WithProfiles enables /settz for platforms that keep user zones themselves.
func WithProfiles(p timezoneStore) Option {
	return func(s *Service) {
		s.profiles = p
	}
}

// WithEscaper sets how user input and stored values are escaped before
// they are put into replies, so that they never break the reply markup.
func WithEscaper(escape func(string) string) Option {
	return func(s *Service) {
		s.escape = escape
	}
}

func New(
	log logger.Logger,
	store store,
	translator *translate.Translator,
	directory users.Directory,
	opts ...Option,
) *Service {
	s := &Service{
		store:      store,
		translator: translator,
		directory:  directory,
		escape:     func(s string) string { return s },
		log:        log.With("commands"),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.commands = map[string]commandFunc{
		Time:           s.time,
		ListLocations:  s.listLocations,
		AddLocation:    s.addLocation,
		DeleteLocation: s.deleteLocation,
	}
	if s.profiles != nil {
		s.commands[SetTimezone] = s.setTimezone
	}

	return s
}

type Service struct {
	store      store
	translator *translate.Translator
	directory  users.Directory
	profiles   timezoneStore
	escape     func(string) string
	commands   map[string]commandFunc
	log        logger.Logger
}

// Usage lists the commands this service understands.
func (s *Service) Usage() string {
	var sb strings.Builder
	for _, name := range []string{Time, ListLocations, AddLocation, DeleteLocation, SetTimezone} {
		if _, ok := s.commands[name]; ok {
			sb.WriteString(usages[name])
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

func (s *Service) Handle(ctx context.Context, cmd Command, r Responder) error {
	log := s.log.
		WithField("request_id", uuid.NewString()).
		WithField("command", cmd.Name).
		WithField("user", cmd.UserID)

	err := r.Ack(ctx)
	if err != nil {
		err = errors.Mark(errors.WrapFail(err, "ack command"), ErrUpstreamUnavailable)
		log.Error(err)
		return err
	}

	do, ok := s.commands[cmd.Name]
	if !ok {
		err = complain(errors.Wrapf(ErrUnknownCommand, "%q", cmd.Name), s.text("Неизвестная команда. Доступные команды:\n%s", s.Usage()))
	} else {
		err = do(ctx, cmd, r)
	}

	if err == nil {
		log.Debugf("%q handled", cmd.Text)
		return nil
	}

	var c *complaint
	if errors.As(err, &c) {
		log.Infof("rejected %q: %s", cmd.Text, err)
	} else {
		log.Error(errors.WrapFailf(err, "handle %q", cmd.Text))
	}

	replyErr := r.Reply(ctx, explain(cmd.Name, err))
	if replyErr != nil {
		log.Error(errors.WrapFail(replyErr, "reply with failure"))
	}

	return err
}

func (s *Service) time(ctx context.Context, cmd Command, r Responder) error {
	args := strings.Fields(cmd.Text)
	if len(args) == 0 {
		return s.usage(cmd.Name)
	}

	at, account := args[0], locations.DefaultAccount
	if len(args) > 1 {
		account = args[1]
	}

	_, _, err := translate.ParseClock(at)
	if err != nil {
		return complain(err, s.text("Неверный формат времени: %s. Используйте ЧЧ:ММ, например 09:30.", at))
	}

	set, err := s.store.Load(ctx, account)
	if err != nil {
		return s.storeComplaint(err, account)
	}

	zone, err := s.directory.Timezone(ctx, cmd.UserID)
	if errors.Is(err, users.ErrTimezoneUnknown) {
		msg := "Не удалось определить часовой пояс пользователя."
		if s.profiles != nil {
			msg += s.text(" Укажите его командой %s", usages[SetTimezone])
		}
		return complain(err, msg)
	}
	if err != nil {
		return errors.Mark(errors.WrapFail(err, "get user timezone"), ErrUpstreamUnavailable)
	}

	results, err := s.translator.Translate(at, zone, set.Targets())
	if errors.Is(err, zones.ErrInvalidTimezone) {
		return complain(err, s.text("В списке \"%s\" или в профиле есть невалидный часовой пояс.", account))
	}
	if err != nil {
		return errors.WrapFail(err, "translate time")
	}

	err = r.Post(ctx, cmd.ChannelID, formatTranslation(s.escape, displayName(cmd), results))
	return errors.Mark(errors.WrapFail(err, "post translation"), ErrUpstreamUnavailable)
}

func (s *Service) listLocations(ctx context.Context, cmd Command, r Responder) error {
	account := strings.TrimSpace(cmd.Text)
	if account == "" {
		account = locations.DefaultAccount
	}

	set, err := s.store.Get(ctx, account)
	if errors.Is(err, locations.ErrAccountNotFound) {
		return complain(err, s.text("Файл локаций \"%s\" не найден.", account))
	}
	if err != nil {
		return s.storeComplaint(err, account)
	}

	err = r.Reply(ctx, formatSet(s.escape, set))
	return errors.Mark(errors.WrapFail(err, "reply with locations"), ErrUpstreamUnavailable)
}

func (s *Service) addLocation(ctx context.Context, cmd Command, r Responder) error {
	args := strings.Fields(cmd.Text)
	if len(args) < 3 {
		return s.usage(cmd.Name)
	}

	account, rawLabel, zone := args[0], args[1], strings.Join(args[2:], " ")

	set, err := s.store.AddLocation(ctx, account, rawLabel, zone)
	if errors.Is(err, locations.ErrInvalidTimezone) {
		return complain(err, s.text("Введен невалидный часовой пояс: %s. Попробуйте еще раз.", zone))
	}
	if err != nil {
		return s.storeComplaint(err, account)
	}

	label := locations.SanitizeLabel(rawLabel)
	if stored, ok := set.Zone(label); ok {
		zone = stored
	}

	err = r.Reply(ctx, s.text("Локация \"%s\" с часовым поясом \"%s\" успешно добавлена в \"%s\".", label, zone, account))
	return errors.Mark(errors.WrapFail(err, "reply"), ErrUpstreamUnavailable)
}

func (s *Service) deleteLocation(ctx context.Context, cmd Command, r Responder) error {
	args := strings.Fields(cmd.Text)
	if len(args) < 2 {
		return s.usage(cmd.Name)
	}

	account, label := args[0], locations.SanitizeLabel(args[1])

	_, err := s.store.DeleteLocation(ctx, account, args[1])
	switch {
	case errors.Is(err, locations.ErrAccountNotFound):
		return complain(err, s.text("Аккаунт \"%s\" не найден.", account))
	case errors.Is(err, locations.ErrLocationNotFound):
		return complain(err, s.text("Локация \"%s\" не найдена в \"%s\".", label, account))
	case err != nil:
		return s.storeComplaint(err, account)
	}

	err = r.Reply(ctx, s.text("Локация \"%s\" успешно удалена из \"%s\".", label, account))
	return errors.Mark(errors.WrapFail(err, "reply"), ErrUpstreamUnavailable)
}

func (s *Service) setTimezone(ctx context.Context, cmd Command, r Responder) error {
	zone := strings.TrimSpace(cmd.Text)
	if zone == "" {
		return s.usage(cmd.Name)
	}

	err := s.profiles.SetTimezone(ctx, cmd.UserID, zone)
	if errors.Is(err, zones.ErrInvalidTimezone) {
		return complain(err, s.text("Введен невалидный часовой пояс: %s. Попробуйте еще раз.", zone))
	}
	if err != nil {
		return errors.WrapFail(err, "save user timezone")
	}

	zone, err = s.profiles.Timezone(ctx, cmd.UserID)
	if err != nil {
		return errors.WrapFail(err, "read saved timezone")
	}

	err = r.Reply(ctx, s.text("Часовой пояс \"%s\" сохранён.", zone))
	return errors.Mark(errors.WrapFail(err, "reply"), ErrUpstreamUnavailable)
}

// storeComplaint explains errors of the location store that depend on user input.
func (s *Service) storeComplaint(err error, account string) error {
	switch {
	case errors.Is(err, locations.ErrEmptyLabel):
		return complain(err, "Название локации должно содержать хотя бы одну букву.")
	case errors.Is(err, locations.ErrInvalidAccount):
		return complain(err, s.text("Некорректное имя аккаунта \"%s\": допустимы буквы, цифры, дефис и подчёркивание.", account))
	case errors.Is(err, locations.ErrAccountNotFound):
		return complain(err, s.text("Аккаунт \"%s\" не найден.", account))
	default:
		return err
	}
}

func (s *Service) usage(cmd string) error {
	return complain(ErrUsage, s.text("Использование: %s", usages[cmd]))
}

// text formats a reply with every argument escaped.
func (s *Service) text(format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = s.escape(arg)
	}
	return fmt.Sprintf(format, escaped...)
}

func displayName(cmd Command) string {
	if cmd.UserName != "" {
		return cmd.UserName
	}
	return cmd.UserID
}
