package slack

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	slackapi "github.com/slack-go/slack"

	"github.com/nikmy/timebot/internal/commands"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
	"github.com/nikmy/timebot/pkg/tools/serial"
)

const (
	defaultQueueSize      = 64
	defaultCommandTimeout = 15 * time.Second
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func NewServer(
	cfg Config,
	log logger.Logger,
	handler commands.Handler,
	api webAPI,
	metrics http.Handler,
) Server {
	return newServer(cfg, log, handler, api, slackapi.PostWebhookContext, metrics)
}

func newServer(
	cfg Config,
	log logger.Logger,
	handler commands.Handler,
	api webAPI,
	postWebhook webhookFunc,
	metrics http.Handler,
) *server {
	serveLog := log.With("slack_http_server")

	fiberCfg := fiber.Config{
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		DisableStartupMessage: true,
		RequestMethods:        []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodHead},
	}
	if cfg.Proxy.Header != "" {
		fiberCfg.EnableTrustedProxyCheck = true
		fiberCfg.ProxyHeader = cfg.Proxy.Header
		fiberCfg.TrustedProxies = cfg.Proxy.Trusted
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		serveLog.Warn(errors.WrapFailf(err, "handle %s %s", c.Method(), c.Path()))

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).Send(nil)
		}
		return c.Status(http.StatusInternalServerError).Send(nil)
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}

	s := &server{
		http:        fiber.New(fiberCfg),
		addr:        cfg.Addr(),
		secret:      cfg.SigningSecret,
		timeout:     timeout,
		handler:     handler,
		api:         api,
		postWebhook: postWebhook,
		queue:       serial.New(queueSize),
		log:         serveLog,
	}

	s.setupRoutes(metrics)

	return s
}

type server struct {
	http    *fiber.App
	addr    string
	secret  string
	timeout time.Duration

	handler     commands.Handler
	api         webAPI
	postWebhook webhookFunc
	queue       *serial.Executor

	log logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	go s.queue.Run(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Listen(s.addr) }()

	s.log.Infof("listening on %s", s.addr)

	select {
	case err := <-errCh:
		return errors.WrapFailf(err, "listen %s", s.addr)
	case <-ctx.Done():
		return nil
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	err := s.http.ShutdownWithContext(ctx)
	return errors.WrapFail(err, "shutdown http server")
}

func (s *server) setupRoutes(metrics http.Handler) {
	s.http.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	if metrics != nil {
		s.http.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	s.http.Post("/slack/commands", s.handleCommand)
}

func (s *server) handleCommand(c *fiber.Ctx) error {
	err := s.verify(c)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "verify slack request"))
		return c.SendStatus(http.StatusUnauthorized)
	}

	sc, err := parseSlashCommand(c)
	if err != nil {
		s.log.Warn(err)
		return c.SendStatus(http.StatusBadRequest)
	}

	cmd := commands.Command{
		Name:      strings.TrimPrefix(sc.Command, "/"),
		Text:      sc.Text,
		UserID:    sc.UserID,
		UserName:  sc.UserName,
		ChannelID: sc.ChannelID,
	}

	r := &responder{
		api:         s.api,
		postWebhook: s.postWebhook,
		responseURL: sc.ResponseURL,
	}

	queued := s.queue.TryDo(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		err := s.handler.Handle(ctx, cmd, r)
		if err != nil {
			s.log.Debugf("command %s finished with error: %s", sc.Command, err)
		}
	})
	if !queued {
		s.log.Warnf("queue is full, dropping %s from %s", sc.Command, sc.UserID)
		return c.Status(http.StatusOK).JSON(ephemeral("Бот перегружен, попробуйте позже."))
	}

	// An empty 200 is the acknowledgement; the answer follows via response_url.
	// SendStatus would put "OK" into the body, which Slack shows to the user.
	return c.Status(http.StatusOK).Send(nil)
}

func (s *server) verify(c *fiber.Ctx) error {
	header := http.Header{}
	header.Set("X-Slack-Signature", c.Get("X-Slack-Signature"))
	header.Set("X-Slack-Request-Timestamp", c.Get("X-Slack-Request-Timestamp"))

	sv, err := slackapi.NewSecretsVerifier(header, s.secret)
	if err != nil {
		return errors.WrapFail(err, "init verifier")
	}

	_, err = sv.Write(c.Body())
	if err != nil {
		return errors.WrapFail(err, "hash body")
	}

	return sv.Ensure()
}

func parseSlashCommand(c *fiber.Ctx) (slackapi.SlashCommand, error) {
	req, err := adaptor.ConvertRequest(c, false)
	if err != nil {
		return slackapi.SlashCommand{}, errors.WrapFail(err, "convert request")
	}

	sc, err := slackapi.SlashCommandParse(req)
	if err != nil {
		return sc, errors.WrapFail(err, "parse slash command form")
	}

	if sc.Command == "" || sc.UserID == "" {
		return sc, errors.Error("slash command without command or user_id")
	}

	return sc, nil
}

func ephemeral(text string) map[string]string {
	return map[string]string{"response_type": responseEphemeral, "text": text}
}
