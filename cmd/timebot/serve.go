package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nikmy/timebot/internal/commands"
	"github.com/nikmy/timebot/internal/metrics"
	"github.com/nikmy/timebot/internal/slack"
	"github.com/nikmy/timebot/internal/telegram"
	"github.com/nikmy/timebot/internal/translate"
	"github.com/nikmy/timebot/internal/users"
	"github.com/nikmy/timebot/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot on every enabled platform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if !cfg.Slack.Enabled && !cfg.Telegram.Enabled {
		return errors.Error("neither slack nor telegram is enabled")
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(err)
		return err
	}
	defer closeStore()

	translator := translate.New()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry, cfg.Metrics.Namespace)

	var server slack.Server
	if cfg.Slack.Enabled {
		api := slack.NewClient(cfg.Slack)
		service := commands.New(
			log, store, translator, slack.NewDirectory(api),
			commands.WithEscaper(slack.EscapeText),
		)
		metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
		server = slack.NewServer(cfg.Slack, log, m.Middleware("slack", service), api, metricsHandler)
	}

	var bot *telegram.Bot
	if cfg.Telegram.Enabled {
		profiles, err := users.New(ctx, log, cfg.Storage)
		if err != nil {
			log.Error(err)
			return err
		}
		defer func() {
			if err := profiles.Close(context.Background()); err != nil {
				log.Warn(err)
			}
		}()

		service := commands.New(
			log, store, translator, profiles,
			commands.WithProfiles(profiles),
			commands.WithEscaper(telegram.EscapeMarkdown),
		)
		bot, err = telegram.New(log, cfg.Telegram, m.Middleware("telegram", service), service.Usage())
		if err != nil {
			log.Error(err)
			return err
		}

		err = bot.Run(ctx)
		if err != nil {
			return errors.WrapFail(err, "run telegram bot")
		}
		log.Infof("telegram bot has been started")
	}

	if server != nil {
		err = server.Serve(ctx)
		if err != nil {
			log.Error(err)
		}
	} else {
		<-ctx.Done()
	}

	log.Infof("graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if bot != nil {
		bot.Stop()
	}
	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn(err)
		}
	}

	log.Infof("shutdown complete")
	return err
}
