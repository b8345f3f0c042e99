package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/internal/repo"
	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

const locationsSource = "locations"

var (
	configPath string
	envName    string
)

var rootCmd = &cobra.Command{
	Use:   "timebot",
	Short: "Chat bot that translates a time of day into a list of locations",
	Long: `timebot answers slash commands in Slack and Telegram: /time translates
a wall-clock time into every location of an account, the other commands
manage the per-account location lists.

Use "timebot serve" to start the bot.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to yaml config")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "", "environment (dev, prod)")

	rootCmd.AddCommand(serveCmd, translateCmd, locationsCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// setup loads config and logger shared by all subcommands.
func setup() (*Config, logger.Logger, error) {
	cfg, err := loadConfig(configPath, envName)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Println(err)
		return nil, nil, errors.WrapFail(err, "init logger")
	}

	return cfg, log, nil
}

// openStore opens the location store and seeds the default set.
func openStore(ctx context.Context, cfg *Config, log logger.Logger) (*locations.Store, func(), error) {
	db, err := repo.New[locations.Set](ctx, cfg.Storage, locationsSource, log)
	if err != nil {
		return nil, nil, errors.WrapFail(err, "init locations repo")
	}

	closer := func() {
		err := db.Close(context.Background())
		if err != nil {
			log.Warn(err)
		}
	}

	store := locations.New(db, log)

	if len(cfg.DefaultLocations) > 0 {
		err = store.SeedDefault(ctx, cfg.DefaultLocations)
		if err != nil {
			closer()
			return nil, nil, errors.WrapFail(err, "seed default locations")
		}
	}

	return store, closer, nil
}
