package main

import (
	"github.com/nikmy/timebot/internal/locations"
	"github.com/nikmy/timebot/internal/repo"
	"github.com/nikmy/timebot/internal/slack"
	"github.com/nikmy/timebot/internal/telegram"
	"github.com/nikmy/timebot/pkg/config"
	"github.com/nikmy/timebot/pkg/environment"
	"github.com/nikmy/timebot/pkg/errors"
)

type Config struct {
	Environment environment.Env `yaml:"environment" env:"TIMEBOT_ENV"`

	Storage          repo.Config   `yaml:"storage"`
	DefaultLocations locations.Set `yaml:"defaultLocations"`

	Metrics struct {
		Namespace string `yaml:"namespace"`
	} `yaml:"metrics"`

	Slack    slack.Config    `yaml:"slack"`
	Telegram telegram.Config `yaml:"telegram"`
}

func loadConfig(path string, envOverride string) (*Config, error) {
	var cfg Config

	err := config.Load(path, &cfg, ".env")
	if err != nil {
		return nil, errors.WrapFail(err, "load config")
	}

	if envOverride != "" {
		cfg.Environment = environment.FromString(envOverride)
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "timebot"
	}

	return &cfg, nil
}
