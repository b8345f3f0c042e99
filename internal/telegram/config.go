package telegram

import "time"

type Config struct {
	Enabled      bool          `yaml:"enabled"      env:"TELEGRAM_ENABLED"`
	Token        string        `yaml:"token"        env:"TELEGRAM_TOKEN"`
	PollInterval time.Duration `yaml:"pollInterval"`
}
