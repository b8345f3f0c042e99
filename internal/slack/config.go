package slack

import "time"

type Config struct {
	Enabled bool `yaml:"enabled" env:"SLACK_ENABLED"`

	Token         string `yaml:"token"         env:"SLACK_BOT_TOKEN"`
	SigningSecret string `yaml:"signingSecret" env:"SLACK_SIGNING_SECRET"`
	APIURL        string `yaml:"apiURL"`

	QueueSize      int           `yaml:"queueSize"`
	CommandTimeout time.Duration `yaml:"commandTimeout"`

	Proxy struct {
		Header  string   `yaml:"header"`
		Trusted []string `yaml:"trusted"`
	} `yaml:"proxy"`

	HTTP struct {
		Host         string        `yaml:"host"`
		Port         string        `yaml:"port"          env:"PORT"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"http"`
}

func (c Config) Addr() string {
	port := c.HTTP.Port
	if port == "" {
		port = "3000"
	}
	return c.HTTP.Host + ":" + port
}
