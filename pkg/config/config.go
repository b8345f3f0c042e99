package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nikmy/timebot/pkg/errors"
)

// Load fills cfg from the yaml file at path, then overrides it with
// environment variables. Variables from dotenv files are exported first,
// already set ones win. Missing dotenv files are skipped.
func Load(path string, cfg any, dotenv ...string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.WrapFail(err, "build path to config")
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return errors.WrapFailf(err, "read %q", path)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return errors.WrapFail(err, "parse yaml")
	}

	for _, file := range dotenv {
		err = godotenv.Load(file)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.WrapFailf(err, "load %q", file)
		}
	}

	err = env.Parse(cfg)
	if err != nil {
		return errors.WrapFail(err, "parse environment")
	}

	return nil
}
