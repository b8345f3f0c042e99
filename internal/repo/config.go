package repo

import (
	"time"
)

type Kind string

const (
	KindFile   Kind = "file"
	KindMongo  Kind = "mongo"
	KindMemory Kind = "memory"
)

type Config struct {
	Kind  Kind        `yaml:"kind"  env:"TIMEBOT_STORAGE"`
	File  FileConfig  `yaml:"file"`
	Mongo MongoConfig `yaml:"mongo"`
}

type FileConfig struct {
	// Dir holds one subdirectory per source, e.g. <Dir>/locations/default.json.
	Dir string `yaml:"dir" env:"TIMEBOT_DATA_DIR"`
}

type MongoConfig struct {
	URL     string        `yaml:"url"     env:"MONGO_URL"`
	Timeout time.Duration `yaml:"timeout"`

	Database string `yaml:"database"`

	Auth struct {
		Username string `yaml:"username" env:"MONGO_USERNAME"`
		Password string `yaml:"password" env:"MONGO_PASSWORD"`
	} `yaml:"auth"`

	Pool struct {
		MinSize uint64 `yaml:"minSize"`
		MaxSize uint64 `yaml:"maxSize"`
	} `yaml:"pool"`
}
