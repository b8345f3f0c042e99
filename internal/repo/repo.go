package repo

import (
	"context"

	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrBadKey   = errors.New("bad document key")
)

// Repo stores whole documents of type T under string keys.
// Put replaces the document atomically: readers see either
// the previous or the new value.
type Repo[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Put(ctx context.Context, key string, value T) error
	Keys(ctx context.Context) ([]string, error)

	Close(ctx context.Context) error
}

// New opens the backend selected by cfg. Source names the
// collection (mongo) or the subdirectory (file) of documents.
func New[T any](ctx context.Context, cfg Config, source string, log logger.Logger) (Repo[T], error) {
	log = log.With(source + "_repo")

	switch cfg.Kind {
	case KindFile, "":
		r, err := newFileRepo[T](cfg.File, source, log)
		if err != nil {
			return nil, errors.WrapFail(err, "init file repo")
		}
		return r, nil
	case KindMongo:
		r, err := newMongoRepo[T](ctx, cfg.Mongo, source, log)
		if err != nil {
			return nil, errors.WrapFail(err, "init mongo repo")
		}
		return r, nil
	case KindMemory:
		return NewMemory[T](), nil
	default:
		return nil, errors.Errorf("unknown storage kind %q", cfg.Kind)
	}
}
