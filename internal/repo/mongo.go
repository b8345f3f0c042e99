package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
	"github.com/nikmy/timebot/pkg/mongotools"
)

type document[T any] struct {
	Key   string `bson:"_id"`
	Value T      `bson:"value"`
}

func newMongoRepo[T any](
	ctx context.Context,
	cfg MongoConfig,
	collection string,
	log logger.Logger,
) (*mongoRepo[T], error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout)

	if cfg.Auth.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		})
	}
	if cfg.Pool.MinSize > 0 {
		opts.SetMinPoolSize(cfg.Pool.MinSize)
	}
	if cfg.Pool.MaxSize > 0 {
		opts.SetMaxPoolSize(cfg.Pool.MaxSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapFail(err, "connect to mongo db")
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.WrapFail(err, "ping mongo db")
	}

	return &mongoRepo[T]{
		coll: client.Database(cfg.Database).Collection(collection),
		log:  log,
	}, nil
}

type mongoRepo[T any] struct {
	coll *mongo.Collection
	log  logger.Logger
}

func (m *mongoRepo[T]) Get(ctx context.Context, key string) (T, error) {
	var doc document[T]

	err := m.coll.FindOne(ctx, mongotools.FilterByID(key)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc.Value, errors.Wrapf(ErrNotFound, "%q", key)
	}
	if err != nil {
		return doc.Value, errors.WrapFailf(err, "find document %q", key)
	}

	return doc.Value, nil
}

func (m *mongoRepo[T]) Put(ctx context.Context, key string, value T) error {
	if key == "" {
		return ErrBadKey
	}

	_, err := m.coll.ReplaceOne(
		ctx,
		mongotools.FilterByID(key),
		document[T]{Key: key, Value: value},
		mongotools.Upsert(),
	)
	return errors.WrapFailf(err, "replace document %q", key)
}

func (m *mongoRepo[T]) Keys(ctx context.Context) ([]string, error) {
	ids, err := m.coll.Distinct(ctx, "_id", mongotools.All())
	if err != nil {
		return nil, errors.WrapFail(err, "list document ids")
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprint(id))
	}
	return keys, nil
}

func (m *mongoRepo[T]) Close(ctx context.Context) error {
	err := m.coll.Database().Client().Disconnect(ctx)
	return errors.WrapFail(err, "close mongo db connection")
}
