package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nikmy/timebot/pkg/errors"
	"github.com/nikmy/timebot/pkg/logger"
)

const fileExt = ".json"

func newFileRepo[T any](cfg FileConfig, source string, log logger.Logger) (*fileRepo[T], error) {
	dir := filepath.Join(cfg.Dir, source)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, errors.WrapFailf(err, "create directory %s", dir)
	}

	return &fileRepo[T]{dir: dir, log: log}, nil
}

type fileRepo[T any] struct {
	dir string
	log logger.Logger
}

func (s *fileRepo[T]) Get(_ context.Context, key string) (T, error) {
	var data T

	path, err := s.path(key)
	if err != nil {
		return data, err
	}

	bytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return data, errors.Wrapf(ErrNotFound, "%q", key)
	}
	if err != nil {
		return data, errors.WrapFailf(err, "read %s", path)
	}

	err = json.Unmarshal(bytes, &data)
	if err != nil {
		return data, errors.WrapFailf(err, "decode %s", path)
	}

	return data, nil
}

// Put writes into a temporary file of the same directory and renames it
// over the target, so a concurrent Get never observes a partial document.
func (s *fileRepo[T]) Put(_ context.Context, key string, value T) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.WrapFailf(err, "encode %q", key)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return errors.WrapFail(err, "create temporary file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(append(bytes, '\n'))
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.WrapFailf(err, "write %s", tmp.Name())
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return errors.WrapFailf(err, "replace %s", path)
	}

	s.log.Debugf("saved %s", path)
	return nil
}

func (s *fileRepo[T]) Keys(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.WrapFailf(err, "list %s", s.dir)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}

	slices.Sort(keys)
	return keys, nil
}

func (s *fileRepo[T]) Close(context.Context) error {
	return nil
}

func (s *fileRepo[T]) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", errors.Wrapf(ErrBadKey, "%q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}
