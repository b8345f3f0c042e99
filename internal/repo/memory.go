package repo

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/nikmy/timebot/pkg/errors"
)

// NewMemory keeps documents encoded, so callers never share
// mutable state with the stored copy.
func NewMemory[T any]() *memoryRepo[T] {
	return &memoryRepo[T]{docs: make(map[string][]byte)}
}

type memoryRepo[T any] struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func (m *memoryRepo[T]) Get(_ context.Context, key string) (T, error) {
	var data T

	m.mu.RLock()
	raw, ok := m.docs[key]
	m.mu.RUnlock()

	if !ok {
		return data, errors.Wrapf(ErrNotFound, "%q", key)
	}

	err := json.Unmarshal(raw, &data)
	return data, errors.WrapFailf(err, "decode %q", key)
}

func (m *memoryRepo[T]) Put(_ context.Context, key string, value T) error {
	if key == "" {
		return ErrBadKey
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return errors.WrapFailf(err, "encode %q", key)
	}

	m.mu.Lock()
	m.docs[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memoryRepo[T]) Keys(context.Context) ([]string, error) {
	m.mu.RLock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	m.mu.RUnlock()

	slices.Sort(keys)
	return keys, nil
}

func (m *memoryRepo[T]) Close(context.Context) error {
	return nil
}
