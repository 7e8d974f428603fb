package kv

import (
	"context"
	"sync"

	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func init() {
	Register("memory", func(args interface{}) (Store, error) {
		return NewMemory(), nil
	})
}

func NewMemory() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
