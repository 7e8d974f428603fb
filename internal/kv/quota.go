package kv

import (
	"context"
	"fmt"
	"sync"

	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

// quotaStore caps the combined size of every value read or written
// through it, the way a browser caps an origin's local storage.
type quotaStore struct {
	Store
	limit int64

	mu    sync.Mutex
	sizes map[string]int64
}

// WithQuota wraps next with a byte limit. A non-positive limit disables it.
func WithQuota(next Store, limit int64) Store {
	if limit <= 0 {
		return next
	}
	return &quotaStore{Store: next, limit: limit, sizes: make(map[string]int64)}
}

func (q *quotaStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := q.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	q.mu.Lock()
	q.sizes[key] = int64(len(value))
	q.mu.Unlock()
	return value, nil
}

func (q *quotaStore) Set(ctx context.Context, key string, value []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	total := int64(len(value))
	for k, size := range q.sizes {
		if k != key {
			total += size
		}
	}
	if total > q.limit {
		return fmt.Errorf("write %s (%d of %d bytes): %w", key, total, q.limit, appErr.ErrStorageQuota)
	}
	if err := q.Store.Set(ctx, key, value); err != nil {
		return err
	}
	q.sizes[key] = int64(len(value))
	return nil
}

func (q *quotaStore) Delete(ctx context.Context, key string) error {
	if err := q.Store.Delete(ctx, key); err != nil {
		return err
	}
	q.mu.Lock()
	delete(q.sizes, key)
	q.mu.Unlock()
	return nil
}

// FilePath forwards to the wrapped backend so watchers still see the file.
func (q *quotaStore) FilePath(key string) string {
	if fb, ok := q.Store.(FileBacked); ok {
		return fb.FilePath(key)
	}
	return ""
}
