package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/kv"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

// Value is a JSON document held in memory and mirrored to one key of a kv
// backend. Reads never fail: a missing or unreadable document yields the
// initial value. Writes swap the in-memory copy first and then persist.
type Value[T any] struct {
	backend kv.Store
	key     string
	initial T

	mu      sync.RWMutex
	current T
}

func NewValue[T any](backend kv.Store, key string, initial T) *Value[T] {
	return &Value[T]{backend: backend, key: key, initial: initial, current: initial}
}

func (v *Value[T]) Key() string {
	return v.key
}

// Load reads the persisted document, falling back to the initial value.
func (v *Value[T]) Load(ctx context.Context) T {
	value := v.read(ctx)
	v.mu.Lock()
	v.current = value
	v.mu.Unlock()
	return value
}

// Reload is Load for callers reacting to an outside write.
func (v *Value[T]) Reload(ctx context.Context) {
	v.Load(ctx)
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the value and writes it through. On a write error the
// in-memory value keeps the new content and the persisted copy is stale
// until the next successful Set.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	v.mu.Lock()
	v.current = value
	v.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", v.key, err)
	}
	if err := v.backend.Set(ctx, v.key, data); err != nil {
		logutil.GetLogger(ctx).Error("persist value failed", zap.String("key", v.key), zap.Int("bytes", len(data)), zap.Error(err))
		if appErr.IsQuota(err) {
			return err
		}
		return fmt.Errorf("persist %s: %w", v.key, err)
	}
	return nil
}

func (v *Value[T]) read(ctx context.Context) T {
	logger := logutil.GetLogger(ctx).With(zap.String("key", v.key))
	data, err := v.backend.Get(ctx, v.key)
	if err != nil {
		if !errors.Is(err, appErr.ErrNotFound) {
			logger.Warn("read stored value failed, using default", zap.Error(err))
		}
		return v.initial
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn("stored value is corrupt, using default", zap.Error(err))
		return v.initial
	}
	return value
}
