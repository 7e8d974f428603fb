package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

type localConfig struct {
	Dir string `json:"dir"`
}

type localStore struct {
	dir string
}

func init() {
	Register("local", createLocalStore)
}

func createLocalStore(args interface{}) (Store, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Dir == "" {
		return nil, fmt.Errorf("local storage dir is required")
	}
	return NewLocal(config.Dir)
}

func NewLocal(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &localStore{dir: dir}, nil
}

func (s *localStore) FilePath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *localStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.FilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, appErr.ErrNotFound
	}
	return data, err
}

// Set writes through a temp file and renames it over the target so readers
// never observe a partial document.
func (s *localStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		if isNoSpace(err) {
			return fmt.Errorf("write %s: %w", key, appErr.ErrStorageQuota)
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.FilePath(key))
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(s.FilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *localStore) Close() error {
	return nil
}
