package service

import (
	"context"
	"sync"

	"github.com/xxxsen/jotty/internal/model"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
	"github.com/xxxsen/jotty/internal/store"
)

type ThemeService struct {
	store *store.ThemeStore
	mu    sync.Mutex
}

func NewThemeService(themes *store.ThemeStore) *ThemeService {
	return &ThemeService{store: themes}
}

func (s *ThemeService) Get() model.Theme {
	return s.store.Theme()
}

func (s *ThemeService) Set(ctx context.Context, theme model.Theme) error {
	if !theme.Valid() {
		return appErr.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(ctx, theme)
}

// Toggle advances light -> dark -> system and returns the new theme.
func (s *ThemeService) Toggle(ctx context.Context) (model.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.store.Theme().Next()
	return next, s.store.Set(ctx, next)
}

func (s *ThemeService) Key() string {
	return s.store.Value().Key()
}

// Reload re-reads the theme after an outside write, serialized with Set
// and Toggle.
func (s *ThemeService) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Value().Reload(ctx)
}

// Effective resolves the stored theme against the host preference.
func (s *ThemeService) Effective(systemDark bool) model.Theme {
	return s.store.Theme().Effective(systemDark)
}
