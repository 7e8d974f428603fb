package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/jotty/internal/kv"
	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestNoteService(t *testing.T, backend kv.Store) (*NoteService, *fakeClock) {
	t.Helper()
	notes := store.NewNoteStore(backend)
	notes.Load(context.Background())
	svc := NewNoteService(notes, 0)
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc.now = clock.Now
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, clock
}

func strPtr(s string) *string {
	return &s
}

func seed(t *testing.T, svc *NoteService, notes ...model.Note) {
	t.Helper()
	require.NoError(t, svc.store.Replace(context.Background(), notes))
}

func storeTheme(t *testing.T, backend kv.Store) *store.ThemeStore {
	t.Helper()
	themes := store.NewThemeStore(backend)
	themes.Load(context.Background())
	return themes
}
