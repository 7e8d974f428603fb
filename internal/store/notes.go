// Package store keeps jotty's persisted state: the note sequence and the
// theme preference.
package store

import (
	"context"

	"github.com/xxxsen/jotty/internal/kv"
	"github.com/xxxsen/jotty/internal/model"
)

const (
	NotesKey = "jotty-notes"
	ThemeKey = "jotty-theme"
)

type NoteStore struct {
	value *Value[[]model.Note]
}

func NewNoteStore(backend kv.Store) *NoteStore {
	return &NoteStore{value: NewValue[[]model.Note](backend, NotesKey, []model.Note{})}
}

func (s *NoteStore) Load(ctx context.Context) []model.Note {
	notes := s.value.Load(ctx)
	if notes == nil {
		s.value.mu.Lock()
		s.value.current = []model.Note{}
		s.value.mu.Unlock()
		return []model.Note{}
	}
	return model.CloneNotes(notes)
}

// Notes returns a copy of the current sequence.
func (s *NoteStore) Notes() []model.Note {
	return model.CloneNotes(s.value.Get())
}

// Replace swaps the whole sequence and persists it.
func (s *NoteStore) Replace(ctx context.Context, notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	return s.value.Set(ctx, model.CloneNotes(notes))
}

func (s *NoteStore) Value() *Value[[]model.Note] {
	return s.value
}

type ThemeStore struct {
	value *Value[model.Theme]
}

func NewThemeStore(backend kv.Store) *ThemeStore {
	return &ThemeStore{value: NewValue(backend, ThemeKey, model.ThemeSystem)}
}

func (s *ThemeStore) Load(ctx context.Context) model.Theme {
	theme := s.value.Load(ctx)
	if !theme.Valid() {
		return model.ThemeSystem
	}
	return theme
}

func (s *ThemeStore) Theme() model.Theme {
	theme := s.value.Get()
	if !theme.Valid() {
		return model.ThemeSystem
	}
	return theme
}

func (s *ThemeStore) Set(ctx context.Context, theme model.Theme) error {
	return s.value.Set(ctx, theme)
}

func (s *ThemeStore) Value() *Value[model.Theme] {
	return s.value
}
