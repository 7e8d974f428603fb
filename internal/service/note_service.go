package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xxxsen/jotty/internal/merge"
	"github.com/xxxsen/jotty/internal/model"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
	"github.com/xxxsen/jotty/internal/pkg/textutil"
	"github.com/xxxsen/jotty/internal/render"
	"github.com/xxxsen/jotty/internal/store"
)

const DefaultMaxImageMB = 5

// NoteService owns every mutation of the note sequence. Mutations are
// serialized and each ends with one NoteStore.Replace.
type NoteService struct {
	store      *store.NoteStore
	maxImageMB float64

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func NewNoteService(notes *store.NoteStore, maxImageMB float64) *NoteService {
	if maxImageMB <= 0 {
		maxImageMB = DefaultMaxImageMB
	}
	return &NoteService{
		store:      notes,
		maxImageMB: maxImageMB,
		now:        time.Now,
		newID:      newID,
	}
}

// stamp never returns less than prev so lastEdited stays monotonic even if
// the clock steps back.
func (s *NoteService) stamp(prev int64) int64 {
	now := s.now().UnixMilli()
	if now < prev {
		return prev
	}
	return now
}

func (s *NoteService) mutate(ctx context.Context, fn func(notes []model.Note) ([]model.Note, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.store.Notes())
	if err != nil {
		return err
	}
	return s.store.Replace(ctx, next)
}

func (s *NoteService) checkImage(patch model.NotePatch) error {
	if patch.Image == nil || *patch.Image == "" {
		return nil
	}
	if !textutil.ImageWithinLimit(*patch.Image, s.maxImageMB) {
		return fmt.Errorf("%w: limit %.0fMB", appErr.ErrImageTooLarge, s.maxImageMB)
	}
	return nil
}

// Create inserts a note built from the template defaults and patch at the
// front. The returned note is valid even when persisting fails.
func (s *NoteService) Create(ctx context.Context, template model.Template, patch model.NotePatch) (*model.Note, error) {
	if template == "" {
		template = model.TemplatePlain
	}
	if !template.Valid() {
		return nil, appErr.ErrInvalid
	}
	if err := s.checkImage(patch); err != nil {
		return nil, err
	}
	tpl := model.LookupTemplate(template)
	var created model.Note
	err := s.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		created = model.Note{
			ID:         s.newID(),
			Title:      "Untitled Note",
			Content:    tpl.Content,
			Color:      model.DefaultNoteColor,
			Icon:       tpl.Icon,
			LastEdited: s.stamp(0),
			Template:   template,
		}
		patch.Apply(&created)
		return append([]model.Note{created}, notes...), nil
	})
	if created.ID == "" {
		return nil, err
	}
	logutil.GetLogger(ctx).Debug("note created", zap.String("note_id", created.ID), zap.String("template", string(template)))
	return &created, err
}

func (s *NoteService) Update(ctx context.Context, id string, patch model.NotePatch) (*model.Note, error) {
	if patch.Empty() {
		return nil, appErr.ErrInvalid
	}
	if err := s.checkImage(patch); err != nil {
		return nil, err
	}
	var updated model.Note
	err := s.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		for i := range notes {
			if notes[i].ID != id {
				continue
			}
			patch.Apply(&notes[i])
			notes[i].LastEdited = s.stamp(notes[i].LastEdited)
			updated = notes[i]
			return notes, nil
		}
		return nil, appErr.ErrNotFound
	})
	if updated.ID == "" {
		return nil, err
	}
	return &updated, err
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		out := make([]model.Note, 0, len(notes))
		for _, note := range notes {
			if note.ID != id {
				out = append(out, note)
			}
		}
		if len(out) == len(notes) {
			return nil, appErr.ErrNotFound
		}
		return out, nil
	})
}

func (s *NoteService) Duplicate(ctx context.Context, id string) (*model.Note, error) {
	var copied model.Note
	err := s.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		for _, note := range notes {
			if note.ID != id {
				continue
			}
			copied = note
			copied.ID = s.newID()
			copied.Title = note.Title + " (Copy)"
			copied.LastEdited = s.stamp(0)
			return append([]model.Note{copied}, notes...), nil
		}
		return nil, appErr.ErrNotFound
	})
	if copied.ID == "" {
		return nil, err
	}
	return &copied, err
}

// ToggleChecklistItem flips the index-th task of a note.
func (s *NoteService) ToggleChecklistItem(ctx context.Context, id string, index int) (*model.Note, error) {
	var updated model.Note
	err := s.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		for i := range notes {
			if notes[i].ID != id {
				continue
			}
			content, ok := render.ToggleChecklistItem(notes[i].Content, index)
			if !ok {
				return nil, appErr.ErrInvalid
			}
			notes[i].Content = content
			notes[i].LastEdited = s.stamp(notes[i].LastEdited)
			updated = notes[i]
			return notes, nil
		}
		return nil, appErr.ErrNotFound
	})
	if updated.ID == "" {
		return nil, err
	}
	return &updated, err
}

func (s *NoteService) Get(ctx context.Context, id string) (*model.Note, error) {
	for _, note := range s.store.Notes() {
		if note.ID == id {
			return &note, nil
		}
	}
	return nil, appErr.ErrNotFound
}

// List returns the notes ordered by title for display. Store order is not
// changed.
func (s *NoteService) List(ctx context.Context) []model.Note {
	notes := s.store.Notes()
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(notes, func(i, j int) bool {
		return c.CompareString(notes[i].Title, notes[j].Title) < 0
	})
	return notes
}

// Snapshot returns the notes in store order.
func (s *NoteService) Snapshot() []model.Note {
	return s.store.Notes()
}

// Key names the persisted document so the service can stand in for its
// store value when watching for outside writes.
func (s *NoteService) Key() string {
	return s.store.Value().Key()
}

// Reload re-reads the notes after an outside write. It waits for any
// mutation in flight so a reload never lands between its read and write.
func (s *NoteService) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Value().Reload(ctx)
}

// MergeBatch folds a validated batch into the store. See merge.Merge for
// the nil resolutions contract.
func (s *NoteService) MergeBatch(ctx context.Context, batch []model.Note, resolutions []model.Resolution) (model.ImportResult, error) {
	var result model.ImportResult
	err := s.mutate(ctx, func(notes []model.Note) ([]model.Note, error) {
		var next []model.Note
		next, result = merge.Merge(notes, batch, resolutions, s.newID)
		return next, nil
	})
	return result, err
}
