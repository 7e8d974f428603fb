package service

import (
	"context"
	"time"

	"github.com/xxxsen/jotty/internal/codec"
	"github.com/xxxsen/jotty/internal/model"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

type ExportService struct {
	notes *NoteService
	now   func() time.Time
}

func NewExportService(notes *NoteService) *ExportService {
	return &ExportService{notes: notes, now: time.Now}
}

// Select filters the store to ids, keeping store order. all selects every
// note.
func (s *ExportService) Select(ids []string, all bool) []model.Note {
	notes := s.notes.Snapshot()
	if all {
		return notes
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	selected := make([]model.Note, 0, len(ids))
	for _, note := range notes {
		if _, ok := wanted[note.ID]; ok {
			selected = append(selected, note)
		}
	}
	return selected
}

// Export encodes the selected notes and names the download file.
func (s *ExportService) Export(ctx context.Context, ids []string, all bool) ([]byte, string, error) {
	if !all && len(ids) == 0 {
		return nil, "", appErr.ErrInvalid
	}
	selected := s.Select(ids, all)
	if !all && len(selected) == 0 {
		return nil, "", appErr.ErrNotFound
	}
	data, err := codec.EncodeNotes(selected)
	if err != nil {
		return nil, "", err
	}
	return data, codec.ExportFileName(s.now()), nil
}
