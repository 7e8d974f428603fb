package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/codec"
	"github.com/xxxsen/jotty/internal/merge"
	"github.com/xxxsen/jotty/internal/model"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

const (
	defaultMaxImportNotes = 2000
	defaultMaxNoteBytes   = 1024 * 1024
	defaultPendingTTL     = 30 * time.Minute
	maxPendingImports     = 32
)

type ImportConfig struct {
	MaxNotes     int
	MaxNoteBytes int
	MaxImageMB   float64
	PendingTTL   time.Duration
}

// PendingImport is a validated batch waiting for conflict resolutions.
type PendingImport struct {
	ID        string           `json:"id"`
	Batch     []model.Note     `json:"-"`
	Conflicts []model.Conflict `json:"conflicts"`
	Ctime     int64            `json:"ctime"`
}

// ImportOutcome carries either the applied result or the pending import
// that needs resolutions.
type ImportOutcome struct {
	Result    *model.ImportResult `json:"result,omitempty"`
	PendingID string              `json:"pending_id,omitempty"`
	Conflicts []model.Conflict    `json:"conflicts,omitempty"`
}

type ImportService struct {
	notes   *NoteService
	limits  codec.Limits
	pending *expirable.LRU[string, *PendingImport]
}

func NewImportService(notes *NoteService, cfg ImportConfig) *ImportService {
	if cfg.MaxNotes <= 0 {
		cfg.MaxNotes = defaultMaxImportNotes
	}
	if cfg.MaxNoteBytes <= 0 {
		cfg.MaxNoteBytes = defaultMaxNoteBytes
	}
	if cfg.MaxImageMB <= 0 {
		cfg.MaxImageMB = DefaultMaxImageMB
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = defaultPendingTTL
	}
	return &ImportService{
		notes: notes,
		limits: codec.Limits{
			MaxNotes:     cfg.MaxNotes,
			MaxNoteBytes: cfg.MaxNoteBytes,
			MaxImageMB:   cfg.MaxImageMB,
		},
		pending: expirable.NewLRU[string, *PendingImport](maxPendingImports, nil, cfg.PendingTTL),
	}
}

func (s *ImportService) Decode(data []byte) ([]model.Note, error) {
	return codec.DecodeBatch(data, s.limits)
}

// Conflicts reports which batch records collide with the current store.
func (s *ImportService) Conflicts(batch []model.Note) []model.Conflict {
	return merge.DetectConflicts(s.notes.Snapshot(), batch)
}

// Import merges an already validated batch. A nil resolutions slice means
// the caller found no conflicts.
func (s *ImportService) Import(ctx context.Context, batch []model.Note, resolutions []model.Resolution) (model.ImportResult, error) {
	result, err := s.notes.MergeBatch(ctx, batch, resolutions)
	logger := logutil.GetLogger(ctx).With(
		zap.Int("batch", len(batch)),
		zap.Int("imported", result.Imported),
		zap.Int("overwritten", result.Overwritten),
		zap.Int("skipped", result.Skipped),
	)
	if err != nil {
		logger.Error("import merged but not persisted", zap.Error(err))
		return result, err
	}
	logger.Info("import applied")
	return result, nil
}

// Stage validates an import file. Without conflicts it is applied at once;
// otherwise it is held until Confirm or Cancel.
func (s *ImportService) Stage(ctx context.Context, data []byte) (*ImportOutcome, error) {
	batch, err := s.Decode(data)
	if err != nil {
		return nil, err
	}
	conflicts := s.Conflicts(batch)
	if len(conflicts) == 0 {
		result, err := s.Import(ctx, batch, nil)
		return &ImportOutcome{Result: &result}, err
	}
	pending := &PendingImport{
		ID:        newID(),
		Batch:     batch,
		Conflicts: conflicts,
		Ctime:     time.Now().Unix(),
	}
	s.pending.Add(pending.ID, pending)
	logutil.GetLogger(ctx).Info("import waiting for resolutions",
		zap.String("pending_id", pending.ID),
		zap.Int("batch", len(batch)),
		zap.Int("conflicts", len(conflicts)),
	)
	return &ImportOutcome{PendingID: pending.ID, Conflicts: conflicts}, nil
}

func (s *ImportService) Pending(id string) (*PendingImport, error) {
	pending, ok := s.pending.Get(id)
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return pending, nil
}

// Confirm applies a pending import with the given resolutions. Collisions
// are re-checked against the store as it is now.
func (s *ImportService) Confirm(ctx context.Context, id string, resolutions []model.Resolution) (model.ImportResult, error) {
	pending, ok := s.pending.Get(id)
	if !ok {
		return model.ImportResult{}, appErr.ErrNotFound
	}
	s.pending.Remove(id)
	if resolutions == nil {
		resolutions = []model.Resolution{}
	}
	return s.Import(ctx, pending.Batch, resolutions)
}

func (s *ImportService) Cancel(id string) error {
	if !s.pending.Remove(id) {
		return appErr.ErrNotFound
	}
	return nil
}
