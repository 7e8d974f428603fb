package job

import (
	"context"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/codec"
	"github.com/xxxsen/jotty/internal/filestore"
	"github.com/xxxsen/jotty/internal/model"
)

const backupPrefix = "jotty-backup-"

type NoteSource interface {
	Snapshot() []model.Note
}

// BackupJob writes the whole note sequence in export format to a file
// store and, when the store can list its files, keeps only the newest
// keep snapshots.
type BackupJob struct {
	notes NoteSource
	files filestore.Store
	keep  int
	now   func() time.Time
}

func NewBackupJob(notes NoteSource, files filestore.Store, keep int) *BackupJob {
	return &BackupJob{notes: notes, files: files, keep: keep, now: time.Now}
}

func (j *BackupJob) Name() string {
	return "note_backup"
}

func (j *BackupJob) Run(ctx context.Context) error {
	notes := j.notes.Snapshot()
	data, err := codec.EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	key := backupPrefix + j.now().UTC().Format("20060102-150405") + ".json"
	if err := j.files.Save(ctx, key, filestore.BytesReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("save backup %s: %w", key, err)
	}
	logutil.GetLogger(ctx).Info("backup written", zap.String("key", key), zap.Int("notes", len(notes)), zap.Int("bytes", len(data)))
	return j.prune(ctx)
}

func (j *BackupJob) prune(ctx context.Context) error {
	pruner, ok := j.files.(filestore.Pruner)
	if !ok || j.keep <= 0 {
		return nil
	}
	keys, err := pruner.List(ctx, backupPrefix)
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	if len(keys) <= j.keep {
		return nil
	}
	for _, key := range keys[:len(keys)-j.keep] {
		if err := pruner.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete backup %s: %w", key, err)
		}
	}
	return nil
}
