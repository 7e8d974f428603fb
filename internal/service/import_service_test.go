package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/jotty/internal/kv"
	"github.com/xxxsen/jotty/internal/model"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
)

func newTestImportService(t *testing.T) (*ImportService, *NoteService) {
	t.Helper()
	notes, _ := newTestNoteService(t, kv.NewMemory())
	return NewImportService(notes, ImportConfig{}), notes
}

func TestImportStageWithoutConflictsAppliesImmediately(t *testing.T) {
	ctx := context.Background()
	imports, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "A"})

	outcome, err := imports.Stage(ctx, []byte(`[{"id":"x","title":"X","content":""},{"id":"y","title":"Y","content":""}]`))
	require.NoError(t, err)
	require.Empty(t, outcome.PendingID)
	require.Equal(t, &model.ImportResult{Imported: 2}, outcome.Result)

	snapshot := notes.Snapshot()
	require.Equal(t, []string{"x", "y", "a"}, []string{snapshot[0].ID, snapshot[1].ID, snapshot[2].ID})
}

func TestImportStageWithConflictsWaitsForConfirm(t *testing.T) {
	ctx := context.Background()
	imports, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "old"}, model.Note{ID: "b", Title: "old b"})

	outcome, err := imports.Stage(ctx, []byte(`[{"id":"a","title":"new","content":""},{"id":"b","title":"new b","content":""},{"id":"c","title":"C","content":""}]`))
	require.NoError(t, err)
	require.Nil(t, outcome.Result)
	require.NotEmpty(t, outcome.PendingID)
	require.Len(t, outcome.Conflicts, 2)
	require.Len(t, notes.Snapshot(), 2)

	pending, err := imports.Pending(outcome.PendingID)
	require.NoError(t, err)
	require.Len(t, pending.Batch, 3)

	result, err := imports.Confirm(ctx, outcome.PendingID, []model.Resolution{
		{NoteID: "a", Action: model.ActionOverwrite},
		{NoteID: "b", Action: model.ActionSaveAsNew},
	})
	require.NoError(t, err)
	require.Equal(t, model.ImportResult{Imported: 2, Overwritten: 1}, result)
	require.Len(t, notes.Snapshot(), 4)

	a, err := notes.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "new", a.Title)
	b, err := notes.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "old b", b.Title)

	_, err = imports.Confirm(ctx, outcome.PendingID, nil)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestImportConfirmWithoutResolutionsSkipsConflicts(t *testing.T) {
	ctx := context.Background()
	imports, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "old"})

	outcome, err := imports.Stage(ctx, []byte(`[{"id":"a","title":"new","content":""}]`))
	require.NoError(t, err)
	result, err := imports.Confirm(ctx, outcome.PendingID, nil)
	require.NoError(t, err)
	require.Equal(t, model.ImportResult{Skipped: 1}, result)
	require.Equal(t, "old", notes.Snapshot()[0].Title)
}

func TestImportCancel(t *testing.T) {
	ctx := context.Background()
	imports, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "old"})

	outcome, err := imports.Stage(ctx, []byte(`[{"id":"a","title":"new","content":""}]`))
	require.NoError(t, err)
	require.NoError(t, imports.Cancel(outcome.PendingID))
	require.ErrorIs(t, imports.Cancel(outcome.PendingID), appErr.ErrNotFound)
	_, err = imports.Pending(outcome.PendingID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestImportValidationFailsFastWithoutMutation(t *testing.T) {
	ctx := context.Background()
	imports, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "old"})

	outcome, err := imports.Stage(ctx, []byte(`[{"id":"x","title":"ok","content":""},{"id":"y","content":"no title"}]`))
	require.ErrorIs(t, err, appErr.ErrImportMissingFields)
	require.Nil(t, outcome)
	require.Equal(t, []model.Note{{ID: "a", Title: "old"}}, notes.Snapshot())
}

func TestImportFastPathSafety(t *testing.T) {
	ctx := context.Background()
	imports, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "old"})

	result, err := imports.Import(ctx, []model.Note{{ID: "a", Title: "new"}}, nil)
	require.NoError(t, err)
	require.Equal(t, model.ImportResult{Skipped: 1}, result)
	require.Equal(t, []model.Note{{ID: "a", Title: "old"}}, notes.Snapshot())
}

func TestExportService(t *testing.T) {
	ctx := context.Background()
	_, notes := newTestImportService(t)
	seed(t, notes, model.Note{ID: "a", Title: "A"}, model.Note{ID: "b", Title: "B"}, model.Note{ID: "c", Title: "C"})
	exports := NewExportService(notes)

	data, name, err := exports.Export(ctx, []string{"c", "a"}, false)
	require.NoError(t, err)
	require.Regexp(t, `^jotty-notes-\d{4}-\d{2}-\d{2}\.json$`, name)

	imports := NewImportService(notes, ImportConfig{})
	decoded, err := imports.Decode(data)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, []string{decoded[0].ID, decoded[1].ID})

	data, _, err = exports.Export(ctx, nil, true)
	require.NoError(t, err)
	decoded, err = imports.Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, 3)

	_, _, err = exports.Export(ctx, nil, false)
	require.ErrorIs(t, err, appErr.ErrInvalid)
	_, _, err = exports.Export(ctx, []string{"zzz"}, false)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestThemeService(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	themes := storeTheme(t, backend)
	svc := NewThemeService(themes)
	require.Equal(t, model.ThemeSystem, svc.Get())

	next, err := svc.Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, model.ThemeLight, next)
	next, err = svc.Toggle(ctx)
	require.NoError(t, err)
	require.Equal(t, model.ThemeDark, next)

	require.ErrorIs(t, svc.Set(ctx, "neon"), appErr.ErrInvalid)
	require.NoError(t, svc.Set(ctx, model.ThemeSystem))
	require.Equal(t, model.ThemeSystem, storeTheme(t, backend).Theme())
	require.Equal(t, model.ThemeDark, svc.Effective(true))
	require.Equal(t, model.ThemeLight, svc.Effective(false))
}
