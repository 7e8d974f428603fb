package merge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/jotty/internal/model"
)

func note(id, title string) model.Note {
	return model.Note{ID: id, Title: title, Content: title + " body", Color: model.DefaultNoteColor, Template: model.TemplatePlain}
}

func TestDetectConflicts(t *testing.T) {
	store := []model.Note{note("a", "old a"), note("b", "old b")}
	tests := []struct {
		name  string
		batch []model.Note
		want  []string
	}{
		{name: "empty batch", batch: nil, want: nil},
		{name: "no overlap", batch: []model.Note{note("c", "c"), note("d", "d")}, want: nil},
		{name: "batch order kept", batch: []model.Note{note("b", "new b"), note("x", "x"), note("a", "new a")}, want: []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := DetectConflicts(store, tt.batch)
			var ids []string
			for _, c := range conflicts {
				require.Equal(t, c.Incoming.ID, c.Existing.ID)
				ids = append(ids, c.Incoming.ID)
			}
			require.Equal(t, tt.want, ids)
		})
	}
}

func TestDetectConflictsPairsExistingNote(t *testing.T) {
	store := []model.Note{note("a", "old")}
	conflicts := DetectConflicts(store, []model.Note{note("a", "new")})
	require.Len(t, conflicts, 1)
	require.Equal(t, "new", conflicts[0].Incoming.Title)
	require.Equal(t, "old", conflicts[0].Existing.Title)
}

func TestDetectConflictsIsPure(t *testing.T) {
	store := []model.Note{note("a", "old"), note("b", "old b")}
	batch := []model.Note{note("a", "new"), note("c", "c")}
	storeCopy := model.CloneNotes(store)
	batchCopy := model.CloneNotes(batch)

	first := DetectConflicts(store, batch)
	second := DetectConflicts(store, batch)
	require.Equal(t, first, second)
	require.Equal(t, storeCopy, store)
	require.Equal(t, batchCopy, batch)
}

func TestDetectConflictsEmptyStore(t *testing.T) {
	require.Empty(t, DetectConflicts(nil, []model.Note{note("a", "a")}))
}
