package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/jotty/internal/model"
)

func TestBuildResolutions(t *testing.T) {
	conflicts := []model.Conflict{
		{Incoming: model.Note{ID: "a"}},
		{Incoming: model.Note{ID: "b"}},
		{Incoming: model.Note{ID: "c"}},
	}

	got, err := buildResolutions(conflicts, []string{"a=overwrite", "b=save-as-new"}, "")
	require.NoError(t, err)
	require.Equal(t, []model.Resolution{
		{NoteID: "a", Action: model.ActionOverwrite},
		{NoteID: "b", Action: model.ActionSaveAsNew},
	}, got)

	got, err = buildResolutions(conflicts, []string{"b=skip"}, "overwrite")
	require.NoError(t, err)
	require.Equal(t, []model.Resolution{
		{NoteID: "a", Action: model.ActionOverwrite},
		{NoteID: "b", Action: model.ActionSkip},
		{NoteID: "c", Action: model.ActionOverwrite},
	}, got)
}

func TestBuildResolutionsRejectsBadInput(t *testing.T) {
	conflicts := []model.Conflict{{Incoming: model.Note{ID: "a"}}}

	_, err := buildResolutions(conflicts, []string{"a"}, "")
	require.Error(t, err)
	_, err = buildResolutions(conflicts, []string{"a=merge"}, "")
	require.Error(t, err)
	_, err = buildResolutions(conflicts, nil, "replace")
	require.Error(t, err)
}
