package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThemeCycle(t *testing.T) {
	require.Equal(t, ThemeDark, ThemeLight.Next())
	require.Equal(t, ThemeSystem, ThemeDark.Next())
	require.Equal(t, ThemeLight, ThemeSystem.Next())
	require.Equal(t, ThemeLight, Theme("bogus").Next())
	require.False(t, Theme("bogus").Valid())
}

func TestThemeEffective(t *testing.T) {
	require.Equal(t, ThemeDark, ThemeDark.Effective(false))
	require.Equal(t, ThemeLight, ThemeLight.Effective(true))
	require.Equal(t, ThemeDark, ThemeSystem.Effective(true))
	require.Equal(t, ThemeLight, ThemeSystem.Effective(false))
}

func TestResolutionSetDefaultsToSkip(t *testing.T) {
	set := NewResolutionSet([]Resolution{
		{NoteID: "a", Action: ActionOverwrite},
		{NoteID: "b", Action: "merge"},
	})
	require.Equal(t, ActionOverwrite, set.Action("a"))
	require.Equal(t, ActionSkip, set.Action("b"))
	require.Equal(t, ActionSkip, set.Action("missing"))
}

func TestParseResolutionAction(t *testing.T) {
	for in, want := range map[string]ResolutionAction{
		"overwrite":   ActionOverwrite,
		"saveAsNew":   ActionSaveAsNew,
		"save-as-new": ActionSaveAsNew,
		" SKIP ":      ActionSkip,
	} {
		got, ok := ParseResolutionAction(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}
	_, ok := ParseResolutionAction("merge")
	require.False(t, ok)
}

func TestNotePatchApply(t *testing.T) {
	note := Note{ID: "a", Title: "old", Content: "body", Color: DefaultNoteColor}
	title := "new"
	patch := NotePatch{Title: &title}
	require.False(t, patch.Empty())
	patch.Apply(&note)
	require.Equal(t, "new", note.Title)
	require.Equal(t, "body", note.Content)
	require.True(t, NotePatch{}.Empty())
}

func TestImportResultTotals(t *testing.T) {
	r := ImportResult{Imported: 2, Overwritten: 1, Skipped: 3}
	require.Equal(t, 6, r.Total())
	require.True(t, r.Changed())
	require.False(t, ImportResult{Skipped: 4}.Changed())
}
