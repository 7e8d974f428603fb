package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/pkg/errcode"
)

func TestNoteHandlersCRUD(t *testing.T) {
	router, notes := setupRouter(t)

	var created model.Note
	env := decode(t, doJSON(t, router, http.MethodPost, "/api/v1/notes", `{"template":"checklist","title":"Groceries"}`), &created)
	require.Equal(t, 0, env.Code)
	require.Equal(t, "Groceries", created.Title)
	require.Equal(t, model.TemplateChecklist, created.Template)
	require.Contains(t, created.Content, "- [ ]")

	var updated model.Note
	decode(t, doJSON(t, router, http.MethodPut, "/api/v1/notes/"+created.ID, `{"content":"- [ ] milk"}`), &updated)
	require.Equal(t, "- [ ] milk", updated.Content)

	var toggled model.Note
	decode(t, doJSON(t, router, http.MethodPost, "/api/v1/notes/"+created.ID+"/checklist/0", ""), &toggled)
	require.Equal(t, "- [x] milk", toggled.Content)

	var rendered map[string]string
	decode(t, doJSON(t, router, http.MethodGet, "/api/v1/notes/"+created.ID+"/html", ""), &rendered)
	require.Contains(t, rendered["html"], "checkbox")

	var copyNote model.Note
	decode(t, doJSON(t, router, http.MethodPost, "/api/v1/notes/"+created.ID+"/duplicate", ""), &copyNote)
	require.Equal(t, "Groceries (Copy)", copyNote.Title)
	require.NotEqual(t, created.ID, copyNote.ID)

	doJSON(t, router, http.MethodDelete, "/api/v1/notes/"+created.ID, "")
	require.Len(t, notes.Snapshot(), 1)

	env = decode(t, doJSON(t, router, http.MethodGet, "/api/v1/notes/"+created.ID, ""), nil)
	require.Equal(t, errcode.ErrNotFound, env.Code)
}

func TestNoteHandlersRejectBadChecklistIndex(t *testing.T) {
	router, _ := setupRouter(t)
	env := decode(t, doJSON(t, router, http.MethodPost, "/api/v1/notes/x/checklist/abc", ""), nil)
	require.Equal(t, errcode.ErrInvalid, env.Code)
}

func TestImportHandlerAppliesWithoutConflicts(t *testing.T) {
	router, notes := setupRouter(t)
	body := `[{"id":"a","title":"A","content":"x","color":"#fff","icon":"","lastEdited":1,"template":"plain"}]`

	var outcome struct {
		Result    *model.ImportResult `json:"result"`
		PendingID string              `json:"pending_id"`
	}
	decode(t, doJSON(t, router, http.MethodPost, "/api/v1/import", body), &outcome)
	require.NotNil(t, outcome.Result)
	require.Empty(t, outcome.PendingID)
	require.Equal(t, 1, outcome.Result.Imported)
	require.Len(t, notes.Snapshot(), 1)
}

func TestImportHandlerConflictFlow(t *testing.T) {
	router, notes := setupRouter(t)
	ctx := context.Background()
	_, err := notes.MergeBatch(ctx, []model.Note{{ID: "a", Title: "Old", Template: model.TemplatePlain}}, nil)
	require.NoError(t, err)

	body := `[{"id":"a","title":"New","content":"","color":"","icon":"","lastEdited":5,"template":"plain"}]`
	var outcome struct {
		PendingID string           `json:"pending_id"`
		Conflicts []model.Conflict `json:"conflicts"`
	}
	decode(t, doJSON(t, router, http.MethodPost, "/api/v1/import", body), &outcome)
	require.NotEmpty(t, outcome.PendingID)
	require.Len(t, outcome.Conflicts, 1)
	require.Equal(t, "Old", outcome.Conflicts[0].Existing.Title)

	env := decode(t, doJSON(t, router, http.MethodPost, "/api/v1/import/"+outcome.PendingID+"/confirm", `{"resolutions":[{"noteId":"a","action":"bogus"}]}`), nil)
	require.Equal(t, errcode.ErrInvalid, env.Code)

	var confirmed struct {
		Result model.ImportResult `json:"result"`
	}
	decode(t, doJSON(t, router, http.MethodPost, "/api/v1/import/"+outcome.PendingID+"/confirm", `{"resolutions":[{"noteId":"a","action":"overwrite"}]}`), &confirmed)
	require.Equal(t, model.ImportResult{Overwritten: 1}, confirmed.Result)
	require.Equal(t, "New", notes.Snapshot()[0].Title)

	env = decode(t, doJSON(t, router, http.MethodDelete, "/api/v1/import/"+outcome.PendingID, ""), nil)
	require.Equal(t, errcode.ErrNotFound, env.Code)
}

func TestImportHandlerMultipartAndValidation(t *testing.T) {
	router, notes := setupRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "notes.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(`{"id":"a"}`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	env := decode(t, resp, nil)
	require.Equal(t, errcode.ErrImportInvalidFormat, env.Code)
	require.Empty(t, notes.Snapshot())
}

func TestExportHandlerReturnsAttachment(t *testing.T) {
	router, notes := setupRouter(t)
	_, err := notes.MergeBatch(context.Background(), []model.Note{{ID: "a", Title: "A", Template: model.TemplatePlain}}, nil)
	require.NoError(t, err)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/export", `{"all":true}`)
	require.Contains(t, resp.Header().Get("Content-Disposition"), "jotty-notes-")
	var exported []model.Note
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &exported))
	require.Len(t, exported, 1)
	require.Equal(t, "a", exported[0].ID)

	env := decode(t, doJSON(t, router, http.MethodPost, "/api/v1/export", `{"ids":[]}`), nil)
	require.Equal(t, errcode.ErrInvalid, env.Code)
}

func TestThemeHandlers(t *testing.T) {
	router, _ := setupRouter(t)

	var got map[string]model.Theme
	decode(t, doJSON(t, router, http.MethodGet, "/api/v1/theme?system_dark=1", ""), &got)
	require.Equal(t, model.ThemeSystem, got["theme"])
	require.Equal(t, model.ThemeDark, got["effective"])

	decode(t, doJSON(t, router, http.MethodPost, "/api/v1/theme/toggle", ""), &got)
	require.Equal(t, model.ThemeLight, got["theme"])

	decode(t, doJSON(t, router, http.MethodPut, "/api/v1/theme", `{"theme":"dark"}`), &got)
	require.Equal(t, model.ThemeDark, got["theme"])

	env := decode(t, doJSON(t, router, http.MethodPut, "/api/v1/theme", `{"theme":"neon"}`), nil)
	require.Equal(t, errcode.ErrInvalid, env.Code)
}
