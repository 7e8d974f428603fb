package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/jotty/internal/handler"
	"github.com/xxxsen/jotty/internal/kv"
	"github.com/xxxsen/jotty/internal/middleware"
	"github.com/xxxsen/jotty/internal/render"
	"github.com/xxxsen/jotty/internal/service"
	"github.com/xxxsen/jotty/internal/store"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *service.NoteService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	backend := kv.NewMemory()
	notes := store.NewNoteStore(backend)
	notes.Load(ctx)
	themes := store.NewThemeStore(backend)
	themes.Load(ctx)

	noteSvc := service.NewNoteService(notes, 0)
	renderer, err := render.NewHTMLRenderer(0)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	handler.RegisterRoutes(engine.Group("/api/v1"), handler.RouterDeps{
		Notes:  handler.NewNoteHandler(noteSvc, renderer),
		Import: handler.NewImportHandler(service.NewImportService(noteSvc, service.ImportConfig{}), 1024*1024),
		Export: handler.NewExportHandler(service.NewExportService(noteSvc)),
		Themes: handler.NewThemeHandler(service.NewThemeService(themes)),
	})
	return engine, noteSvc
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	if out != nil && env.Code == 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}
