package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/pkg/errcode"
	"github.com/xxxsen/jotty/internal/pkg/response"
	"github.com/xxxsen/jotty/internal/pkg/textutil"
	"github.com/xxxsen/jotty/internal/render"
	"github.com/xxxsen/jotty/internal/service"
)

type NoteHandler struct {
	notes    *service.NoteService
	renderer *render.HTMLRenderer
}

func NewNoteHandler(notes *service.NoteService, renderer *render.HTMLRenderer) *NoteHandler {
	return &NoteHandler{notes: notes, renderer: renderer}
}

type noteCreateRequest struct {
	Template model.Template `json:"template"`
	model.NotePatch
}

type noteSummary struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Preview    string         `json:"preview"`
	Color      string         `json:"color"`
	Icon       string         `json:"icon"`
	Template   model.Template `json:"template"`
	LastEdited int64          `json:"lastEdited"`
	HasImage   bool           `json:"hasImage"`
}

func (h *NoteHandler) List(c *gin.Context) {
	notes := h.notes.List(c.Request.Context())
	if c.Query("full") == "1" {
		response.Success(c, notes)
		return
	}
	items := make([]noteSummary, 0, len(notes))
	for _, note := range notes {
		items = append(items, noteSummary{
			ID:         note.ID,
			Title:      textutil.Truncate(note.Title, 0),
			Preview:    render.Preview(note.Content, 0),
			Color:      note.Color,
			Icon:       note.Icon,
			Template:   note.Template,
			LastEdited: note.LastEdited,
			HasImage:   note.Image != "",
		})
	}
	response.Success(c, items)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Template == "" {
		req.Template = model.TemplatePlain
	}
	note, err := h.notes.Create(c.Request.Context(), req.Template, req.NotePatch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var patch model.NotePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	note, err := h.notes.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *NoteHandler) Duplicate(c *gin.Context) {
	note, err := h.notes.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) ToggleChecklist(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.Error(c, errcode.ErrInvalid, "invalid checklist index")
		return
	}
	note, err := h.notes.ToggleChecklistItem(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) HTML(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	out, err := h.renderer.Render(note.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": note.ID, "html": out})
}

func (h *NoteHandler) Templates(c *gin.Context) {
	response.Success(c, model.Templates())
}
