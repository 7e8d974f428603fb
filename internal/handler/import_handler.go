package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/pkg/errcode"
	"github.com/xxxsen/jotty/internal/pkg/response"
	"github.com/xxxsen/jotty/internal/service"
)

type ImportHandler struct {
	imports       *service.ImportService
	maxUploadSize int64
}

func NewImportHandler(imports *service.ImportService, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{imports: imports, maxUploadSize: maxUploadSize}
}

type importConfirmRequest struct {
	Resolutions []model.Resolution `json:"resolutions"`
}

// Upload accepts the export file either as a multipart "file" field or as
// the raw request body.
func (h *ImportHandler) Upload(c *gin.Context) {
	data, ok := h.readPayload(c)
	if !ok {
		return
	}
	outcome, err := h.imports.Stage(c.Request.Context(), data)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, outcome)
}

func (h *ImportHandler) readPayload(c *gin.Context) ([]byte, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			response.Error(c, errcode.ErrInvalidFile, "file is required")
			return nil, false
		}
		if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
			response.Error(c, errcode.ErrInvalidFile, "file too large (max "+formatUploadLimit(h.maxUploadSize)+")")
			return nil, false
		}
		opened, err := file.Open()
		if err != nil {
			response.Error(c, errcode.ErrInvalidFile, "failed to open file")
			return nil, false
		}
		defer opened.Close()
		data, err := io.ReadAll(opened)
		if err != nil {
			response.Error(c, errcode.ErrImportFailed, "failed to read file")
			return nil, false
		}
		return data, true
	}
	body := c.Request.Body
	if h.maxUploadSize > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadSize)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file too large (max "+formatUploadLimit(h.maxUploadSize)+")")
		return nil, false
	}
	if len(data) == 0 {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return nil, false
	}
	return data, true
}

func (h *ImportHandler) Pending(c *gin.Context) {
	pending, err := h.imports.Pending(c.Param("pending_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, pending)
}

func (h *ImportHandler) Confirm(c *gin.Context) {
	var req importConfirmRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, errcode.ErrInvalid, "invalid request")
			return
		}
	}
	for i, r := range req.Resolutions {
		action, ok := model.ParseResolutionAction(string(r.Action))
		if !ok {
			response.Error(c, errcode.ErrInvalid, "unknown resolution action: "+string(r.Action))
			return
		}
		req.Resolutions[i].Action = action
	}
	result, err := h.imports.Confirm(c.Request.Context(), c.Param("pending_id"), req.Resolutions)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"result": result})
}

func (h *ImportHandler) Cancel(c *gin.Context) {
	if err := h.imports.Cancel(c.Param("pending_id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
