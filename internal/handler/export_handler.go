package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/jotty/internal/pkg/errcode"
	"github.com/xxxsen/jotty/internal/pkg/response"
	"github.com/xxxsen/jotty/internal/service"
)

type ExportHandler struct {
	export *service.ExportService
}

func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

type exportRequest struct {
	IDs []string `json:"ids"`
	All bool     `json:"all"`
}

func (h *ExportHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	data, fileName, err := h.export.Export(c.Request.Context(), req.IDs, req.All)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Attachment(c, fileName, "application/json", data)
}
