package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/jotty/internal/model"
	"github.com/xxxsen/jotty/internal/pkg/errcode"
	"github.com/xxxsen/jotty/internal/pkg/response"
	"github.com/xxxsen/jotty/internal/service"
)

type ThemeHandler struct {
	themes *service.ThemeService
}

func NewThemeHandler(themes *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

type themeRequest struct {
	Theme model.Theme `json:"theme"`
}

// Get also reports the effective theme; system_dark=1 says the host prefers
// dark.
func (h *ThemeHandler) Get(c *gin.Context) {
	systemDark := c.Query("system_dark") == "1"
	response.Success(c, gin.H{
		"theme":     h.themes.Get(),
		"effective": h.themes.Effective(systemDark),
	})
}

func (h *ThemeHandler) Set(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.themes.Set(c.Request.Context(), req.Theme); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"theme": req.Theme})
}

func (h *ThemeHandler) Toggle(c *gin.Context) {
	theme, err := h.themes.Toggle(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"theme": theme})
}
