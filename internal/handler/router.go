package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/jotty/internal/middleware"
)

const importRateWindow = 500 * time.Millisecond

type RouterDeps struct {
	Notes  *NoteHandler
	Import *ImportHandler
	Export *ExportHandler
	Themes *ThemeHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/templates", deps.Notes.Templates)
	api.GET("/notes", deps.Notes.List)
	api.POST("/notes", deps.Notes.Create)
	api.GET("/notes/:id", deps.Notes.Get)
	api.PUT("/notes/:id", deps.Notes.Update)
	api.DELETE("/notes/:id", deps.Notes.Delete)
	api.POST("/notes/:id/duplicate", deps.Notes.Duplicate)
	api.POST("/notes/:id/checklist/:index", deps.Notes.ToggleChecklist)
	api.GET("/notes/:id/html", deps.Notes.HTML)

	api.POST("/export", deps.Export.Export)

	importGroup := api.Group("/import")
	importGroup.POST("", middleware.RateLimit(importRateWindow), deps.Import.Upload)
	importGroup.GET("/:pending_id", deps.Import.Pending)
	importGroup.POST("/:pending_id/confirm", deps.Import.Confirm)
	importGroup.DELETE("/:pending_id", deps.Import.Cancel)

	api.GET("/theme", deps.Themes.Get)
	api.PUT("/theme", deps.Themes.Set)
	api.POST("/theme/toggle", deps.Themes.Toggle)
}
