package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/jotty/internal/pkg/errcode"
	appErr "github.com/xxxsen/jotty/internal/pkg/errors"
	"github.com/xxxsen/jotty/internal/pkg/response"
)

var importErrCodes = []struct {
	err  error
	code int
}{
	{appErr.ErrImportInvalidJSON, errcode.ErrImportInvalidJSON},
	{appErr.ErrImportNotArray, errcode.ErrImportInvalidFormat},
	{appErr.ErrImportMissingFields, errcode.ErrImportInvalidFormat},
	{appErr.ErrImportTooManyNotes, errcode.ErrImportTooManyNotes},
	{appErr.ErrImportNoteTooLarge, errcode.ErrImportNoteTooLarge},
	{appErr.ErrImageTooLarge, errcode.ErrImageTooLarge},
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	for _, item := range importErrCodes {
		if errors.Is(err, item.err) {
			response.Error(c, item.code, err.Error())
			return
		}
	}
	switch {
	case appErr.IsNotFound(err):
		response.Error(c, errcode.ErrNotFound, "not found")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case appErr.IsConflict(err):
		response.Error(c, errcode.ErrConflict, "conflict")
	case appErr.IsQuota(err):
		response.Error(c, errcode.ErrStorageQuota, appErr.ErrStorageQuota.Error())
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
