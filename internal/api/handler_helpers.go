package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 401:
		resp = response.Unauthorized(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleAppError maps a service failure onto its own status code when the
// error carries one, and falls back to 500 otherwise.
func HandleAppError(c *gin.Context, logger internal.Logger, err error, msg string) {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		requestID := c.GetString("request_id")
		logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
		c.JSON(appErr.Code, response.FromAppError(appErr))
		return
	}
	HandleError(c, logger, err, 500, msg)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}
