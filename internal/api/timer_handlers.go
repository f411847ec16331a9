package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/service"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

func timerPayload(timer *internal.ActiveTimer) map[string]any {
	elapsed := service.TimerElapsedSeconds(timer, time.Now())
	return map[string]any{
		"timer":          timer,
		"elapsedSeconds": elapsed,
		"display":        timeutil.FormatDuration(elapsed),
	}
}

func PostTimerStart(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.TimerStartRequest
		if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		timer, err := app.Workspaces().StartTimer(c.Request.Context(), user, &body)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to start timer")
			return
		}
		HandleSuccess(c, app.Logger(), timerPayload(timer), nil)
	}
}

func PostTimerPause(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		timer, err := app.Workspaces().PauseTimer(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to pause timer")
			return
		}
		HandleSuccess(c, app.Logger(), timerPayload(timer), nil)
	}
}

func PostTimerResume(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		timer, err := app.Workspaces().ResumeTimer(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to resume timer")
			return
		}
		HandleSuccess(c, app.Logger(), timerPayload(timer), nil)
	}
}

// PostTimerStop converts the timer's elapsed study time into a session.
func PostTimerStop(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		session, err := app.Workspaces().StopTimer(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to stop timer")
			return
		}
		HandleSuccess(c, app.Logger(), session, nil)
	}
}
