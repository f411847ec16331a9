package api

import (
	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/exammode"
	"github.com/itsalphin/ai-study-companion/internal/service"
)

func GetWorkspace(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		// Local snapshot first; unpushed edits inside the debounce window
		// stay visible. The store is only consulted on first access.
		ws, err := app.Workspaces().Workspace(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to load workspace")
			return
		}
		meta := map[string]any{}
		if notice := app.Workspaces().Syncer().Notice(user.ID); notice != "" {
			meta["sync_notice"] = notice
		}
		HandleSuccess(c, app.Logger(), ws, meta)
	}
}

func PostSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.SessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		session, err := app.Workspaces().AddSession(c.Request.Context(), user, &body)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to save session")
			return
		}
		HandleSuccess(c, app.Logger(), session, nil)
	}
}

func DeleteSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		if err := app.Workspaces().DeleteSession(c.Request.Context(), user, c.Param("id")); err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to delete session")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": c.Param("id")})
	}
}

func PostTestLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.TestLogRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		log, err := app.Workspaces().AddTestLog(c.Request.Context(), user, &body)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to save test log")
			return
		}
		HandleSuccess(c, app.Logger(), log, nil)
	}
}

func DeleteTestLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		if err := app.Workspaces().DeleteTestLog(c.Request.Context(), user, c.Param("id")); err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to delete test log")
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": c.Param("id")})
	}
}

func PutDailyLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.DailyLogRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		log, err := app.Workspaces().SaveDailyLog(c.Request.Context(), user, &body)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to save daily log")
			return
		}
		HandleSuccess(c, app.Logger(), log, nil)
	}
}

func PutNote(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.NoteRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		note, err := app.Workspaces().SaveNote(c.Request.Context(), user, &body)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to save note")
			return
		}
		HandleSuccess(c, app.Logger(), note, nil)
	}
}

func GetExamModes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), exammode.Modes, nil)
	}
}

func PutExamMode(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body service.ExamModeRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		ws, err := app.Workspaces().SetExamMode(c.Request.Context(), user, &body)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to switch exam mode")
			return
		}
		HandleSuccess(c, app.Logger(), ws, nil)
	}
}
