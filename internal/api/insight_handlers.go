package api

import (
	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal"
)

func GetDashboard(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		summary, err := app.Workspaces().Dashboard(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to compute dashboard")
			return
		}
		HandleSuccess(c, app.Logger(), summary, nil)
	}
}

func GetInsights(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		summary, err := app.Workspaces().Insights(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to compute insights")
			return
		}
		HandleSuccess(c, app.Logger(), summary, nil)
	}
}

// GetBackup streams a full workspace export. The client's theme rides along
// as a query param so the restore can reapply it.
func GetBackup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		theme := c.Query("theme")
		if theme == "" {
			if profile, err := app.Profiles().Get(c.Request.Context(), user); err == nil {
				theme = profile.Theme
			}
		}
		payload, err := app.Workspaces().Backup(c.Request.Context(), user, theme)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to export backup")
			return
		}
		c.Header("Content-Disposition", "attachment; filename=study-companion-backup.json")
		c.JSON(200, payload)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		profile, err := app.Profiles().Get(c.Request.Context(), user)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to load profile")
			return
		}
		HandleSuccess(c, app.Logger(), profile, nil)
	}
}

type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

func PutTheme(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)

		var body ThemeRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		profile, err := app.Profiles().SetTheme(c.Request.Context(), user, body.Theme)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to save theme")
			return
		}
		HandleSuccess(c, app.Logger(), profile, nil)
	}
}
