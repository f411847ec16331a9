package api

import (
	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal/auth"
)

// NewRouter wires every route. Everything under /api requires a valid
// bearer token.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/auth/signup", PostSignup(app))
	r.POST("/auth/login", PostLogin(app))

	protected := r.Group("/api")
	protected.Use(auth.Middleware(app.Tokens(), app.Users()))
	{
		protected.GET("/me", GetMe(app))
		protected.GET("/workspace", GetWorkspace(app))
		protected.GET("/workspace/backup", GetBackup(app))

		protected.POST("/sessions", PostSession(app))
		protected.DELETE("/sessions/:id", DeleteSession(app))

		protected.POST("/tests", PostTestLog(app))
		protected.DELETE("/tests/:id", DeleteTestLog(app))

		protected.PUT("/daily-logs", PutDailyLog(app))
		protected.PUT("/notes", PutNote(app))

		protected.GET("/exam-modes", GetExamModes(app))
		protected.PUT("/exam-mode", PutExamMode(app))

		protected.GET("/profile", GetProfile(app))
		protected.PUT("/profile/theme", PutTheme(app))

		protected.POST("/timer/start", PostTimerStart(app))
		protected.POST("/timer/pause", PostTimerPause(app))
		protected.POST("/timer/resume", PostTimerResume(app))
		protected.POST("/timer/stop", PostTimerStop(app))

		protected.GET("/dashboard", GetDashboard(app))
		protected.GET("/insights", GetInsights(app))

		protected.GET("/coach/greeting", GetGreeting(app))
		protected.POST("/coach/plan", PostPlan(app))
	}

	return r
}
