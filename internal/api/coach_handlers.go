package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/coach"
)

// bearerToken feeds the greeting seeds so two tabs of the same login see the
// same line within a session.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func coachContext(c *gin.Context, app App) (coach.Context, *internal.User, error) {
	user := c.MustGet("user").(*internal.User)
	ctx, err := app.Workspaces().CoachContext(c.Request.Context(), user, bearerToken(c))
	return ctx, user, err
}

func GetGreeting(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, _, err := coachContext(c, app)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to build greeting")
			return
		}
		now := time.Now()
		HandleSuccess(c, app.Logger(), map[string]any{
			"header":     app.Coach().DashboardGreeting(ctx, now),
			"tagline":    app.Coach().GreetingLine(ctx, now),
			"motivation": app.Coach().MotivationalLine(ctx, now),
		}, nil)
	}
}

type PlanRequest struct {
	Input string `json:"input"`
}

func PostPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body PlanRequest
		if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		ctx, _, err := coachContext(c, app)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Failed to build plan")
			return
		}
		plan := app.Coach().AdaptivePlan(ctx, body.Input, time.Now())
		HandleSuccess(c, app.Logger(), plan, nil)
	}
}
