package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/auth"
	"github.com/itsalphin/ai-study-companion/internal/service"
	"github.com/itsalphin/ai-study-companion/internal/storage"
)

type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	ExamMode string `json:"examMode" binding:"omitempty,oneof=JEE NEET UPSC CA"`
}

type LoginRequest struct {
	// Identifier is a username or an email; anything containing "@" is
	// treated as an email.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

func summarize(user *internal.User) UserSummary {
	return UserSummary{ID: user.ID, Username: user.Username, Email: user.Email, FullName: user.FullName}
}

func PostSignup(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body SignupRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid signup request")
			return
		}

		email := auth.NormalizeEmail(body.Email)
		username := auth.NormalizeUsername(body.Username)

		if _, err := app.Users().GetUserByEmail(c.Request.Context(), email); err == nil {
			HandleError(c, app.Logger(), errors.New(email), 400, "Email already registered")
			return
		} else if !errors.Is(err, storage.ErrUserNotFound) {
			HandleError(c, app.Logger(), err, 500, "Failed to check existing account")
			return
		}

		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to hash password")
			return
		}

		user := &internal.User{
			ID:           uuid.NewString(),
			Username:     username,
			Email:        email,
			FullName:     body.FullName,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := app.Users().CreateUser(c.Request.Context(), user); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to create account")
			return
		}
		app.Identity().Remember(username, email)

		if _, err := app.Profiles().Ensure(c.Request.Context(), user); err != nil {
			app.Logger().Warnf("signup: failed to create profile for %s: %v", user.ID, err)
		}
		if body.ExamMode != "" {
			if _, err := app.Workspaces().SetExamMode(c.Request.Context(), user, &service.ExamModeRequest{ExamMode: body.ExamMode}); err != nil {
				app.Logger().Warnf("signup: failed to set exam mode for %s: %v", user.ID, err)
			}
		}

		token, err := app.Tokens().Issue(user)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to issue token")
			return
		}
		HandleSuccess(c, app.Logger(), AuthResponse{Token: token, User: summarize(user)}, nil)
	}
}

func PostLogin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body LoginRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid login request")
			return
		}

		email, err := app.Identity().ResolveEmail(c.Request.Context(), body.Identifier)
		if err != nil {
			HandleAppError(c, app.Logger(), err, "Login failed")
			return
		}

		user, err := app.Users().GetUserByEmail(c.Request.Context(), email)
		if err != nil {
			HandleError(c, app.Logger(), err, 401, "Invalid credentials")
			return
		}
		if !auth.VerifyPassword(user.PasswordHash, body.Password) {
			HandleError(c, app.Logger(), errors.New("password mismatch"), 401, "Invalid credentials")
			return
		}
		app.Identity().Remember(user.Username, user.Email)

		if _, err := app.Profiles().Ensure(c.Request.Context(), user); err != nil {
			app.Logger().Warnf("login: failed to ensure profile for %s: %v", user.ID, err)
		}
		if _, err := app.Workspaces().Pull(c.Request.Context(), user); err != nil {
			app.Logger().Warnf("login: failed to pull workspace for %s: %v", user.ID, err)
		}

		token, err := app.Tokens().Issue(user)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to issue token")
			return
		}
		HandleSuccess(c, app.Logger(), AuthResponse{Token: token, User: summarize(user)}, nil)
	}
}

func GetMe(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(*internal.User)
		HandleSuccess(c, app.Logger(), summarize(user), nil)
	}
}
