package api

import (
	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/auth"
	"github.com/itsalphin/ai-study-companion/internal/coach"
	"github.com/itsalphin/ai-study-companion/internal/service"
	"github.com/itsalphin/ai-study-companion/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
	Tokens() *auth.TokenService
	Identity() *auth.IdentityResolver
	Workspaces() *service.WorkspaceService
	Profiles() *service.ProfileService
	Coach() *coach.Coach
}
