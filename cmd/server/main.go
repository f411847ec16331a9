package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/api"
	"github.com/itsalphin/ai-study-companion/internal/auth"
	"github.com/itsalphin/ai-study-companion/internal/coach"
	"github.com/itsalphin/ai-study-companion/internal/config"
	"github.com/itsalphin/ai-study-companion/internal/service"
	"github.com/itsalphin/ai-study-companion/internal/storage"
	syncer "github.com/itsalphin/ai-study-companion/internal/sync"
)

type app struct {
	logger     internal.Logger
	users      storage.UserRepository
	tokens     *auth.TokenService
	identity   *auth.IdentityResolver
	workspaces *service.WorkspaceService
	profiles   *service.ProfileService
	coach      *coach.Coach
}

func (a *app) Logger() internal.Logger               { return a.logger }
func (a *app) Users() storage.UserRepository         { return a.users }
func (a *app) Tokens() *auth.TokenService            { return a.tokens }
func (a *app) Identity() *auth.IdentityResolver      { return a.identity }
func (a *app) Workspaces() *service.WorkspaceService { return a.workspaces }
func (a *app) Profiles() *service.ProfileService     { return a.profiles }
func (a *app) Coach() *coach.Coach                   { return a.coach }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBType == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FileUsers), 0755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FileCoach), 0755); err != nil {
		logger.Fatalf("failed to create coach state dir: %v", err)
	}

	workspaceRepo, userRepo, closer, err := storage.NewRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("JWT_SECRET not set, using development default")
		secret = "dev-only-secret"
	}

	coachStore, err := coach.NewFileStore(cfg.FileCoach, logger)
	if err != nil {
		logger.Fatalf("failed to open coach state: %v", err)
	}

	sync := syncer.NewSyncer(workspaceRepo, logger, time.Duration(cfg.SyncDebounceMS)*time.Millisecond)
	a := &app{
		logger:     logger,
		users:      userRepo,
		tokens:     auth.NewTokenService(secret, 24*time.Hour),
		identity:   auth.NewIdentityResolver(userRepo, logger),
		workspaces: service.NewWorkspaceService(sync, logger),
		profiles:   service.NewProfileService(workspaceRepo, logger),
		coach:      coach.New(coachStore),
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(a),
	}

	go func() {
		logger.Infof("server listening on %s (storage=%s)", cfg.Addr, cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := sync.Flush(ctx); err != nil {
		logger.Errorf("sync flush: %v", err)
	}
	if err := closer.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
