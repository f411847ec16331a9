package storage

import (
	"context"
	"errors"

	"github.com/itsalphin/ai-study-companion/internal"
)

var (
	ErrUserNotFound    = errors.New("storage: user not found")
	ErrProfileNotFound = errors.New("storage: profile not found")
)

// WorkspaceRepository persists whole workspace snapshots. ReplaceWorkspace
// is last-write-wins: each sub-collection is fully replaced, never diffed.
type WorkspaceRepository interface {
	LoadWorkspace(ctx context.Context, userID string) (internal.Workspace, error)
	ReplaceWorkspace(ctx context.Context, userID string, ws internal.Workspace) error
	GetProfile(ctx context.Context, userID string) (*internal.Profile, error)
	UpsertProfile(ctx context.Context, profile *internal.Profile) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *internal.User) error
	GetUserByID(ctx context.Context, id string) (*internal.User, error)
	GetUserByEmail(ctx context.Context, email string) (*internal.User, error)
	// ResolveEmail maps a username onto its login email; ErrUserNotFound
	// when the username is unknown.
	ResolveEmail(ctx context.Context, username string) (string, error)
}
