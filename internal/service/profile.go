package service

import (
	"context"
	"errors"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/exammode"
	"github.com/itsalphin/ai-study-companion/internal/storage"
)

// ProfileService manages the small per-user settings record that lives
// outside the workspace snapshot.
type ProfileService struct {
	repo   storage.WorkspaceRepository
	logger internal.Logger
}

func NewProfileService(repo storage.WorkspaceRepository, logger internal.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (p *ProfileService) Get(ctx context.Context, user *internal.User) (*internal.Profile, error) {
	profile, err := p.repo.GetProfile(ctx, user.ID)
	if errors.Is(err, storage.ErrProfileNotFound) {
		return &internal.Profile{
			UserID:   user.ID,
			Username: user.Username,
			ExamMode: exammode.Modes[0].Value,
			Theme:    "light",
		}, nil
	}
	if err != nil {
		return nil, internal.SyncError("load profile: " + err.Error())
	}
	return profile, nil
}

// Ensure materializes the profile record on signup and login so the
// workspace sync has a row to mirror exam mode and timer state into.
func (p *ProfileService) Ensure(ctx context.Context, user *internal.User) (*internal.Profile, error) {
	profile, err := p.repo.GetProfile(ctx, user.ID)
	if err == nil {
		if profile.Username == user.Username {
			return profile, nil
		}
		profile.Username = user.Username
	} else if errors.Is(err, storage.ErrProfileNotFound) {
		profile = &internal.Profile{
			UserID:   user.ID,
			Username: user.Username,
			ExamMode: exammode.Modes[0].Value,
			Theme:    "light",
		}
	} else {
		return nil, internal.SyncError("load profile: " + err.Error())
	}

	if err := p.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, internal.SyncError("save profile: " + err.Error())
	}
	return profile, nil
}

func (p *ProfileService) SetTheme(ctx context.Context, user *internal.User, theme string) (*internal.Profile, error) {
	if theme != "light" && theme != "dark" {
		return nil, internal.ValidationError("theme must be light or dark")
	}
	profile, err := p.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	profile.Theme = theme
	if err := p.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, internal.SyncError("save profile: " + err.Error())
	}
	return profile, nil
}
