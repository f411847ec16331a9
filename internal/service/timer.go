package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

// Timer state transitions. Elapsed time is always derived from the absolute
// start timestamp plus previously accumulated seconds; pausing folds the
// running span into AccumulatedSeconds and clears StartedAt, so display
// polling can never drift.

func TimerElapsedSeconds(timer *internal.ActiveTimer, now time.Time) int {
	if timer == nil {
		return 0
	}
	elapsed := timer.AccumulatedSeconds
	if timer.IsRunning && timer.StartedAt != "" {
		if started, err := time.Parse(time.RFC3339, timer.StartedAt); err == nil {
			if span := int(now.Sub(started).Seconds()); span > 0 {
				elapsed += span
			}
		}
	}
	return elapsed
}

func (s *WorkspaceService) StartTimer(ctx context.Context, user *internal.User, req *TimerStartRequest) (*internal.ActiveTimer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ValidationError(err.Error())
	}
	subject := req.Subject
	if subject == "" {
		subject = "General"
	}
	timer := &internal.ActiveTimer{
		Subject:   subject,
		IsRunning: true,
		StartedAt: s.now().Format(time.RFC3339),
	}
	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		ws.ActiveTimer = timer
		return ws
	})
	return timer, err
}

func (s *WorkspaceService) PauseTimer(ctx context.Context, user *internal.User) (*internal.ActiveTimer, error) {
	var paused *internal.ActiveTimer
	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		if ws.ActiveTimer == nil || !ws.ActiveTimer.IsRunning {
			paused = ws.ActiveTimer
			return ws
		}
		paused = &internal.ActiveTimer{
			Subject:            ws.ActiveTimer.Subject,
			IsRunning:          false,
			AccumulatedSeconds: TimerElapsedSeconds(ws.ActiveTimer, s.now()),
		}
		ws.ActiveTimer = paused
		return ws
	})
	if err != nil {
		return nil, err
	}
	if paused == nil {
		return nil, internal.ValidationError("no active timer")
	}
	return paused, nil
}

func (s *WorkspaceService) ResumeTimer(ctx context.Context, user *internal.User) (*internal.ActiveTimer, error) {
	var resumed *internal.ActiveTimer
	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		if ws.ActiveTimer == nil || ws.ActiveTimer.IsRunning {
			resumed = ws.ActiveTimer
			return ws
		}
		resumed = &internal.ActiveTimer{
			Subject:            ws.ActiveTimer.Subject,
			IsRunning:          true,
			StartedAt:          s.now().Format(time.RFC3339),
			AccumulatedSeconds: ws.ActiveTimer.AccumulatedSeconds,
		}
		ws.ActiveTimer = resumed
		return ws
	})
	if err != nil {
		return nil, err
	}
	if resumed == nil {
		return nil, internal.ValidationError("no active timer")
	}
	return resumed, nil
}

// StopTimer closes the live timer and records the elapsed time as a session
// when anything accumulated.
func (s *WorkspaceService) StopTimer(ctx context.Context, user *internal.User) (*internal.StudySession, error) {
	now := s.now()
	var recorded *internal.StudySession
	var hadTimer bool
	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		if ws.ActiveTimer == nil {
			return ws
		}
		hadTimer = true
		elapsed := TimerElapsedSeconds(ws.ActiveTimer, now)
		if elapsed > 0 {
			session := internal.StudySession{
				ID:              uuid.NewString(),
				UserID:          user.ID,
				Date:            timeutil.DateKey(now),
				CreatedAt:       now.Format(time.RFC3339),
				Subject:         ws.ActiveTimer.Subject,
				DurationSeconds: elapsed,
				Source:          internal.SourceTimer,
			}
			sessions := make([]internal.StudySession, 0, len(ws.Sessions)+1)
			sessions = append(sessions, ws.Sessions...)
			ws.Sessions = append(sessions, session)
			recorded = &session
		}
		ws.ActiveTimer = nil
		return ws
	})
	if err != nil {
		return nil, err
	}
	if !hadTimer {
		return nil, internal.ValidationError("no active timer")
	}
	return recorded, nil
}
