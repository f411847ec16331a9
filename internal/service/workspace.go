package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itsalphin/ai-study-companion/internal"
	syncer "github.com/itsalphin/ai-study-companion/internal/sync"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

// WorkspaceService applies edits to a user's workspace through the syncer.
// Every mutation fully replaces one top-level workspace field; nothing is
// patched in place.
type WorkspaceService struct {
	syncer *syncer.Syncer
	logger internal.Logger
	now    func() time.Time
}

func NewWorkspaceService(s *syncer.Syncer, logger internal.Logger) *WorkspaceService {
	return &WorkspaceService{syncer: s, logger: logger, now: time.Now}
}

func (s *WorkspaceService) Syncer() *syncer.Syncer {
	return s.syncer
}

func (s *WorkspaceService) Workspace(ctx context.Context, user *internal.User) (internal.Workspace, error) {
	return s.syncer.Workspace(ctx, user.ID)
}

func (s *WorkspaceService) Pull(ctx context.Context, user *internal.User) (internal.Workspace, error) {
	return s.syncer.Pull(ctx, user.ID)
}

func (s *WorkspaceService) AddSession(ctx context.Context, user *internal.User, req *SessionRequest) (internal.StudySession, error) {
	if err := ValidateSessionRequest(req); err != nil {
		return internal.StudySession{}, err
	}

	now := s.now()
	session := internal.StudySession{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Date:            req.Date,
		CreatedAt:       now.Format(time.RFC3339),
		Subject:         req.Subject,
		DurationSeconds: req.DurationSeconds,
		Source:          req.Source,
	}
	if session.Date == "" {
		session.Date = timeutil.DateKey(now)
	}
	if session.Subject == "" {
		session.Subject = "General"
	}
	if session.Source == "" {
		session.Source = internal.SourceManual
	}

	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		sessions := make([]internal.StudySession, 0, len(ws.Sessions)+1)
		sessions = append(sessions, ws.Sessions...)
		ws.Sessions = append(sessions, session)
		return ws
	})
	return session, err
}

func (s *WorkspaceService) DeleteSession(ctx context.Context, user *internal.User, id string) error {
	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		sessions := make([]internal.StudySession, 0, len(ws.Sessions))
		for _, session := range ws.Sessions {
			if session.ID != id {
				sessions = append(sessions, session)
			}
		}
		ws.Sessions = sessions
		return ws
	})
	return err
}

func (s *WorkspaceService) AddTestLog(ctx context.Context, user *internal.User, req *TestLogRequest) (internal.TestLog, error) {
	if err := ValidateTestLogRequest(req); err != nil {
		return internal.TestLog{}, err
	}

	now := s.now()
	log := internal.TestLog{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Date:            req.Date,
		CreatedAt:       now.Format(time.RFC3339),
		Subject:         req.Subject,
		MarksScored:     req.MarksScored,
		MarksTotal:      req.MarksTotal,
		DurationMinutes: req.DurationMinutes,
	}
	if log.Date == "" {
		log.Date = timeutil.DateKey(now)
	}
	if log.Subject == "" {
		log.Subject = "General"
	}

	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		logs := make([]internal.TestLog, 0, len(ws.TestLogs)+1)
		logs = append(logs, ws.TestLogs...)
		ws.TestLogs = append(logs, log)
		return ws
	})
	return log, err
}

func (s *WorkspaceService) DeleteTestLog(ctx context.Context, user *internal.User, id string) error {
	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		logs := make([]internal.TestLog, 0, len(ws.TestLogs))
		for _, log := range ws.TestLogs {
			if log.ID != id {
				logs = append(logs, log)
			}
		}
		ws.TestLogs = logs
		return ws
	})
	return err
}

// SaveDailyLog upserts the whole entry for the date; there is at most one
// log per calendar day.
func (s *WorkspaceService) SaveDailyLog(ctx context.Context, user *internal.User, req *DailyLogRequest) (internal.DailyLog, error) {
	if err := ValidateDailyLogRequest(req); err != nil {
		return internal.DailyLog{}, err
	}
	normalized := req.toDailyLog()

	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		logs := make(map[string]internal.DailyLog, len(ws.DailyLogs)+1)
		for date, log := range ws.DailyLogs {
			logs[date] = log
		}
		logs[req.Date] = normalized
		ws.DailyLogs = logs
		return ws
	})
	return normalized, err
}

func (s *WorkspaceService) SaveNote(ctx context.Context, user *internal.User, req *NoteRequest) (internal.Note, error) {
	if err := ValidateNoteRequest(req); err != nil {
		return internal.Note{}, err
	}
	note := internal.Note{
		Learned:      req.Learned,
		Mistakes:     req.Mistakes,
		TomorrowGoal: req.TomorrowGoal,
	}

	_, err := s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		notes := make(map[string]internal.Note, len(ws.Notes)+1)
		for date, existing := range ws.Notes {
			notes[date] = existing
		}
		notes[req.Date] = note
		ws.Notes = notes
		return ws
	})
	return note, err
}

func (s *WorkspaceService) SetExamMode(ctx context.Context, user *internal.User, req *ExamModeRequest) (internal.Workspace, error) {
	if err := ValidateExamModeRequest(req); err != nil {
		return internal.Workspace{}, err
	}
	return s.syncer.Apply(ctx, user.ID, func(ws internal.Workspace) internal.Workspace {
		ws.ExamMode = req.ExamMode
		return ws
	})
}
