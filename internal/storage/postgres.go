package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itsalphin/ai-study-companion/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- UserRepository ---

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, username, email, full_name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash, user.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUserByID(ctx context.Context, id string) (*internal.User, error) {
	return p.scanUser(p.pool.QueryRow(ctx, `SELECT id, username, email, full_name, password_hash, created_at FROM users WHERE id = $1`, id))
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	return p.scanUser(p.pool.QueryRow(ctx, `SELECT id, username, email, full_name, password_hash, created_at FROM users WHERE email = $1`, email))
}

func (p *PostgresStorage) scanUser(row pgx.Row) (*internal.User, error) {
	var u internal.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) ResolveEmail(ctx context.Context, username string) (string, error) {
	row := p.pool.QueryRow(ctx, `SELECT email FROM users WHERE username = $1`, username)
	var email string
	if err := row.Scan(&email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return email, nil
}

// --- WorkspaceRepository ---

func (p *PostgresStorage) LoadWorkspace(ctx context.Context, userID string) (internal.Workspace, error) {
	ws := internal.DefaultWorkspace()

	if profile, err := p.GetProfile(ctx, userID); err == nil {
		ws.ExamMode = profile.ExamMode
		ws.ActiveTimer = profile.ActiveTimer
	} else if !errors.Is(err, ErrProfileNotFound) {
		return ws, err
	}

	rows, err := p.pool.Query(ctx, `SELECT id, session_date, created_at, subject, duration_seconds, source FROM sessions WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return ws, err
	}
	defer rows.Close()
	for rows.Next() {
		var s internal.StudySession
		if err := rows.Scan(&s.ID, &s.Date, &s.CreatedAt, &s.Subject, &s.DurationSeconds, &s.Source); err != nil {
			return ws, err
		}
		s.UserID = userID
		ws.Sessions = append(ws.Sessions, s)
	}

	testRows, err := p.pool.Query(ctx, `SELECT id, test_date, created_at, subject, marks_scored, marks_total, duration_minutes FROM test_logs WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return ws, err
	}
	defer testRows.Close()
	for testRows.Next() {
		var t internal.TestLog
		if err := testRows.Scan(&t.ID, &t.Date, &t.CreatedAt, &t.Subject, &t.MarksScored, &t.MarksTotal, &t.DurationMinutes); err != nil {
			return ws, err
		}
		t.UserID = userID
		ws.TestLogs = append(ws.TestLogs, t)
	}

	dailyRows, err := p.pool.Query(ctx, `SELECT log_date, wake_up, sleep_time, mood, study_intervals, break_intervals FROM daily_logs WHERE user_id = $1 ORDER BY log_date`, userID)
	if err != nil {
		return ws, err
	}
	defer dailyRows.Close()
	for dailyRows.Next() {
		var date string
		var log internal.DailyLog
		var study, brk []byte
		if err := dailyRows.Scan(&date, &log.WakeUp, &log.SleepTime, &log.Mood, &study, &brk); err != nil {
			return ws, err
		}
		_ = json.Unmarshal(study, &log.StudyIntervals)
		_ = json.Unmarshal(brk, &log.BreakIntervals)
		ws.DailyLogs[date] = log
	}

	noteRows, err := p.pool.Query(ctx, `SELECT note_date, learned, mistakes, tomorrow_goal FROM notes WHERE user_id = $1 ORDER BY note_date`, userID)
	if err != nil {
		return ws, err
	}
	defer noteRows.Close()
	for noteRows.Next() {
		var date string
		var n internal.Note
		if err := noteRows.Scan(&date, &n.Learned, &n.Mistakes, &n.TomorrowGoal); err != nil {
			return ws, err
		}
		ws.Notes[date] = n
	}

	return ws, nil
}

// ReplaceWorkspace swaps every sub-collection wholesale inside one
// transaction: delete all rows for the user, insert the snapshot's rows.
// Concurrent clients on the same account clobber each other here; the
// product assumes a single active client.
func (p *PostgresStorage) ReplaceWorkspace(ctx context.Context, userID string, ws internal.Workspace) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Upsert so the mirror still lands when signup's profile write was lost.
	_, err = tx.Exec(ctx, `INSERT INTO profiles (user_id, username, exam_mode, theme, active_timer) VALUES ($1, '', $2, 'light', $3)
		ON CONFLICT (user_id) DO UPDATE SET exam_mode = EXCLUDED.exam_mode, active_timer = EXCLUDED.active_timer`,
		userID, ws.ExamMode, marshalTimer(ws.ActiveTimer))
	if err != nil {
		return err
	}

	for _, table := range []string{"sessions", "test_logs", "daily_logs", "notes"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE user_id = $1`, userID); err != nil {
			return err
		}
	}

	for _, s := range ws.Sessions {
		if s.DurationSeconds <= 0 {
			continue
		}
		_, err := tx.Exec(ctx, `INSERT INTO sessions (id, user_id, session_date, created_at, subject, duration_seconds, source) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, userID, s.Date, s.CreatedAt, s.Subject, s.DurationSeconds, s.Source)
		if err != nil {
			return err
		}
	}

	for _, t := range ws.TestLogs {
		if t.MarksTotal <= 0 || t.DurationMinutes <= 0 || t.MarksScored < 0 || t.MarksScored > t.MarksTotal {
			continue
		}
		_, err := tx.Exec(ctx, `INSERT INTO test_logs (id, user_id, test_date, created_at, subject, marks_scored, marks_total, duration_minutes) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.ID, userID, t.Date, t.CreatedAt, t.Subject, t.MarksScored, t.MarksTotal, t.DurationMinutes)
		if err != nil {
			return err
		}
	}

	for date, log := range ws.DailyLogs {
		study, _ := json.Marshal(log.StudyIntervals)
		brk, _ := json.Marshal(log.BreakIntervals)
		_, err := tx.Exec(ctx, `INSERT INTO daily_logs (user_id, log_date, wake_up, sleep_time, mood, study_intervals, break_intervals) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID, date, log.WakeUp, log.SleepTime, log.Mood, study, brk)
		if err != nil {
			return err
		}
	}

	for date, note := range ws.Notes {
		_, err := tx.Exec(ctx, `INSERT INTO notes (user_id, note_date, learned, mistakes, tomorrow_goal) VALUES ($1, $2, $3, $4, $5)`,
			userID, date, note.Learned, note.Mistakes, note.TomorrowGoal)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func marshalTimer(timer *internal.ActiveTimer) []byte {
	if timer == nil {
		return nil
	}
	raw, err := json.Marshal(timer)
	if err != nil {
		return nil
	}
	return raw
}

func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.Profile, error) {
	row := p.pool.QueryRow(ctx, `SELECT user_id, username, exam_mode, theme, active_timer FROM profiles WHERE user_id = $1`, userID)
	var profile internal.Profile
	var timer []byte
	if err := row.Scan(&profile.UserID, &profile.Username, &profile.ExamMode, &profile.Theme, &timer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if len(timer) > 0 {
		var t internal.ActiveTimer
		if err := json.Unmarshal(timer, &t); err == nil {
			profile.ActiveTimer = &t
		}
	}
	return &profile, nil
}

func (p *PostgresStorage) UpsertProfile(ctx context.Context, profile *internal.Profile) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO profiles (user_id, username, exam_mode, theme, active_timer) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username, exam_mode = EXCLUDED.exam_mode, theme = EXCLUDED.theme, active_timer = EXCLUDED.active_timer`,
		profile.UserID, profile.Username, profile.ExamMode, profile.Theme, marshalTimer(profile.ActiveTimer))
	if err != nil {
		p.logger.Errorf("failed to upsert profile: %v", err)
		return err
	}
	return nil
}

// --- Compile-time assertions ---
var _ WorkspaceRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
