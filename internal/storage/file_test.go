package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/itsalphin/ai-study-companion/internal"
)

type testLogger struct{}

func (testLogger) Info(args ...interface{})                  {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warn(args ...interface{})                  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Error(args ...interface{})                 {}
func (testLogger) Errorf(format string, args ...interface{}) {}
func (testLogger) Debug(args ...interface{})                 {}
func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Fatal(args ...interface{})                 {}
func (testLogger) Fatalf(format string, args ...interface{}) {}

func newTestFileStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "workspaces.json"),
		filepath.Join(dir, "profiles.json"),
		testLogger{},
	)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func testUser(id string) *internal.User {
	return &internal.User{
		ID:        id,
		Username:  "user-" + id,
		Email:     id + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateAndLookupUser(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	assert.NoError(t, s.CreateUser(ctx, testUser("u1")))

	byID, err := s.GetUserByID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "user-u1", byID.Username)

	byEmail, err := s.GetUserByEmail(ctx, "u1@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	email, err := s.ResolveEmail(ctx, "user-u1")
	assert.NoError(t, err)
	assert.Equal(t, "u1@example.com", email)
}

func TestCreateUserDuplicates(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	assert.NoError(t, s.CreateUser(ctx, testUser("u1")))

	dupEmail := testUser("u2")
	dupEmail.Email = "u1@example.com"
	assert.Error(t, s.CreateUser(ctx, dupEmail))

	dupName := testUser("u3")
	dupName.Username = "user-u1"
	assert.Error(t, s.CreateUser(ctx, dupName))
}

func TestUserNotFound(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	_, err := s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.ResolveEmail(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoadWorkspaceDefaultsWhenAbsent(t *testing.T) {
	s, _ := newTestFileStorage(t)

	ws, err := s.LoadWorkspace(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, "JEE", ws.ExamMode)
	assert.Empty(t, ws.Sessions)
	assert.NotNil(t, ws.DailyLogs)
}

func TestReplaceWorkspaceRoundTrip(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	ws := internal.DefaultWorkspace()
	ws.ExamMode = "UPSC"
	ws.Sessions = []internal.StudySession{{ID: "s1", Date: "2025-03-10", Subject: "Polity", DurationSeconds: 3600}}
	ws.DailyLogs["2025-03-10"] = internal.DailyLog{WakeUp: "06:00", SleepTime: "23:00"}
	assert.NoError(t, s.ReplaceWorkspace(ctx, "u1", ws))

	loaded, err := s.LoadWorkspace(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "UPSC", loaded.ExamMode)
	assert.Len(t, loaded.Sessions, 1)
	assert.Equal(t, "06:00", loaded.DailyLogs["2025-03-10"].WakeUp)
}

func TestReplaceWorkspaceMirrorsProfile(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	assert.NoError(t, s.UpsertProfile(ctx, &internal.Profile{UserID: "u1", Username: "user-u1", ExamMode: "JEE"}))

	ws := internal.DefaultWorkspace()
	ws.ExamMode = "CA"
	ws.ActiveTimer = &internal.ActiveTimer{Subject: "Accounts", IsRunning: true}
	assert.NoError(t, s.ReplaceWorkspace(ctx, "u1", ws))

	profile, err := s.GetProfile(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "CA", profile.ExamMode)
	assert.Equal(t, "Accounts", profile.ActiveTimer.Subject)
}

func TestReplaceWorkspaceCreatesMissingProfile(t *testing.T) {
	s, _ := newTestFileStorage(t)
	ctx := context.Background()

	assert.NoError(t, s.CreateUser(ctx, testUser("u1")))

	ws := internal.DefaultWorkspace()
	ws.ExamMode = "UPSC"
	assert.NoError(t, s.ReplaceWorkspace(ctx, "u1", ws))

	profile, err := s.GetProfile(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "UPSC", profile.ExamMode)
	assert.Equal(t, "user-u1", profile.Username)
	assert.Equal(t, "light", profile.Theme)
}

func TestProfileNotFound(t *testing.T) {
	s, _ := newTestFileStorage(t)
	_, err := s.GetProfile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestClosePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	workspacesFile := filepath.Join(dir, "workspaces.json")
	profilesFile := filepath.Join(dir, "profiles.json")

	s, err := NewFileStorage(usersFile, workspacesFile, profilesFile, testLogger{})
	assert.NoError(t, err)
	ctx := context.Background()
	assert.NoError(t, s.CreateUser(ctx, testUser("u1")))
	ws := internal.DefaultWorkspace()
	ws.Sessions = []internal.StudySession{{ID: "s1", Date: "2025-03-10", DurationSeconds: 600}}
	assert.NoError(t, s.ReplaceWorkspace(ctx, "u1", ws))
	assert.NoError(t, s.Close())

	reopened, err := NewFileStorage(usersFile, workspacesFile, profilesFile, testLogger{})
	assert.NoError(t, err)
	defer reopened.Close()

	user, err := reopened.GetUserByID(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "user-u1", user.Username)

	loaded, err := reopened.LoadWorkspace(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, loaded.Sessions, 1)
}
