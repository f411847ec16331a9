package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/auth"
	"github.com/itsalphin/ai-study-companion/internal/coach"
	"github.com/itsalphin/ai-study-companion/internal/service"
	"github.com/itsalphin/ai-study-companion/internal/storage"
	syncer "github.com/itsalphin/ai-study-companion/internal/sync"
)

type noopLogger struct{}

func (noopLogger) Info(args ...interface{})                  {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Warn(args ...interface{})                  {}
func (noopLogger) Warnf(format string, args ...interface{})  {}
func (noopLogger) Error(args ...interface{})                 {}
func (noopLogger) Errorf(format string, args ...interface{}) {}
func (noopLogger) Debug(args ...interface{})                 {}
func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Fatal(args ...interface{})                 {}
func (noopLogger) Fatalf(format string, args ...interface{}) {}

type testApp struct {
	logger     internal.Logger
	users      storage.UserRepository
	tokens     *auth.TokenService
	identity   *auth.IdentityResolver
	workspaces *service.WorkspaceService
	profiles   *service.ProfileService
	coach      *coach.Coach
}

func (a *testApp) Logger() internal.Logger               { return a.logger }
func (a *testApp) Users() storage.UserRepository         { return a.users }
func (a *testApp) Tokens() *auth.TokenService            { return a.tokens }
func (a *testApp) Identity() *auth.IdentityResolver      { return a.identity }
func (a *testApp) Workspaces() *service.WorkspaceService { return a.workspaces }
func (a *testApp) Profiles() *service.ProfileService     { return a.profiles }
func (a *testApp) Coach() *coach.Coach                   { return a.coach }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := noopLogger{}
	store, err := storage.NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "workspaces.json"),
		filepath.Join(dir, "profiles.json"),
		logger,
	)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := syncer.NewSyncer(store, logger, 10*time.Millisecond)
	a := &testApp{
		logger:     logger,
		users:      store,
		tokens:     auth.NewTokenService("test-secret", time.Hour),
		identity:   auth.NewIdentityResolver(store, logger),
		workspaces: service.NewWorkspaceService(s, logger),
		profiles:   service.NewProfileService(store, logger),
		coach:      coach.New(coach.NewMemoryStore()),
	}
	return NewRouter(a)
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(rec, req)
	return rec
}

func signupAndLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	rec := doJSON(r, "POST", "/auth/signup", "", `{"username":"alphin","email":"alphin@example.com","password":"supersecret1"}`)
	assert.Equal(t, 200, rec.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestSignupAndLoginFlow(t *testing.T) {
	r := setupRouter(t)
	signupAndLogin(t, r)

	// login by email
	rec := doJSON(r, "POST", "/auth/login", "", `{"identifier":"alphin@example.com","password":"supersecret1"}`)
	assert.Equal(t, 200, rec.Code)

	// login by username
	rec = doJSON(r, "POST", "/auth/login", "", `{"identifier":"alphin","password":"supersecret1"}`)
	assert.Equal(t, 200, rec.Code)

	// wrong password
	rec = doJSON(r, "POST", "/auth/login", "", `{"identifier":"alphin","password":"wrong-password"}`)
	assert.Equal(t, 401, rec.Code)

	// unknown username
	rec = doJSON(r, "POST", "/auth/login", "", `{"identifier":"ghost","password":"whatever123"}`)
	assert.Equal(t, 401, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	r := setupRouter(t)

	// bad email
	rec := doJSON(r, "POST", "/auth/signup", "", `{"username":"alphin","email":"nope","password":"supersecret1"}`)
	assert.Equal(t, 400, rec.Code)

	// short password
	rec = doJSON(r, "POST", "/auth/signup", "", `{"username":"alphin","email":"a@example.com","password":"short"}`)
	assert.Equal(t, 400, rec.Code)

	// duplicate email
	rec = doJSON(r, "POST", "/auth/signup", "", `{"username":"alphin","email":"a@example.com","password":"supersecret1"}`)
	assert.Equal(t, 200, rec.Code)
	rec = doJSON(r, "POST", "/auth/signup", "", `{"username":"other","email":"a@example.com","password":"supersecret1"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/api/workspace", "/api/dashboard", "/api/insights", "/api/me"} {
		rec := doJSON(r, "GET", path, "", "")
		assert.Equal(t, 401, rec.Code, path)
	}

	rec := doJSON(r, "GET", "/api/workspace", "garbage-token", "")
	assert.Equal(t, 401, rec.Code)
}

func TestPostSessionAndDashboard(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "POST", "/api/sessions", token, `{"subject":"Math","durationSeconds":7200}`)
	assert.Equal(t, 200, rec.Code)

	// invalid duration rejected
	rec = doJSON(r, "POST", "/api/sessions", token, `{"subject":"Math","durationSeconds":0}`)
	assert.Equal(t, 400, rec.Code)

	rec = doJSON(r, "GET", "/api/dashboard", token, "")
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Data struct {
			StudyHours   float64 `json:"studyHours"`
			Streak       int     `json:"streak"`
			WeeklySeries []any   `json:"weeklySeries"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2.0, resp.Data.StudyHours)
	assert.Equal(t, 1, resp.Data.Streak)
	assert.Len(t, resp.Data.WeeklySeries, 7)
}

func TestDeleteSession(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "POST", "/api/sessions", token, `{"durationSeconds":600}`)
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Data internal.StudySession `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(r, "DELETE", "/api/sessions/"+resp.Data.ID, token, "")
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "GET", "/api/workspace", token, "")
	assert.Equal(t, 200, rec.Code)
	var ws struct {
		Data internal.Workspace `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))
	assert.Empty(t, ws.Data.Sessions)
}

func TestTestLogEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "POST", "/api/tests", token, `{"subject":"Physics","marksScored":72,"marksTotal":90,"durationMinutes":60}`)
	assert.Equal(t, 200, rec.Code)

	// scored above total rejected
	rec = doJSON(r, "POST", "/api/tests", token, `{"marksScored":95,"marksTotal":90,"durationMinutes":60}`)
	assert.Equal(t, 400, rec.Code)

	// zero total rejected
	rec = doJSON(r, "POST", "/api/tests", token, `{"marksScored":0,"marksTotal":0,"durationMinutes":60}`)
	assert.Equal(t, 400, rec.Code)
}

func TestDailyLogAndNoteEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "PUT", "/api/daily-logs", token,
		`{"date":"2025-03-10","wakeUp":"06:00","sleepTime":"23:00","studyStart":"06:00","studyEnd":"08:00"}`)
	assert.Equal(t, 200, rec.Code)
	var logResp struct {
		Data internal.DailyLog `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &logResp))
	assert.Len(t, logResp.Data.StudyIntervals, 1)

	// missing date rejected
	rec = doJSON(r, "PUT", "/api/daily-logs", token, `{"wakeUp":"06:00"}`)
	assert.Equal(t, 400, rec.Code)

	rec = doJSON(r, "PUT", "/api/notes", token, `{"date":"2025-03-10","learned":"rotational motion"}`)
	assert.Equal(t, 200, rec.Code)
}

func TestExamModeEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "GET", "/api/exam-modes", token, "")
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "PUT", "/api/exam-mode", token, `{"examMode":"UPSC"}`)
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "PUT", "/api/exam-mode", token, `{"examMode":"SAT"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestTimerEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "POST", "/api/timer/start", token, `{"subject":"Math"}`)
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "POST", "/api/timer/pause", token, "")
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "POST", "/api/timer/resume", token, "")
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "POST", "/api/timer/stop", token, "")
	assert.Equal(t, 200, rec.Code)

	// stopping again without a timer fails
	rec = doJSON(r, "POST", "/api/timer/stop", token, "")
	assert.Equal(t, 400, rec.Code)

	// bodyless start defaults the subject
	rec = doJSON(r, "POST", "/api/timer/start", token, "")
	assert.Equal(t, 200, rec.Code)
}

func TestCoachEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "GET", "/api/coach/greeting", token, "")
	assert.Equal(t, 200, rec.Code)
	var greeting struct {
		Data struct {
			Header struct {
				Text string `json:"text"`
			} `json:"header"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &greeting))
	assert.Contains(t, greeting.Data.Header.Text, "alphin")

	rec = doJSON(r, "POST", "/api/coach/plan", token, `{"input":"revise thermodynamics"}`)
	assert.Equal(t, 200, rec.Code)
	var plan struct {
		Data struct {
			Blocks             []any  `json:"blocks"`
			UserContextApplied string `json:"user_context_applied"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Len(t, plan.Data.Blocks, 6)
	assert.Contains(t, plan.Data.UserContextApplied, "revise thermodynamics")
}

func TestBackupEndpoint(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "GET", "/api/workspace/backup?theme=dark", token, "")
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var payload struct {
		App           string `json:"app"`
		BackupVersion int    `json:"backupVersion"`
		SelectedTheme string `json:"selectedTheme"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "AI Study Companion", payload.App)
	assert.Equal(t, 1, payload.BackupVersion)
	assert.Equal(t, "dark", payload.SelectedTheme)
}

func TestThemeEndpoints(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	rec := doJSON(r, "PUT", "/api/profile/theme", token, `{"theme":"dark"}`)
	assert.Equal(t, 200, rec.Code)

	rec = doJSON(r, "PUT", "/api/profile/theme", token, `{"theme":"neon"}`)
	assert.Equal(t, 400, rec.Code)

	rec = doJSON(r, "GET", "/api/profile", token, "")
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Data internal.Profile `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dark", resp.Data.Theme)
}

func TestSignupCreatesProfile(t *testing.T) {
	r := setupRouter(t)
	token := signupAndLogin(t, r)

	// profile exists before any theme or exam-mode write
	rec := doJSON(r, "GET", "/api/profile", token, "")
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Data internal.Profile `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alphin", resp.Data.Username)
	assert.Equal(t, "JEE", resp.Data.ExamMode)
	assert.Equal(t, "light", resp.Data.Theme)
}

func TestSignupWithExamMode(t *testing.T) {
	r := setupRouter(t)

	rec := doJSON(r, "POST", "/auth/signup", "", `{"username":"priya","email":"priya@example.com","password":"supersecret1","examMode":"UPSC"}`)
	assert.Equal(t, 200, rec.Code)
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(r, "GET", "/api/workspace", resp.Data.Token, "")
	assert.Equal(t, 200, rec.Code)
	var ws struct {
		Data internal.Workspace `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ws))
	assert.Equal(t, "UPSC", ws.Data.ExamMode)

	rec = doJSON(r, "POST", "/auth/signup", "", `{"username":"rahul","email":"rahul@example.com","password":"supersecret1","examMode":"SAT"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := setupRouter(t)
	rec := doJSON(r, "GET", "/healthz", "", "")
	assert.Equal(t, 200, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
