package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seedDay(t *testing.T, svc *WorkspaceService) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.AddSession(ctx, testUser, &SessionRequest{Subject: "Math", DurationSeconds: 7200})
	assert.NoError(t, err)
	_, err = svc.SaveDailyLog(ctx, testUser, &DailyLogRequest{
		Date:           "2025-03-10",
		WakeUp:         "06:00",
		SleepTime:      "23:00",
		Mood:           "focused",
		BreakIntervals: []IntervalRequest{{Start: "08:00", End: "08:30"}},
	})
	assert.NoError(t, err)
}

func TestDashboardSummary(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)

	summary, err := svc.Dashboard(context.Background(), testUser)
	assert.NoError(t, err)

	assert.Equal(t, "2025-03-10", summary.Date)
	assert.Equal(t, 2.0, summary.StudyHours)
	assert.Equal(t, 7.0, summary.SleepHours)
	assert.Equal(t, 0.5, summary.BreakHours)
	assert.Equal(t, "focused", summary.Mood)
	assert.Equal(t, 1, summary.Streak)
	// study 30 + sleep 25 + break ratio 0.25 (20) + one subject (4)
	assert.Equal(t, 79, summary.ProductivityScore)
	assert.Len(t, summary.WeeklySeries, 7)
	assert.Equal(t, 2.0, summary.SubjectTotals["Math"])
	assert.Equal(t, 0, summary.TimerElapsed)
}

func TestDashboardFallsBackToLoggedStudyHours(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SaveDailyLog(context.Background(), testUser, &DailyLogRequest{
		Date:           "2025-03-10",
		StudyIntervals: []IntervalRequest{{Start: "06:00", End: "08:00"}},
	})
	assert.NoError(t, err)

	summary, err := svc.Dashboard(context.Background(), testUser)
	assert.NoError(t, err)
	assert.Equal(t, 2.0, summary.StudyHours)
}

func TestInsightsSummary(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)

	insights, err := svc.Insights(context.Background(), testUser)
	assert.NoError(t, err)

	assert.Equal(t, 30, insights.Consistency.Days)
	assert.Equal(t, 1, insights.Consistency.ActiveDays)
	assert.Equal(t, "Math", insights.SubjectBalance.DominantSubject)
	assert.Len(t, insights.MonthlySeries, 6)
	assert.Len(t, insights.Heatmap, 35)
	assert.Len(t, insights.FocusWindow.Breakdown, 4)
	assert.Equal(t, "up", insights.Trend.Direction)
}

func TestCoachContext(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)
	ctx := context.Background()

	_, err := svc.SetExamMode(ctx, testUser, &ExamModeRequest{ExamMode: "NEET"})
	assert.NoError(t, err)
	_, err = svc.AddTestLog(ctx, testUser, &TestLogRequest{Subject: "Biology", MarksScored: 80, MarksTotal: 100, DurationMinutes: 60})
	assert.NoError(t, err)

	coachCtx, err := svc.CoachContext(ctx, testUser, "session-token")
	assert.NoError(t, err)
	assert.Equal(t, "alphin", coachCtx.Username)
	assert.Equal(t, "NEET", coachCtx.ExamMode)
	assert.Equal(t, "session-token", coachCtx.SessionToken)
	assert.Equal(t, 1, coachCtx.Streak)
	assert.Equal(t, 2.0, coachCtx.StudyHours)
	assert.Equal(t, 7.0, coachCtx.SleepHours)
	assert.Equal(t, "focused", coachCtx.Mood)
	assert.Equal(t, 2.0, coachCtx.SubjectTotals["Math"])
	assert.Equal(t, 1, coachCtx.TestCount)
	assert.Equal(t, 80.0, coachCtx.TestAverage)
}

func TestBackupPayload(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)

	payload, err := svc.Backup(context.Background(), testUser, "dark")
	assert.NoError(t, err)
	assert.Equal(t, "AI Study Companion", payload.App)
	assert.Equal(t, 1, payload.BackupVersion)
	assert.NotEmpty(t, payload.ExportedAt)
	assert.Equal(t, "alphin", payload.Session.Username)
	assert.Equal(t, "dark", payload.SelectedTheme)
	assert.Len(t, payload.Data.Sessions, 1)

	// unknown themes collapse to light
	light, err := svc.Backup(context.Background(), testUser, "neon")
	assert.NoError(t, err)
	assert.Equal(t, "light", light.SelectedTheme)
}
