package service

import (
	"context"
	"time"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/analytics"
	"github.com/itsalphin/ai-study-companion/internal/coach"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

type DashboardSummary struct {
	Date              string                       `json:"date"`
	StudyHours        float64                      `json:"studyHours"`
	BreakHours        float64                      `json:"breakHours"`
	SleepHours        float64                      `json:"sleepHours"`
	Mood              string                       `json:"mood,omitempty"`
	Streak            int                          `json:"streak"`
	ProductivityScore int                          `json:"productivityScore"`
	WeeklySeries      []analytics.DayHours         `json:"weeklySeries"`
	SubjectTotals     map[string]float64           `json:"subjectTotals"`
	MostProductive    string                       `json:"mostProductive"`
	TestSummary       analytics.TestSummary        `json:"testSummary"`
	WeeklyTests       []analytics.TestDay          `json:"weeklyTests"`
	TimerElapsed      int                          `json:"timerElapsedSeconds"`
	ActiveTimer       *internal.ActiveTimer        `json:"activeTimer,omitempty"`
	SyncNotice        string                       `json:"syncNotice,omitempty"`
}

// Dashboard computes the day-level view: today's hours, streak, productivity
// score, and the 7-day rollups. Study hours prefer timed sessions and fall
// back to the day's logged study intervals when no session exists yet.
func (s *WorkspaceService) Dashboard(ctx context.Context, user *internal.User) (DashboardSummary, error) {
	ws, err := s.Workspace(ctx, user)
	if err != nil {
		return DashboardSummary{}, err
	}

	now := s.now()
	today := timeutil.DateKey(now)
	todayLog := ws.DailyLogs[today]
	week := analytics.WeeklySeries(ws.Sessions, 7, now)
	weekStart := week[0].Date

	studyHours := timeutil.ToHours(analytics.StudySecondsByDate(ws.Sessions)[today])
	if studyHours <= 0 {
		studyHours = timeutil.StudyHoursFromLog(todayLog)
	}
	breakHours := timeutil.BreakHoursFromLog(todayLog)
	sleepHours := timeutil.SleepHoursFromLog(todayLog)
	weekSubjects := analytics.SubjectTotals(ws.Sessions, weekStart)

	return DashboardSummary{
		Date:              today,
		StudyHours:        studyHours,
		BreakHours:        breakHours,
		SleepHours:        sleepHours,
		Mood:              todayLog.Mood,
		Streak:            analytics.StreakCount(ws.Sessions, now),
		ProductivityScore: analytics.ProductivityScore(studyHours, sleepHours, breakHours, len(weekSubjects)),
		WeeklySeries:      week,
		SubjectTotals:     weekSubjects,
		MostProductive:    analytics.MostProductive(week),
		TestSummary:       analytics.SummarizeTests(ws.TestLogs, weekStart),
		WeeklyTests:       analytics.WeeklyTestSeries(ws.TestLogs, 7, now),
		TimerElapsed:      TimerElapsedSeconds(ws.ActiveTimer, now),
		ActiveTimer:       ws.ActiveTimer,
		SyncNotice:        s.syncer.Notice(user.ID),
	}, nil
}

type InsightsSummary struct {
	Consistency    analytics.ConsistencySummary `json:"consistency"`
	SubjectBalance analytics.SubjectBalance     `json:"subjectBalance"`
	FocusWindow    analytics.FocusWindowSummary `json:"focusWindow"`
	SleepAlignment analytics.SleepAlignment     `json:"sleepAlignment"`
	TestEfficiency analytics.TestEfficiency     `json:"testEfficiency"`
	Trend          analytics.TrendDelta         `json:"trend"`
	MonthlySeries  []analytics.MonthSummary     `json:"monthlySeries"`
	Heatmap        []analytics.HeatmapCell      `json:"heatmap"`
}

// Insights is the 30-day behavior diagnostics block.
func (s *WorkspaceService) Insights(ctx context.Context, user *internal.User) (InsightsSummary, error) {
	ws, err := s.Workspace(ctx, user)
	if err != nil {
		return InsightsSummary{}, err
	}

	now := s.now()
	monthStart := timeutil.DateKey(now.AddDate(0, 0, -29))
	return InsightsSummary{
		Consistency:    analytics.Consistency(ws.Sessions, 30, 2, now),
		SubjectBalance: analytics.SubjectBalanceSummary(ws.Sessions, monthStart),
		FocusWindow:    analytics.FocusWindows(ws.Sessions, monthStart),
		SleepAlignment: analytics.SleepAlignmentSummary(ws.Sessions, ws.DailyLogs, 30, now),
		TestEfficiency: analytics.TestEfficiencySummary(ws.TestLogs, monthStart),
		Trend:          analytics.StudyTrendDelta(ws.Sessions, 30, now),
		MonthlySeries:  analytics.MonthlySeries(ws.Sessions, 6, now),
		Heatmap:        analytics.HeatmapData(ws.Sessions, 35, now),
	}, nil
}

// CoachContext snapshots the tracker signals the content selectors key off.
func (s *WorkspaceService) CoachContext(ctx context.Context, user *internal.User, sessionToken string) (coach.Context, error) {
	ws, err := s.Workspace(ctx, user)
	if err != nil {
		return coach.Context{}, err
	}

	now := s.now()
	today := timeutil.DateKey(now)
	todayLog := ws.DailyLogs[today]
	weekStart := timeutil.DateKey(now.AddDate(0, 0, -6))
	tests := analytics.SummarizeTests(ws.TestLogs, weekStart)

	studyHours := timeutil.ToHours(analytics.StudySecondsByDate(ws.Sessions)[today])
	if studyHours <= 0 {
		studyHours = timeutil.StudyHoursFromLog(todayLog)
	}

	return coach.Context{
		Username:      user.Username,
		ExamMode:      ws.ExamMode,
		SessionToken:  sessionToken,
		Streak:        analytics.StreakCount(ws.Sessions, now),
		StudyHours:    studyHours,
		BreakHours:    timeutil.BreakHoursFromLog(todayLog),
		SleepHours:    timeutil.SleepHoursFromLog(todayLog),
		Mood:          todayLog.Mood,
		SubjectTotals: analytics.SubjectTotals(ws.Sessions, weekStart),
		TestCount:     tests.TotalTests,
		TestAverage:   tests.AverageScore,
		TestHours:     tests.TotalHours,
	}, nil
}

const backupVersion = 1

type BackupSession struct {
	Username string `json:"username"`
}

type BackupPayload struct {
	App           string             `json:"app"`
	BackupVersion int                `json:"backupVersion"`
	ExportedAt    string             `json:"exportedAt"`
	Session       BackupSession      `json:"session"`
	SelectedTheme string             `json:"selectedTheme"`
	Data          internal.Workspace `json:"data"`
}

// Backup serializes the full workspace for download.
func (s *WorkspaceService) Backup(ctx context.Context, user *internal.User, theme string) (BackupPayload, error) {
	ws, err := s.Workspace(ctx, user)
	if err != nil {
		return BackupPayload{}, err
	}
	username := user.Username
	if username == "" {
		username = "User"
	}
	if theme != "dark" {
		theme = "light"
	}
	return BackupPayload{
		App:           "AI Study Companion",
		BackupVersion: backupVersion,
		ExportedAt:    s.now().UTC().Format(time.RFC3339),
		Session:       BackupSession{Username: username},
		SelectedTheme: theme,
		Data:          ws,
	}, nil
}
