package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itsalphin/ai-study-companion/internal"
)

func testLog(date, subject string, scored, total, minutes int) internal.TestLog {
	return internal.TestLog{Date: date, Subject: subject, MarksScored: scored, MarksTotal: total, DurationMinutes: minutes}
}

func TestSummarizeTests(t *testing.T) {
	logs := []internal.TestLog{
		testLog("2025-03-10", "Math", 80, 100, 60),
		testLog("2025-03-09", "Math", 40, 50, 30),
		testLog("2025-03-08", "Physics", 45, 90, 45),
		testLog("2025-03-08", "Chemistry", 10, 0, 30), // no total, skipped
	}
	summary := SummarizeTests(logs, "")
	assert.Equal(t, 3, summary.TotalTests)
	assert.Equal(t, 2.3, summary.TotalHours) // 135 min
	// percents: 80, 80, 50 -> avg 70
	assert.Equal(t, 70.0, summary.AverageScore)

	assert.Len(t, summary.SubjectStats, 2)
	assert.Equal(t, "Math", summary.SubjectStats[0].Subject)
	assert.Equal(t, 2, summary.SubjectStats[0].Tests)
	assert.Equal(t, 80.0, summary.SubjectStats[0].AverageScore)
	assert.Equal(t, 1.5, summary.SubjectStats[0].Hours)
	assert.Equal(t, "Physics", summary.SubjectStats[1].Subject)
}

func TestSummarizeTestsStartDateFilter(t *testing.T) {
	logs := []internal.TestLog{
		testLog("2025-03-10", "Math", 80, 100, 60),
		testLog("2025-02-01", "Math", 10, 100, 60),
	}
	summary := SummarizeTests(logs, "2025-03-01")
	assert.Equal(t, 1, summary.TotalTests)
	assert.Equal(t, 80.0, summary.AverageScore)
}

func TestSummarizeTestsEmpty(t *testing.T) {
	summary := SummarizeTests(nil, "")
	assert.Equal(t, 0, summary.TotalTests)
	assert.Equal(t, 0.0, summary.AverageScore)
	assert.Empty(t, summary.SubjectStats)
}

func TestSummarizeTestsFallsBackToCreatedAt(t *testing.T) {
	logs := []internal.TestLog{
		{CreatedAt: "2025-03-10T10:00:00Z", Subject: "Math", MarksScored: 50, MarksTotal: 100, DurationMinutes: 60},
	}
	summary := SummarizeTests(logs, "2025-03-01")
	assert.Equal(t, 1, summary.TotalTests)
}

func TestWeeklyTestSeries(t *testing.T) {
	logs := []internal.TestLog{
		testLog("2025-03-10", "Math", 90, 100, 60),
		testLog("2025-03-10", "Physics", 70, 100, 30),
		testLog("2025-03-01", "Math", 80, 100, 60), // outside window
	}
	series := WeeklyTestSeries(logs, 7, testNow)
	assert.Len(t, series, 7)
	last := series[6]
	assert.Equal(t, "2025-03-10", last.Date)
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, 80.0, last.AverageScore)
	assert.Equal(t, 1.5, last.Hours)
	assert.Equal(t, 0, series[0].Count)
	assert.Equal(t, 0.0, series[0].AverageScore)
}

func TestTestEfficiencySummary(t *testing.T) {
	logs := []internal.TestLog{
		testLog("2025-03-10", "Math", 80, 100, 60),
		testLog("2025-03-09", "Math", 90, 100, 60),
		testLog("2025-03-08", "Math", 10, 100, 0), // no duration, skipped
	}
	eff := TestEfficiencySummary(logs, "")
	assert.Equal(t, 2, eff.TotalTests)
	assert.Equal(t, 85.0, eff.AvgScore)
	assert.Equal(t, 60.0, eff.AvgDurationMinutes)
	assert.Equal(t, 85.0, eff.ScorePerHour)
}

func TestTestEfficiencySummaryEmpty(t *testing.T) {
	assert.Equal(t, TestEfficiency{}, TestEfficiencySummary(nil, ""))
}
