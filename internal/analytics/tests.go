package analytics

import (
	"time"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

type SubjectTestStats struct {
	Subject      string  `json:"subject"`
	Tests        int     `json:"tests"`
	AverageScore float64 `json:"averageScore"`
	Hours        float64 `json:"hours"`
}

type TestSummary struct {
	TotalTests   int                `json:"totalTests"`
	AverageScore float64            `json:"averageScore"`
	TotalHours   float64            `json:"totalHours"`
	SubjectStats []SubjectTestStats `json:"subjectStats"`
}

// testDateKey falls back to the createdAt day when a log has no date.
func testDateKey(log internal.TestLog) string {
	if log.Date != "" {
		return log.Date
	}
	if log.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, log.CreatedAt); err == nil {
			return timeutil.DateKey(t.Local())
		}
	}
	return ""
}

// SummarizeTests aggregates per-subject and overall score percentages for
// tests at or after startDate. Logs without a positive marksTotal are
// skipped.
func SummarizeTests(testLogs []internal.TestLog, startDate string) TestSummary {
	type bucket struct {
		tests      int
		percentSum float64
		minutes    int
	}
	bySubject := map[string]*bucket{}
	order := []string{}
	totalTests := 0
	totalMinutes := 0
	totalPercent := 0.0

	for _, log := range testLogs {
		key := testDateKey(log)
		if key == "" || (startDate != "" && key < startDate) {
			continue
		}
		if log.MarksTotal <= 0 {
			continue
		}
		percent := float64(log.MarksScored) / float64(log.MarksTotal) * 100
		subject := log.Subject
		if subject == "" {
			subject = "General"
		}
		b, ok := bySubject[subject]
		if !ok {
			b = &bucket{}
			bySubject[subject] = b
			order = append(order, subject)
		}
		b.tests++
		b.percentSum += percent
		b.minutes += log.DurationMinutes

		totalTests++
		totalMinutes += log.DurationMinutes
		totalPercent += percent
	}

	summary := TestSummary{
		TotalTests:   totalTests,
		TotalHours:   timeutil.Round1(float64(totalMinutes) / 60),
		SubjectStats: make([]SubjectTestStats, 0, len(order)),
	}
	if totalTests > 0 {
		summary.AverageScore = timeutil.Round1(totalPercent / float64(totalTests))
	}
	for _, subject := range order {
		b := bySubject[subject]
		summary.SubjectStats = append(summary.SubjectStats, SubjectTestStats{
			Subject:      subject,
			Tests:        b.tests,
			AverageScore: timeutil.Round1(b.percentSum / float64(b.tests)),
			Hours:        timeutil.Round1(float64(b.minutes) / 60),
		})
	}
	return summary
}

type TestDay struct {
	Date         string  `json:"date"`
	Label        string  `json:"label"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"averageScore"`
	Hours        float64 `json:"hours"`
}

// WeeklyTestSeries is the trailing-days daily series of test count, average
// score, and proctored hours; always exactly days entries.
func WeeklyTestSeries(testLogs []internal.TestLog, days int, now time.Time) []TestDay {
	type bucket struct {
		count      int
		percentSum float64
		minutes    int
	}
	keys := timeutil.RecentDateKeys(now, days)
	buckets := map[string]*bucket{}
	for _, key := range keys {
		buckets[key] = &bucket{}
	}

	for _, log := range testLogs {
		key := testDateKey(log)
		b, ok := buckets[key]
		if !ok || log.MarksTotal <= 0 {
			continue
		}
		b.count++
		b.percentSum += float64(log.MarksScored) / float64(log.MarksTotal) * 100
		b.minutes += log.DurationMinutes
	}

	series := make([]TestDay, 0, days)
	for _, key := range keys {
		b := buckets[key]
		day := TestDay{
			Date:  key,
			Label: timeutil.ShortDay(key),
			Count: b.count,
			Hours: timeutil.Round1(float64(b.minutes) / 60),
		}
		if b.count > 0 {
			day.AverageScore = timeutil.Round1(b.percentSum / float64(b.count))
		}
		series = append(series, day)
	}
	return series
}

type TestEfficiency struct {
	TotalTests         int     `json:"totalTests"`
	AvgScore           float64 `json:"avgScore"`
	AvgDurationMinutes float64 `json:"avgDurationMinutes"`
	ScorePerHour       float64 `json:"scorePerHour"`
}

// TestEfficiencySummary reports average score against average duration:
// score percentage points earned per proctored hour. Logs missing a positive
// total or duration are excluded.
func TestEfficiencySummary(testLogs []internal.TestLog, startDate string) TestEfficiency {
	totalTests := 0
	totalMinutes := 0
	totalPercent := 0.0

	for _, log := range testLogs {
		key := testDateKey(log)
		if key == "" || (startDate != "" && key < startDate) {
			continue
		}
		if log.MarksTotal <= 0 || log.DurationMinutes <= 0 {
			continue
		}
		totalTests++
		totalMinutes += log.DurationMinutes
		totalPercent += float64(log.MarksScored) / float64(log.MarksTotal) * 100
	}

	if totalTests == 0 {
		return TestEfficiency{}
	}
	avgScore := timeutil.Round1(totalPercent / float64(totalTests))
	avgDuration := timeutil.Round1(float64(totalMinutes) / float64(totalTests))
	scorePerHour := 0.0
	if avgDuration > 0 {
		scorePerHour = timeutil.Round1(avgScore / (avgDuration / 60))
	}
	return TestEfficiency{
		TotalTests:         totalTests,
		AvgScore:           avgScore,
		AvgDurationMinutes: avgDuration,
		ScorePerHour:       scorePerHour,
	}
}
