// Package analytics derives display-ready summaries from the raw workspace
// collections. Every function is pure: inputs are never mutated, missing or
// malformed numeric fields count as zero, and zero denominators produce a
// defined zero result. Date arguments and session date fields are canonical
// "YYYY-MM-DD" keys compared lexicographically.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/itsalphin/ai-study-companion/internal"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

// StudySecondsByDate sums session durations grouped by date key.
func StudySecondsByDate(sessions []internal.StudySession) map[string]int {
	out := map[string]int{}
	for _, s := range sessions {
		if s.DurationSeconds > 0 {
			out[s.Date] += s.DurationSeconds
		}
	}
	return out
}

type DayHours struct {
	Date    string  `json:"date"`
	Label   string  `json:"label"`
	Seconds int     `json:"seconds"`
	Hours   float64 `json:"hours"`
}

// WeeklySeries returns the trailing days calendar days ending at now, oldest
// first. The series always has exactly days entries; days without sessions
// carry zero hours.
func WeeklySeries(sessions []internal.StudySession, days int, now time.Time) []DayHours {
	byDate := StudySecondsByDate(sessions)
	keys := timeutil.RecentDateKeys(now, days)
	series := make([]DayHours, 0, days)
	for _, key := range keys {
		seconds := byDate[key]
		series = append(series, DayHours{
			Date:    key,
			Label:   timeutil.ShortDay(key),
			Seconds: seconds,
			Hours:   timeutil.ToHours(seconds),
		})
	}
	return series
}

type MonthSummary struct {
	Month           string  `json:"month"`
	Label           string  `json:"label"`
	Hours           float64 `json:"hours"`
	ActiveDays      int     `json:"activeDays"`
	AvgPerActiveDay float64 `json:"avgPerActiveDay"`
}

// MonthlySeries buckets sessions into the trailing months calendar months
// ending at the month of now, oldest first.
func MonthlySeries(sessions []internal.StudySession, months int, now time.Time) []MonthSummary {
	keys := timeutil.RecentMonthKeys(now, months)
	seconds := map[string]int{}
	activeDays := map[string]map[string]struct{}{}
	for _, key := range keys {
		seconds[key] = 0
		activeDays[key] = map[string]struct{}{}
	}

	for _, s := range sessions {
		key := timeutil.MonthKey(s.Date)
		if _, ok := seconds[key]; !ok {
			continue
		}
		if s.DurationSeconds > 0 {
			seconds[key] += s.DurationSeconds
		}
		if s.Date != "" {
			activeDays[key][s.Date] = struct{}{}
		}
	}

	series := make([]MonthSummary, 0, months)
	for _, key := range keys {
		hours := timeutil.ToHours(seconds[key])
		days := len(activeDays[key])
		avg := 0.0
		if days > 0 {
			avg = timeutil.Round1(hours / float64(days))
		}
		series = append(series, MonthSummary{
			Month:           key,
			Label:           timeutil.MonthLabel(key),
			Hours:           hours,
			ActiveDays:      days,
			AvgPerActiveDay: avg,
		})
	}
	return series
}

// SubjectTotals sums hours per subject for sessions at or after startDate
// (empty startDate means no bound). Sessions without a subject fall under
// "General".
func SubjectTotals(sessions []internal.StudySession, startDate string) map[string]float64 {
	seconds := map[string]int{}
	for _, s := range sessions {
		if startDate != "" && s.Date < startDate {
			continue
		}
		subject := s.Subject
		if subject == "" {
			subject = "General"
		}
		dur := s.DurationSeconds
		if dur < 0 {
			dur = 0
		}
		seconds[subject] += dur
	}
	totals := make(map[string]float64, len(seconds))
	for subject, secs := range seconds {
		totals[subject] = timeutil.ToHours(secs)
	}
	return totals
}

// MostProductive names the highest-hour entry of a series, "No data" when
// the series is empty.
func MostProductive(series []DayHours) string {
	if len(series) == 0 {
		return "No data"
	}
	best := series[0]
	for _, d := range series[1:] {
		if d.Hours > best.Hours {
			best = d
		}
	}
	return best.Label + " (" + strconv.FormatFloat(best.Hours, 'f', -1, 64) + "h)"
}

// StreakCount counts consecutive days with at least one session, walking
// backward from today. A day still in progress does not break a streak: the
// walk may anchor on yesterday when today has no session yet. With neither
// today nor yesterday active the streak is zero.
func StreakCount(sessions []internal.StudySession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	active := map[string]struct{}{}
	for _, s := range sessions {
		active[s.Date] = struct{}{}
	}

	cursor := now
	if _, ok := active[timeutil.DateKey(cursor)]; !ok {
		cursor = now.AddDate(0, 0, -1)
		if _, ok := active[timeutil.DateKey(cursor)]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := active[timeutil.DateKey(cursor)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// ProductivityScore combines the day's study, sleep, break, and
// subject-diversity signals into a 0-100 score. The band boundaries and
// point values are product-tuned and pinned by tests; do not re-derive them.
func ProductivityScore(studyHours, sleepHours, breakHours float64, subjects int) int {
	studyScore := math.Min(45, studyHours*15)

	sleepScore := 4.0
	switch {
	case sleepHours >= 7 && sleepHours <= 8.5:
		sleepScore = 25
	case sleepHours >= 6:
		sleepScore = 18
	case sleepHours >= 5:
		sleepScore = 10
	}

	ratio := 1.0
	if studyHours > 0 {
		ratio = breakHours / studyHours
	}
	breakScore := 2.0
	switch {
	case ratio <= 0.35:
		breakScore = 20
	case ratio <= 0.6:
		breakScore = 12
	case ratio <= 1:
		breakScore = 7
	}

	subjectScore := 2.0
	switch {
	case subjects >= 3:
		subjectScore = 10
	case subjects == 2:
		subjectScore = 7
	case subjects == 1:
		subjectScore = 4
	}

	return int(math.Round(math.Min(100, studyScore+sleepScore+breakScore+subjectScore)))
}

type HeatmapCell struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Level int     `json:"level"`
}

// HeatmapData maps the trailing days onto intensity levels 0-4.
func HeatmapData(sessions []internal.StudySession, days int, now time.Time) []HeatmapCell {
	byDate := StudySecondsByDate(sessions)
	keys := timeutil.RecentDateKeys(now, days)
	cells := make([]HeatmapCell, 0, days)
	for _, key := range keys {
		hours := timeutil.ToHours(byDate[key])
		level := 0
		switch {
		case hours >= 5:
			level = 4
		case hours >= 3:
			level = 3
		case hours >= 1.5:
			level = 2
		case hours > 0:
			level = 1
		}
		cells = append(cells, HeatmapCell{Date: key, Hours: hours, Level: level})
	}
	return cells
}

type ConsistencySummary struct {
	Days           int     `json:"days"`
	MinHours       float64 `json:"minHours"`
	ConsistentDays int     `json:"consistentDays"`
	ActiveDays     int     `json:"activeDays"`
	ConsistencyPct int     `json:"consistencyPct"`
	AvgDailyHours  float64 `json:"avgDailyHours"`
	TotalHours     float64 `json:"totalHours"`
}

// Consistency reports how many of the trailing days met the minHours
// threshold, plus the window's average daily hours.
func Consistency(sessions []internal.StudySession, days int, minHours float64, now time.Time) ConsistencySummary {
	byDate := StudySecondsByDate(sessions)
	consistent := 0
	active := 0
	total := 0.0
	for _, key := range timeutil.RecentDateKeys(now, days) {
		hours := timeutil.ToHours(byDate[key])
		total += hours
		if hours > 0 {
			active++
		}
		if hours >= minHours {
			consistent++
		}
	}
	return ConsistencySummary{
		Days:           days,
		MinHours:       minHours,
		ConsistentDays: consistent,
		ActiveDays:     active,
		ConsistencyPct: int(math.Round(float64(consistent) / float64(days) * 100)),
		AvgDailyHours:  timeutil.Round1(total / float64(days)),
		TotalHours:     timeutil.Round1(total),
	}
}

type SubjectBalance struct {
	Score           int    `json:"score"`
	DominantSubject string `json:"dominantSubject"`
	DominantShare   int    `json:"dominantShare"`
	SubjectCount    int    `json:"subjectCount"`
}

// SubjectBalanceSummary scores how evenly study time spreads across subjects
// as normalized Shannon entropy on a 0-100 scale. A perfectly even split
// scores 100; a single subject scores 0 (the log(1) denominator is treated
// as zero entropy capacity, not a division error).
func SubjectBalanceSummary(sessions []internal.StudySession, startDate string) SubjectBalance {
	seconds := map[string]int{}
	total := 0
	for _, s := range sessions {
		if startDate != "" && s.Date < startDate {
			continue
		}
		if s.DurationSeconds <= 0 {
			continue
		}
		subject := s.Subject
		if subject == "" {
			subject = "General"
		}
		seconds[subject] += s.DurationSeconds
		total += s.DurationSeconds
	}

	if total <= 0 || len(seconds) == 0 {
		return SubjectBalance{DominantSubject: "No data"}
	}

	entropy := 0.0
	dominant := ""
	dominantSeconds := 0
	subjects := make([]string, 0, len(seconds))
	for subject := range seconds {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		secs := seconds[subject]
		share := float64(secs) / float64(total)
		entropy -= share * math.Log(share)
		if secs > dominantSeconds {
			dominant = subject
			dominantSeconds = secs
		}
	}

	score := 0
	if maxEntropy := math.Log(float64(len(seconds))); maxEntropy > 0 {
		score = int(math.Round(entropy / maxEntropy * 100))
	}
	return SubjectBalance{
		Score:           score,
		DominantSubject: dominant,
		DominantShare:   int(math.Round(float64(dominantSeconds) / float64(total) * 100)),
		SubjectCount:    len(seconds),
	}
}

type FocusWindow struct {
	Window  string  `json:"window"`
	Hours   float64 `json:"hours"`
	Seconds int     `json:"seconds"`
}

type FocusWindowSummary struct {
	BestWindow string        `json:"bestWindow"`
	BestHours  float64       `json:"bestHours"`
	Breakdown  []FocusWindow `json:"breakdown"`
}

var focusWindows = []string{"Morning", "Afternoon", "Evening", "Late Night"}

// FocusWindows buckets session seconds into time-of-day windows by each
// session's createdAt hour (noon when absent) and reports the heaviest one.
func FocusWindows(sessions []internal.StudySession, startDate string) FocusWindowSummary {
	buckets := map[string]int{}
	for _, s := range sessions {
		if startDate != "" && s.Date < startDate {
			continue
		}
		hour := 12
		if s.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, s.CreatedAt); err == nil {
				hour = t.Local().Hour()
			}
		}
		window := "Late Night"
		switch {
		case hour >= 5 && hour < 12:
			window = "Morning"
		case hour >= 12 && hour < 17:
			window = "Afternoon"
		case hour >= 17 && hour < 22:
			window = "Evening"
		}
		if s.DurationSeconds > 0 {
			buckets[window] += s.DurationSeconds
		}
	}

	breakdown := make([]FocusWindow, 0, len(focusWindows))
	for _, window := range focusWindows {
		breakdown = append(breakdown, FocusWindow{
			Window:  window,
			Seconds: buckets[window],
			Hours:   timeutil.ToHours(buckets[window]),
		})
	}
	best := breakdown[0]
	for _, entry := range breakdown[1:] {
		if entry.Seconds > best.Seconds {
			best = entry
		}
	}
	return FocusWindowSummary{
		BestWindow: best.Window,
		BestHours:  best.Hours,
		Breakdown:  breakdown,
	}
}

type SleepAlignment struct {
	TrackedDays  int `json:"trackedDays"`
	AlignedDays  int `json:"alignedDays"`
	RiskDays     int `json:"riskDays"`
	AlignmentPct int `json:"alignmentPct"`
}

// SleepAlignmentSummary checks, over the trailing window, how sleep and study
// line up day by day. A day is tracked when it has any sleep or study data,
// aligned when sleep lands in [7, 8.5] hours alongside at least 3 study
// hours, and at risk when under 6 hours of sleep meets 4 or more study
// hours.
func SleepAlignmentSummary(sessions []internal.StudySession, dailyLogs map[string]internal.DailyLog, days int, now time.Time) SleepAlignment {
	byDate := StudySecondsByDate(sessions)
	out := SleepAlignment{}
	for _, key := range timeutil.RecentDateKeys(now, days) {
		sleepHours := timeutil.SleepHoursFromLog(dailyLogs[key])
		studyHours := timeutil.ToHours(byDate[key])
		if sleepHours <= 0 && studyHours <= 0 {
			continue
		}
		out.TrackedDays++
		if sleepHours >= 7 && sleepHours <= 8.5 && studyHours >= 3 {
			out.AlignedDays++
		}
		if sleepHours < 6 && studyHours >= 4 {
			out.RiskDays++
		}
	}
	if out.TrackedDays > 0 {
		out.AlignmentPct = int(math.Round(float64(out.AlignedDays) / float64(out.TrackedDays) * 100))
	}
	return out
}

type TrendDelta struct {
	FirstAvg  float64 `json:"firstAvg"`
	SecondAvg float64 `json:"secondAvg"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"`
}

// StudyTrendDelta splits the trailing window's daily hours into two halves
// (floor split when odd) and compares their averages.
func StudyTrendDelta(sessions []internal.StudySession, days int, now time.Time) TrendDelta {
	byDate := StudySecondsByDate(sessions)
	keys := timeutil.RecentDateKeys(now, days)
	hours := make([]float64, 0, len(keys))
	for _, key := range keys {
		hours = append(hours, timeutil.ToHours(byDate[key]))
	}
	split := len(hours) / 2
	firstAvg := timeutil.Round1(mean(hours[:split]))
	secondAvg := timeutil.Round1(mean(hours[split:]))
	delta := timeutil.Round1(secondAvg - firstAvg)

	direction := "flat"
	if delta > 0 {
		direction = "up"
	} else if delta < 0 {
		direction = "down"
	}
	return TrendDelta{FirstAvg: firstAvg, SecondAvg: secondAvg, Delta: delta, Direction: direction}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

