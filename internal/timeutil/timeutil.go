package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateKeyLayout is the canonical calendar-day key format. Every date key in a
// workspace is produced with this layout from local time at save-time, so
// comparisons elsewhere are plain string comparisons.
const DateKeyLayout = "2006-01-02"

func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

func MonthKey(dateKey string) string {
	if len(dateKey) < 7 {
		return ""
	}
	return dateKey[:7]
}

// RecentDateKeys returns the last n calendar days ending at now, oldest
// first.
func RecentDateKeys(now time.Time, n int) []string {
	keys := make([]string, 0, n)
	for offset := n - 1; offset >= 0; offset-- {
		keys = append(keys, DateKey(now.AddDate(0, 0, -offset)))
	}
	return keys
}

// RecentMonthKeys returns the last n calendar "YYYY-MM" keys ending at the
// month of now, oldest first.
func RecentMonthKeys(now time.Time, n int) []string {
	keys := make([]string, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for offset := n - 1; offset >= 0; offset-- {
		keys = append(keys, first.AddDate(0, -offset, 0).Format("2006-01"))
	}
	return keys
}

// ToHours converts seconds to hours rounded to one decimal.
func ToHours(seconds int) float64 {
	return Round1(float64(seconds) / 3600)
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func ShortDay(dateKey string) string {
	t, err := time.ParseInLocation(DateKeyLayout, dateKey, time.Local)
	if err != nil {
		return ""
	}
	return t.Format("Mon")
}

func MonthLabel(monthKey string) string {
	t, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return ""
	}
	return t.Format("Jan")
}

// clockMinutes parses "HH:MM" into minutes past midnight. Returns -1 for
// anything unparseable.
func clockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return h*60 + m
}

// DiffHours returns end minus start in hours, one decimal, clamped at zero.
// With allowOvernight a negative span wraps past midnight.
func DiffHours(start, end string, allowOvernight bool) float64 {
	s := clockMinutes(start)
	e := clockMinutes(end)
	if s < 0 || e < 0 {
		return 0
	}
	diff := e - s
	if allowOvernight && diff < 0 {
		diff += 24 * 60
	}
	if diff < 0 {
		diff = 0
	}
	return Round1(float64(diff) / 60)
}
