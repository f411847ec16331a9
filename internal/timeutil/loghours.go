package timeutil

import "github.com/itsalphin/ai-study-companion/internal"

// IntervalsHours sums the interval spans in hours, one decimal.
func IntervalsHours(intervals []internal.Interval, allowOvernight bool) float64 {
	total := 0.0
	for _, iv := range intervals {
		total += DiffHours(iv.Start, iv.End, allowOvernight)
	}
	return Round1(total)
}

// The log passed to these helpers must already be normalized; legacy
// single-interval fields are ignored here.

func StudyHoursFromLog(log internal.DailyLog) float64 {
	return IntervalsHours(log.StudyIntervals, false)
}

func BreakHoursFromLog(log internal.DailyLog) float64 {
	return IntervalsHours(log.BreakIntervals, false)
}

func SleepHoursFromLog(log internal.DailyLog) float64 {
	return DiffHours(log.SleepTime, log.WakeUp, true)
}
