package internal

import "time"

// Session sources.
const (
	SourceTimer  = "timer"
	SourceManual = "manual"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the per-account record upserted on first login.
type Profile struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	ExamMode    string       `json:"exam_mode"`
	Theme       string       `json:"theme"`
	ActiveTimer *ActiveTimer `json:"active_timer,omitempty"`
}

type StudySession struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"` // canonical YYYY-MM-DD key
	CreatedAt       string `json:"createdAt,omitempty"`
	Subject         string `json:"subject"`
	DurationSeconds int    `json:"durationSeconds"`
	Source          string `json:"source"`
}

type TestLog struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Date            string `json:"date"`
	CreatedAt       string `json:"createdAt,omitempty"`
	Subject         string `json:"subject"`
	MarksScored     int    `json:"marksScored"`
	MarksTotal      int    `json:"marksTotal"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Interval is a {start,end} pair of "HH:MM" clock values.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DailyLog is keyed by date in Workspace.DailyLogs. The legacy flat fields
// are accepted on input and folded into the interval lists by
// NormalizeDailyLog; nothing past the model boundary reads them.
type DailyLog struct {
	WakeUp         string     `json:"wakeUp,omitempty"`
	SleepTime      string     `json:"sleepTime,omitempty"`
	Mood           string     `json:"mood,omitempty"`
	StudyIntervals []Interval `json:"studyIntervals,omitempty"`
	BreakIntervals []Interval `json:"breakIntervals,omitempty"`

	StudyStart string `json:"studyStart,omitempty"`
	StudyEnd   string `json:"studyEnd,omitempty"`
	BreakStart string `json:"breakStart,omitempty"`
	BreakEnd   string `json:"breakEnd,omitempty"`
}

type Note struct {
	Learned      string `json:"learned"`
	Mistakes     string `json:"mistakes"`
	TomorrowGoal string `json:"tomorrowGoal"`
}

// ActiveTimer is the single live timer per workspace. StartedAt is empty
// while paused; elapsed time is always recomputed from StartedAt plus
// AccumulatedSeconds, never incremented.
type ActiveTimer struct {
	Subject            string `json:"subject"`
	IsRunning          bool   `json:"isRunning"`
	StartedAt          string `json:"startedAt,omitempty"`
	AccumulatedSeconds int    `json:"accumulatedSeconds"`
}

// Workspace is the aggregate root for one account's data. All date keys are
// canonical "YYYY-MM-DD"; bucketing and range checks compare keys
// lexicographically.
type Workspace struct {
	ExamMode    string              `json:"examMode"`
	Sessions    []StudySession      `json:"sessions"`
	TestLogs    []TestLog           `json:"testLogs"`
	DailyLogs   map[string]DailyLog `json:"dailyLogs"`
	Notes       map[string]Note     `json:"notes"`
	ActiveTimer *ActiveTimer        `json:"activeTimer,omitempty"`
}

func DefaultWorkspace() Workspace {
	return Workspace{
		ExamMode:  "JEE",
		Sessions:  []StudySession{},
		TestLogs:  []TestLog{},
		DailyLogs: map[string]DailyLog{},
		Notes:     map[string]Note{},
	}
}

// NormalizeDailyLog folds the legacy single-interval fields into the
// interval-list shape. Interval lists win when present; legacy fields only
// seed the lists when they are empty. The returned log carries no legacy
// fields.
func NormalizeDailyLog(log DailyLog) DailyLog {
	study := nonEmptyIntervals(log.StudyIntervals)
	if len(study) == 0 && (log.StudyStart != "" || log.StudyEnd != "") {
		study = []Interval{{Start: log.StudyStart, End: log.StudyEnd}}
	}
	brk := nonEmptyIntervals(log.BreakIntervals)
	if len(brk) == 0 && (log.BreakStart != "" || log.BreakEnd != "") {
		brk = []Interval{{Start: log.BreakStart, End: log.BreakEnd}}
	}
	return DailyLog{
		WakeUp:         log.WakeUp,
		SleepTime:      log.SleepTime,
		Mood:           log.Mood,
		StudyIntervals: study,
		BreakIntervals: brk,
	}
}

func nonEmptyIntervals(intervals []Interval) []Interval {
	out := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Start == "" && iv.End == "" {
			continue
		}
		out = append(out, iv)
	}
	return out
}
