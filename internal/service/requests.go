package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/itsalphin/ai-study-companion/internal"
)

var validate = validator.New()

type SessionRequest struct {
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Subject         string `json:"subject" validate:"omitempty,max=80"`
	DurationSeconds int    `json:"durationSeconds" validate:"required,gt=0"`
	Source          string `json:"source" validate:"omitempty,oneof=timer manual"`
}

type TestLogRequest struct {
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Subject         string `json:"subject" validate:"omitempty,max=80"`
	MarksScored     int    `json:"marksScored" validate:"gte=0,ltefield=MarksTotal"`
	MarksTotal      int    `json:"marksTotal" validate:"required,gt=0"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0"`
}

type IntervalRequest struct {
	Start string `json:"start" validate:"omitempty,datetime=15:04"`
	End   string `json:"end" validate:"omitempty,datetime=15:04"`
}

// DailyLogRequest accepts both the interval-list shape and the legacy flat
// fields; they are normalized before the log reaches the workspace.
type DailyLogRequest struct {
	Date           string            `json:"date" validate:"required,datetime=2006-01-02"`
	WakeUp         string            `json:"wakeUp" validate:"omitempty,datetime=15:04"`
	SleepTime      string            `json:"sleepTime" validate:"omitempty,datetime=15:04"`
	Mood           string            `json:"mood" validate:"omitempty,max=40"`
	StudyIntervals []IntervalRequest `json:"studyIntervals" validate:"omitempty,dive"`
	BreakIntervals []IntervalRequest `json:"breakIntervals" validate:"omitempty,dive"`
	StudyStart     string            `json:"studyStart" validate:"omitempty,datetime=15:04"`
	StudyEnd       string            `json:"studyEnd" validate:"omitempty,datetime=15:04"`
	BreakStart     string            `json:"breakStart" validate:"omitempty,datetime=15:04"`
	BreakEnd       string            `json:"breakEnd" validate:"omitempty,datetime=15:04"`
}

type NoteRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Learned      string `json:"learned"`
	Mistakes     string `json:"mistakes"`
	TomorrowGoal string `json:"tomorrowGoal"`
}

type ExamModeRequest struct {
	ExamMode string `json:"examMode" validate:"required,oneof=JEE NEET UPSC CA"`
}

type TimerStartRequest struct {
	Subject string `json:"subject" validate:"omitempty,max=80"`
}

func ValidateSessionRequest(req *SessionRequest) error {
	if err := validate.Struct(req); err != nil {
		return internal.ValidationError(err.Error())
	}
	return nil
}

func ValidateTestLogRequest(req *TestLogRequest) error {
	if err := validate.Struct(req); err != nil {
		return internal.ValidationError(err.Error())
	}
	return nil
}

func ValidateDailyLogRequest(req *DailyLogRequest) error {
	if err := validate.Struct(req); err != nil {
		return internal.ValidationError(err.Error())
	}
	return nil
}

func ValidateNoteRequest(req *NoteRequest) error {
	if err := validate.Struct(req); err != nil {
		return internal.ValidationError(err.Error())
	}
	return nil
}

func ValidateExamModeRequest(req *ExamModeRequest) error {
	if err := validate.Struct(req); err != nil {
		return internal.ValidationError(err.Error())
	}
	return nil
}

func (r DailyLogRequest) toDailyLog() internal.DailyLog {
	log := internal.DailyLog{
		WakeUp:     r.WakeUp,
		SleepTime:  r.SleepTime,
		Mood:       r.Mood,
		StudyStart: r.StudyStart,
		StudyEnd:   r.StudyEnd,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
	}
	for _, iv := range r.StudyIntervals {
		log.StudyIntervals = append(log.StudyIntervals, internal.Interval{Start: iv.Start, End: iv.End})
	}
	for _, iv := range r.BreakIntervals {
		log.BreakIntervals = append(log.BreakIntervals, internal.Interval{Start: iv.Start, End: iv.End})
	}
	return internal.NormalizeDailyLog(log)
}
