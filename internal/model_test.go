package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDailyLogLegacyFields(t *testing.T) {
	log := NormalizeDailyLog(DailyLog{
		WakeUp:     "06:00",
		SleepTime:  "23:00",
		Mood:       "good",
		StudyStart: "06:00",
		StudyEnd:   "08:00",
		BreakStart: "08:00",
		BreakEnd:   "08:30",
	})

	assert.Equal(t, []Interval{{Start: "06:00", End: "08:00"}}, log.StudyIntervals)
	assert.Equal(t, []Interval{{Start: "08:00", End: "08:30"}}, log.BreakIntervals)
	assert.Equal(t, "06:00", log.WakeUp)
	assert.Equal(t, "23:00", log.SleepTime)
	assert.Equal(t, "good", log.Mood)

	// legacy fields never survive normalization
	assert.Empty(t, log.StudyStart)
	assert.Empty(t, log.StudyEnd)
	assert.Empty(t, log.BreakStart)
	assert.Empty(t, log.BreakEnd)
}

func TestNormalizeDailyLogIntervalListsWin(t *testing.T) {
	log := NormalizeDailyLog(DailyLog{
		StudyIntervals: []Interval{{Start: "09:00", End: "11:00"}, {Start: "14:00", End: "15:00"}},
		StudyStart:     "06:00",
		StudyEnd:       "08:00",
	})

	assert.Equal(t, []Interval{{Start: "09:00", End: "11:00"}, {Start: "14:00", End: "15:00"}}, log.StudyIntervals)
}

func TestNormalizeDailyLogDropsEmptyIntervals(t *testing.T) {
	log := NormalizeDailyLog(DailyLog{
		StudyIntervals: []Interval{{}, {Start: "09:00", End: "10:00"}, {}},
	})
	assert.Equal(t, []Interval{{Start: "09:00", End: "10:00"}}, log.StudyIntervals)
}

func TestNormalizeDailyLogEmpty(t *testing.T) {
	log := NormalizeDailyLog(DailyLog{Mood: "tired"})
	assert.Empty(t, log.StudyIntervals)
	assert.Empty(t, log.BreakIntervals)
	assert.Equal(t, "tired", log.Mood)
}

func TestDefaultWorkspace(t *testing.T) {
	ws := DefaultWorkspace()
	assert.Equal(t, "JEE", ws.ExamMode)
	assert.NotNil(t, ws.Sessions)
	assert.NotNil(t, ws.TestLogs)
	assert.NotNil(t, ws.DailyLogs)
	assert.NotNil(t, ws.Notes)
	assert.Nil(t, ws.ActiveTimer)
}

func TestAppErrorKinds(t *testing.T) {
	assert.Equal(t, 400, ValidationError("bad").Code)
	assert.Equal(t, 401, AuthenticationError("nope").Code)
	assert.Equal(t, 500, ConfigurationError("missing").Code)
	assert.Equal(t, 502, SyncError("down").Code)
	assert.Equal(t, "validation: bad", ValidationError("bad").Error())
	assert.Equal(t, "plain", NewAppError(418, "plain").Error())
}
