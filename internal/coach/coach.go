// Package coach generates the templated "AI coach" content: greetings,
// motivational lines, and the adaptive day plan. Everything here is pure
// template interpolation over deterministic seeded selection; there is no
// model call.
package coach

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/itsalphin/ai-study-companion/internal/exammode"
	"github.com/itsalphin/ai-study-companion/internal/timeutil"
)

// Context is the identity and tracker fingerprint content is derived from.
// Zero values are fine everywhere; missing names fall back to "Aspirant".
type Context struct {
	Username      string
	ExamMode      string
	SessionToken  string
	Streak        int
	StudyHours    float64
	BreakHours    float64
	SleepHours    float64
	Mood          string
	SubjectTotals map[string]float64
	TestCount     int
	TestAverage   float64
	TestHours     float64
}

func (c Context) name() string {
	if strings.TrimSpace(c.Username) == "" {
		return "Aspirant"
	}
	return c.Username
}

// Message carries selected text plus the pool index that produced it; the
// index is persisted so the next selection can avoid repeating it.
type Message struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Per-selector perturbation offsets. Odd and distinct so a collision bump
// always lands on a different pool entry.
const (
	greetingOffset   = 37
	motivationOffset = 53
	planOffset       = 29
)

type Coach struct {
	store      IndexStore
	greeting   *selector
	motivation *selector
	plan       *selector
}

func New(store IndexStore) *Coach {
	return &Coach{
		store:      store,
		greeting:   newSelector(greetingOffset, headerGreetingPrefixes, headerGreetingNouns, headerGreetingClosers),
		motivation: newSelector(motivationOffset, motivationalIntent, motivationalAction, motivationalBenefit),
		plan:       newSelector(planOffset, motivationalIntent, motivationalBenefit),
	}
}

func (c *Coach) tokenOrDay(ctx Context, now time.Time) string {
	if ctx.SessionToken != "" {
		return ctx.SessionToken
	}
	return timeutil.DateKey(now)
}

// GreetingLine is the short three-part welcome line.
func (c *Coach) GreetingLine(ctx Context, now time.Time) string {
	period := dayPeriod(now)
	seed := hashSeed(fmt.Sprintf("%s-%s-%s-%s-%d", ctx.name(), ctx.ExamMode, timeutil.DateKey(now), period, ctx.Streak))
	return fmt.Sprintf("%s %s, %s - %s",
		pick(greetingOpeners, seed),
		ctx.name(),
		pick(greetingMiddle, seed+7),
		pick(greetingClosers, seed+13))
}

// DashboardGreeting is the header banner: a period template with name and
// emoji filled in, suffixed by a phrase from the greeting pool.
func (c *Coach) DashboardGreeting(ctx Context, now time.Time) Message {
	period := dayPeriod(now)
	seed := hashSeed(fmt.Sprintf("%s-%s-%s-%s-%d-header", ctx.name(), ctx.ExamMode, c.tokenOrDay(ctx, now), period, ctx.Streak))
	template := pick(headerGreetingTemplates[period], seed)
	suffix, index := c.greeting.choose(c.store, ctx.name()+":header", seed)
	emoji := pick(headerGreetingEmoji, seed+17)

	text := strings.ReplaceAll(template, "{name}", ctx.name())
	text = strings.ReplaceAll(text, "{emoji}", emoji)
	return Message{Text: text + " - " + suffix, Index: index}
}

// MotivationalLine pairs a period opener with a phrase from the motivation
// pool.
func (c *Coach) MotivationalLine(ctx Context, now time.Time) Message {
	period := dayPeriod(now)
	seed := hashSeed(fmt.Sprintf("%s-%s-%s-%s-%d-motivation", ctx.name(), ctx.ExamMode, c.tokenOrDay(ctx, now), period, ctx.Streak))
	opener := pick(motivationalOpeners[period], seed+5)
	line, index := c.motivation.choose(c.store, ctx.name()+":motivation", seed)
	return Message{Text: opener + " " + line, Index: index}
}

type PlanBlock struct {
	Start       string `json:"start"`
	DurationMin int    `json:"duration_min"`
	Task        string `json:"task"`
	Reason      string `json:"reason"`
}

type Plan struct {
	PlanTitle          string      `json:"plan_title"`
	Summary            string      `json:"summary"`
	Blocks             []PlanBlock `json:"blocks"`
	Motivation         string      `json:"motivation"`
	MicroGoals         []string    `json:"micro_goals"`
	Caution            string      `json:"caution"`
	UserContextApplied string      `json:"user_context_applied"`
}

const maxPlanBlocks = 6

// weakSubjects ranks subjects with at most 1.2 logged hours this period,
// lowest first, falling back to the given list when nothing qualifies.
func weakSubjects(totals map[string]float64, fallback []string) []string {
	type entry struct {
		subject string
		hours   float64
	}
	weak := []entry{}
	for subject, hours := range totals {
		if hours <= 1.2 {
			weak = append(weak, entry{subject, hours})
		}
	}
	if len(weak) == 0 {
		return fallback
	}
	// Ascending by hours, subject name as tiebreak to keep ordering stable.
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].hours != weak[j].hours {
			return weak[i].hours < weak[j].hours
		}
		return weak[i].subject < weak[j].subject
	})
	out := make([]string, 0, len(weak))
	for _, e := range weak {
		out = append(out, e.subject)
	}
	return out
}

// nextClock advances an "HH:MM" value by minutes, wrapping past midnight.
func nextClock(start string, minutes int) string {
	var h, m int
	fmt.Sscanf(start, "%d:%d", &h, &m)
	total := (h*60 + m + minutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// AdaptivePlan builds the offline day plan from tracker signals: weakest
// subjects first, a timed-test block whose flavor depends on the score trend,
// and a recovery or discipline block when sleep or break patterns look off.
func (c *Coach) AdaptivePlan(ctx Context, userInput string, now time.Time) Plan {
	subjects := exammode.Subjects(ctx.ExamMode)
	fallback := subjects
	if len(fallback) > 2 {
		fallback = fallback[:2]
	}
	weak := weakSubjects(ctx.SubjectTotals, fallback)

	primary := subjects[0]
	if len(weak) > 0 {
		primary = weak[0]
	}
	secondary := primary
	if len(weak) > 1 {
		secondary = weak[1]
	} else if len(subjects) > 1 {
		secondary = subjects[1]
	}

	scoreLow := ctx.TestAverage > 0 && ctx.TestAverage < 65
	lowSleep := ctx.SleepHours > 0 && ctx.SleepHours < 6
	heavyBreaks := ctx.StudyHours > 0 && ctx.BreakHours > ctx.StudyHours*0.6

	blocks := []PlanBlock{}
	start := "06:30"
	addBlock := func(duration int, task, reason string) {
		blocks = append(blocks, PlanBlock{Start: start, DurationMin: duration, Task: task, Reason: reason})
		start = nextClock(start, duration+15)
	}

	addBlock(90, primary+": concept revision + 25 MCQs", "Start with weakest subject while energy is high.")
	addBlock(75, secondary+": active recall + PYQs", "Second weak area before fatigue starts.")
	addBlock(45, "Error notebook review", "Convert mistakes into direct score gains.")

	if scoreLow {
		addBlock(60, primary+": one timed mini test", "Low score trend needs timed correction today.")
	} else {
		addBlock(60, "Mixed subject timed test", "Maintain exam temperament with controlled pressure.")
	}

	if lowSleep {
		addBlock(25, "Recovery walk + hydration + power nap", "Low sleep detected. Reset attention quality.")
	} else if heavyBreaks {
		addBlock(30, "Strict Pomodoro drill (25/5 x 2)", "Break discipline needs tighter structure.")
	} else {
		addBlock(30, "Flashcards + formula recap", "Lock retention before end of day.")
	}

	addBlock(40, subjects[0]+" quick recap + next-day planning", "Close the day with clarity and lower stress.")
	if len(blocks) > maxPlanBlocks {
		blocks = blocks[:maxPlanBlocks]
	}

	caution := "Routine is stable. Keep execution quality high."
	if lowSleep {
		caution = "Sleep debt is likely reducing retention. Protect tonight's sleep window."
	} else if heavyBreaks {
		caution = "Break ratio is high. Use intentional break timers."
	}

	period := dayPeriod(now)
	seed := hashSeed(fmt.Sprintf("%s-%s-%s-%s-%d-plan", ctx.name(), ctx.ExamMode, c.tokenOrDay(ctx, now), period, ctx.Streak))
	motivation, _ := c.plan.choose(c.store, ctx.name()+":plan", seed)

	applied := "Plan adapted from your tracker data."
	if userInput != "" {
		applied = fmt.Sprintf("Plan adapted to your note: %q", userInput)
	}

	mode := exammode.Config(ctx.ExamMode).Value
	return Plan{
		PlanTitle:  mode + " adaptive plan for today",
		Summary:    fmt.Sprintf("Prioritize %s and %s with a test-feedback loop and strong closing recap.", primary, secondary),
		Blocks:     blocks,
		Motivation: motivation,
		MicroGoals: []string{
			"Finish 1 timed test and review every wrong answer.",
			"Complete at least 2 deep-focus blocks with zero phone use.",
			"Write 3 mistake patterns to avoid tomorrow.",
			"Log final day reflection in notes.",
		},
		Caution:            caution,
		UserContextApplied: applied,
	}
}
