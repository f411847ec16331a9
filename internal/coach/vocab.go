package coach

// Product copy pools. The cartesian products below are capped at poolMax
// entries by the selector; ordering matters because selection is positional.

var headerGreetingTemplates = map[string][]string{
	periodMorning: {
		"Good morning, {name} {emoji}",
		"Rise and revise, {name} {emoji}",
		"Morning momentum, {name} {emoji}",
		"Fresh focus, {name} {emoji}",
		"Sunrise strategy, {name} {emoji}",
		"Bright start, {name} {emoji}",
		"Sharp morning, {name} {emoji}",
		"Calm morning grind, {name} {emoji}",
		"Morning game plan, {name} {emoji}",
		"Early excellence, {name} {emoji}",
		"Good to see you, {name} {emoji}",
		"Your morning edge is live, {name} {emoji}",
	},
	periodAfternoon: {
		"Good afternoon, {name} {emoji}",
		"Afternoon execution, {name} {emoji}",
		"Midday focus unlocked, {name} {emoji}",
		"Steady afternoon push, {name} {emoji}",
		"Keep the pace, {name} {emoji}",
		"Second-half surge, {name} {emoji}",
		"Strong noon rhythm, {name} {emoji}",
		"Afternoon precision, {name} {emoji}",
		"Momentum check-in, {name} {emoji}",
		"Let this block count, {name} {emoji}",
		"Sharp afternoon flow, {name} {emoji}",
		"Progress hour, {name} {emoji}",
	},
	periodEvening: {
		"Good evening, {name} {emoji}",
		"Evening consistency, {name} {emoji}",
		"Night revision mode, {name} {emoji}",
		"Calm evening focus, {name} {emoji}",
		"Strong finish, {name} {emoji}",
		"Evening recap energy, {name} {emoji}",
		"Night sprint starts now, {name} {emoji}",
		"Lock in this evening, {name} {emoji}",
		"Last stretch, {name} {emoji}",
		"Steady evening progress, {name} {emoji}",
		"Final push window, {name} {emoji}",
		"Quiet confidence tonight, {name} {emoji}",
	},
}

var headerGreetingPrefixes = []string{
	"deep-focus",
	"rank-ready",
	"calm-execution",
	"precision-first",
	"steady-gain",
	"confidence-build",
	"revision-rich",
	"mistake-crushing",
	"concept-locking",
	"test-smart",
	"system-driven",
	"zero-noise",
	"high-clarity",
	"momentum-led",
	"result-oriented",
	"discipline-powered",
	"consistency-strong",
	"accuracy-focused",
	"exam-temperament",
	"tactical-prep",
}

var headerGreetingNouns = []string{
	"session",
	"sprint",
	"run",
	"window",
	"push",
	"flow",
	"cycle",
	"phase",
	"routine",
	"block",
	"cadence",
	"drive",
	"framework",
	"engine",
	"streak",
	"pulse",
	"wave",
	"rhythm",
	"charge",
	"checkpoint",
	"sequence",
	"track",
	"route",
	"climb",
	"mission",
}

var headerGreetingClosers = []string{
	"for strong retention",
	"for cleaner accuracy",
	"for sharper memory",
	"for better test calm",
	"for faster recall",
	"for confident revision",
	"for measurable progress",
	"for focused execution",
	"for stable consistency",
	"for exam-day confidence",
}

var headerGreetingEmoji = []string{
	"🌸", "✨", "🌿", "🌼", "🌅", "📘", "🔥", "💫", "🎯", "🌟", "🧠", "🚀",
}

var greetingOpeners = []string{
	"Calm start",
	"Strong start",
	"Focused start",
	"Fresh momentum",
	"Steady progress",
	"Confident rhythm",
	"Exam-mode activated",
	"Mindset locked",
	"Consistency unlocked",
	"Sharp energy",
	"Execution mode",
	"High intent",
	"Discipline on",
	"Quiet confidence",
	"Result-focused day",
	"Clarity first",
	"Small wins first",
	"One step at a time",
	"System over stress",
	"Deep focus window",
	"Progress in motion",
	"Strategy in place",
	"You are on track",
	"Routine in control",
}

var greetingMiddle = []string{
	"you are building rank through consistency",
	"today rewards precision over pressure",
	"your steady sessions are compounding",
	"this is a high-quality study day",
	"one disciplined block will change the day",
	"your process is stronger than panic",
	"your routine is creating confidence",
	"each focused hour is a competitive edge",
	"calm execution beats last-minute rush",
	"progress today protects tomorrow",
	"you are close, keep the cadence",
	"clarity and repetition will win",
	"your prep is becoming exam-ready",
	"you are training for performance",
	"keep your standards high and simple",
	"your future self will thank this session",
	"you are one clean revision away from confidence",
	"focus now, celebrate later",
	"consistency is your unfair advantage",
	"this effort is visible in scores",
}

var greetingClosers = []string{
	"start with one high-value block.",
	"protect your first 90 minutes.",
	"prioritize weak topics first.",
	"finish today with a quick recap.",
	"keep distractions outside this window.",
	"maintain pace, not panic.",
	"choose quality over quantity.",
	"test yourself before ending the day.",
	"revise what you got wrong yesterday.",
	"end the day with confidence notes.",
}

var motivationalOpeners = map[string][]string{
	periodMorning: {
		"Morning reminder:",
		"Today starts here:",
		"Your first edge:",
		"Set the tone now:",
		"Early focus wins:",
		"Quiet confidence check:",
		"Before noon target:",
		"Morning mindset:",
		"Sharp start note:",
		"Calm prep cue:",
		"Fresh-day push:",
		"Sunrise strategy:",
	},
	periodAfternoon: {
		"Afternoon reset:",
		"Midday reminder:",
		"Second-half focus:",
		"Keep the rhythm:",
		"Sustain your edge:",
		"Execution check:",
		"Noon-to-evening plan:",
		"Momentum cue:",
		"Pressure-to-precision:",
		"Steady drive note:",
		"Progress checkpoint:",
		"Afternoon strategy:",
	},
	periodEvening: {
		"Evening note:",
		"Finish strong:",
		"Night revision cue:",
		"Last stretch reminder:",
		"Calm close strategy:",
		"Late-day focus:",
		"Consistency check:",
		"Final block mindset:",
		"Wrap-up with purpose:",
		"Confidence before sleep:",
		"Evening precision:",
		"End-day execution:",
	},
}

var motivationalIntent = []string{
	"Protect attention",
	"Train exam temperament",
	"Build accurate recall",
	"Reduce silly mistakes",
	"Increase retention",
	"Strengthen consistency",
	"Sharpen weak topics",
	"Convert pressure to clarity",
	"Raise test confidence",
	"Stabilize revision quality",
	"Improve answer speed",
	"Improve conceptual depth",
	"Lock in fundamentals",
	"Stay process-first",
	"Keep routine reliable",
	"Push disciplined effort",
	"Minimize distraction spillover",
	"Turn mistakes into marks",
	"Elevate daily standards",
	"Stay calm under time limits",
	"Track measurable progress",
	"Own the next study block",
	"Finish what you start",
	"Respect the plan",
	"Prepare like exam day",
}

var motivationalAction = []string{
	"with one strict deep-work block",
	"with two no-phone sessions",
	"with a timed practice sprint",
	"with focused active recall",
	"with one mistake-book review",
	"with deliberate question analysis",
	"with spaced repetition",
	"with a clean revision loop",
	"with one high-value chapter closure",
	"with 40 quality MCQs",
	"with one PYQ-driven session",
	"with tighter break discipline",
	"with clear task boundaries",
	"with timer-based execution",
	"with a start-now mindset",
	"with controlled test simulation",
	"with one concept-first pass",
	"with one formula recap cycle",
	"with short but intense intervals",
	"with a correction-first approach",
	"with deliberate speed drills",
	"with one accuracy-focused round",
	"with a distraction-free environment",
	"with an honest self-review",
	"with one complete follow-through",
}

var motivationalBenefit = []string{
	"to make today count.",
	"to raise score stability.",
	"to protect confidence.",
	"to build long-term rank gains.",
	"to reduce stress through structure.",
	"to improve exam control.",
	"to keep your momentum alive.",
	"to make revision stick.",
	"to increase quality over quantity.",
	"to turn effort into results.",
}
