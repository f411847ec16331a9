package exammode

// Mode describes one exam track: an ordered subject list plus the subject
// the coach biases toward.
type Mode struct {
	Value        string   `json:"value"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Subjects     []string `json:"subjects"`
	FocusSubject string   `json:"focusSubject"`
}

// Modes is the fixed catalog. Sessions and tests may reference subjects
// outside the active mode's list; analytics group them under the literal
// subject string.
var Modes = []Mode{
	{
		Value:        "JEE",
		Title:        "JEE Mode",
		Description:  "Optimize Physics, Chemistry, and Math revision cycles.",
		Subjects:     []string{"Physics", "Chemistry", "Math"},
		FocusSubject: "Math",
	},
	{
		Value:        "NEET",
		Title:        "NEET Mode",
		Description:  "Build strong PCB coverage with consistent revision blocks.",
		Subjects:     []string{"Physics", "Chemistry", "Biology"},
		FocusSubject: "Biology",
	},
	{
		Value:        "UPSC",
		Title:        "UPSC Mode",
		Description:  "Balance Polity and GS with disciplined study windows.",
		Subjects:     []string{"Polity", "History", "Economy", "Geography"},
		FocusSubject: "Polity",
	},
	{
		Value:        "CA",
		Title:        "CA Mode",
		Description:  "Track Accounts-focused sessions and concept retention.",
		Subjects:     []string{"Accounts", "Law", "Tax", "Audit"},
		FocusSubject: "Accounts",
	},
}

// Config returns the catalog entry for mode, falling back to the first
// entry (JEE) for unknown values.
func Config(mode string) Mode {
	for _, m := range Modes {
		if m.Value == mode {
			return m
		}
	}
	return Modes[0]
}

func Subjects(mode string) []string {
	return Config(mode).Subjects
}

func FocusSubject(mode string) string {
	return Config(mode).FocusSubject
}

func Valid(mode string) bool {
	for _, m := range Modes {
		if m.Value == mode {
			return true
		}
	}
	return false
}
