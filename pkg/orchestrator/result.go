package orchestrator

// Severity is the four-level incident priority scale.
type Severity string

const (
	SeverityCritical Severity = "P1 - Critical"
	SeverityHigh     Severity = "P2 - High"
	SeverityMedium   Severity = "P3 - Medium"
	SeverityLow      Severity = "P4 - Low"
)

// Severities lists every severity from most to least urgent.
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

// Valid reports whether s is one of the four known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

func (s Severity) String() string {
	return string(s)
}

// TimelineEvent is one entry in a result timeline. Slice order is
// chronological order.
type TimelineEvent struct {
	Time  string `json:"time" yaml:"time"`
	Event string `json:"event" yaml:"event"`
	Agent string `json:"agent" yaml:"agent"`
}

// Result is the structured outcome of a single Process call. Every call
// builds a fresh value; nothing in it aliases orchestrator state.
type Result struct {
	Identifier      string          `json:"identifier"`
	Domain          string          `json:"domain,omitempty"`
	Title           string          `json:"title,omitempty"`
	Status          string          `json:"status"`
	Severity        Severity        `json:"severity"`
	AssignedSystem  string          `json:"assigned_system"`
	AssignedTo      string          `json:"assigned_to,omitempty"`
	Workers         []string        `json:"workers,omitempty"`
	Timeline        []TimelineEvent `json:"timeline"`
	RootCause       string          `json:"root_cause"`
	Resolution      string          `json:"resolution"`
	Recommendations []string        `json:"recommendations"`

	// Customer service profile.
	Category       string `json:"category,omitempty"`
	Response       string `json:"response,omitempty"`
	ResolutionTime string `json:"resolution_time,omitempty"`

	// Generic profile.
	Message string      `json:"message,omitempty"`
	Input   *Submission `json:"input_received,omitempty"`
}
