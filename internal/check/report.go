package check

import (
	"time"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

func ParseSeverity(str string) (Severity, bool) {
	switch Severity(str) {
	case SeverityError, "":
		return SeverityError, true
	case SeverityWarning, "warn":
		return SeverityWarning, true
	default:
		return "", false
	}
}

// Names of the checks an issue can originate from.
const (
	CheckStructure = "structure"
	CheckSyntax    = "syntax"
	CheckPage      = "page"
	CheckAnchor    = "anchor"
	CheckRemote    = "remote"
	CheckRule      = "rule"
	CheckOrphan    = "orphan"
)

type Issue struct {
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`
	Rule     string   `json:"rule,omitempty"`
	Location string   `json:"location"`
	Text     string   `json:"text,omitempty"`
	Link     string   `json:"link,omitempty"`
	Message  string   `json:"message"`

	position int
}

type Report struct {
	ID            string    `json:"id"`
	Site          string    `json:"site"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
	Links         int       `json:"links"`
	FailOnWarning bool      `json:"failOnWarning"`
	Issues        []Issue   `json:"issues"`
}

func (r *Report) Errors() int {
	return r.count(SeverityError)
}

func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(severity Severity) int {
	total := 0
	for _, i := range r.Issues {
		if i.Severity == severity {
			total++
		}
	}
	return total
}

// Failed reports whether the validated site should be rejected.
func (r *Report) Failed() bool {
	if r.Errors() > 0 {
		return true
	}

	return r.FailOnWarning && r.Warnings() > 0
}

func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
