// internal/domain/notification/outcome.go
package notification

import (
	"time"

	"github.com/hamiltra/net-reminder/internal/domain/schedule"
)

// Outcome is the result of resolving the current and next selections.
type Outcome struct {
	Kind    OutcomeKind
	Current schedule.Row // Set for OutcomeNormal
	Next    schedule.Row // Set for OutcomeNormal
	// MissingDate is the start of the window that had no assignment.
	MissingDate time.Time
}

// Resolve maps the two selections to an outcome. The current window is
// checked first: when it is empty the next window is never looked at, so a
// gap this week always produces the MISSING_CURRENT alert.
func Resolve(current, next schedule.Selection) Outcome {
	cur, ok := current.First()
	if !ok {
		return Outcome{Kind: OutcomeMissingCurrent, MissingDate: current.Window.Start}
	}
	nxt, ok := next.First()
	if !ok {
		return Outcome{Kind: OutcomeMissingNext, MissingDate: next.Window.Start}
	}
	return Outcome{Kind: OutcomeNormal, Current: cur, Next: nxt}
}

// Missing reports whether the outcome is one of the missing-assignment kinds.
func (o Outcome) Missing() bool {
	return o.Kind.Missing()
}
