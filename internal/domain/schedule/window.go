// internal/domain/schedule/window.go
package schedule

import (
	"fmt"
	"time"
)

// WindowDays is the length of one reporting window.
const WindowDays = 7

// Window is a reporting window. Both ends are inclusive, so a row dated on
// the shared boundary of two adjacent windows belongs to both.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t lies within the window.
func (w Window) Contains(t time.Time) bool {
	d := CalendarDate(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

// CurrentWindow returns [reference, reference+7d].
func CurrentWindow(reference time.Time) Window {
	start := CalendarDate(reference)
	return Window{Start: start, End: start.AddDate(0, 0, WindowDays)}
}

// NextWindow returns [reference+7d, reference+14d].
func NextWindow(reference time.Time) Window {
	start := CalendarDate(reference).AddDate(0, 0, WindowDays)
	return Window{Start: start, End: start.AddDate(0, 0, WindowDays)}
}

// Selection holds the rows of one window, in source order.
type Selection struct {
	Window  Window
	Matches []Row
}

// Missing reports whether no row fell into the window.
func (s Selection) Missing() bool {
	return len(s.Matches) == 0
}

// First returns the first matching row. Later matches for the same window
// are ignored.
func (s Selection) First() (Row, bool) {
	if s.Missing() {
		return Row{}, false
	}
	return s.Matches[0], true
}

// Select filters rows into the current and next windows for reference.
// It has no side effects and does not decide whether a window is acceptable.
func Select(rows []Row, reference time.Time) (current, next Selection) {
	current = filter(rows, CurrentWindow(reference))
	next = filter(rows, NextWindow(reference))
	return current, next
}

func filter(rows []Row, w Window) Selection {
	sel := Selection{Window: w}
	for _, r := range rows {
		if w.Contains(r.Date) {
			sel.Matches = append(sel.Matches, r)
		}
	}
	return sel
}
