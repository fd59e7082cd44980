// internal/domain/schedule/row.go
package schedule

import "time"

// DateLayout is how net dates are printed in notices and logs (mm/dd/yyyy).
const DateLayout = "01/02/2006"

// Row is one assignment line of the Net Control schedule.
type Row struct {
	Date       time.Time // Calendar date, normalized with CalendarDate
	PeriodType string    // e.g. "Weekly", "Travel"
	Primary    string
	Backup     string
}

// FormattedDate returns the row date as mm/dd/yyyy.
func (r Row) FormattedDate() string {
	return r.Date.Format(DateLayout)
}

// CalendarDate drops the time of day and location, keeping only the date
// as it reads in t's own location.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
