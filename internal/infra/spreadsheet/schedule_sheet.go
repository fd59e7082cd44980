// internal/infra/spreadsheet/schedule_sheet.go
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/hamiltra/net-reminder/internal/domain/schedule"
)

// Schedule sheets carry a title row above the column headers.
const scheduleTitleRows = 1

// ScheduleSheet reads the Net Control schedule from one worksheet.
type ScheduleSheet struct {
	path  string
	sheet string
}

func NewScheduleSheet(path, sheet string) *ScheduleSheet {
	return &ScheduleSheet{path: path, sheet: sheet}
}

// ListRows returns every dated row in sheet order. Rows with an empty DATE
// cell are skipped; a DATE cell that cannot be read is an error.
func (s *ScheduleSheet) ListRows(ctx context.Context) ([]schedule.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sh, err := readSheet(s.path, s.sheet, scheduleTitleRows)
	if err != nil {
		return nil, err
	}

	dateCol, err := sh.column("DATE")
	if err != nil {
		return nil, fmt.Errorf("schedule sheet %q: %w", s.sheet, err)
	}
	typeCol, err := sh.column("Net", "NET TYPE", "TYPE")
	if err != nil {
		return nil, fmt.Errorf("schedule sheet %q: %w", s.sheet, err)
	}
	primaryCol, err := sh.column("PRIMARY")
	if err != nil {
		return nil, fmt.Errorf("schedule sheet %q: %w", s.sheet, err)
	}
	backupCol, err := sh.column("BACKUP")
	if err != nil {
		return nil, fmt.Errorf("schedule sheet %q: %w", s.sheet, err)
	}

	rows := make([]schedule.Row, 0, len(sh.rows))
	for i, r := range sh.rows {
		raw := cell(r, dateCol)
		if raw == "" {
			continue
		}
		date, err := parseDate(raw)
		if err != nil {
			// +1 for the header row, +1 for 1-based numbering
			return nil, fmt.Errorf("schedule sheet %q row %d: %w", s.sheet, i+scheduleTitleRows+2, err)
		}
		rows = append(rows, schedule.Row{
			Date:       date,
			PeriodType: cell(r, typeCol),
			Primary:    cell(r, primaryCol),
			Backup:     cell(r, backupCol),
		})
	}
	return rows, nil
}
