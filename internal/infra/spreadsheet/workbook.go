// internal/infra/spreadsheet/workbook.go
package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hamiltra/net-reminder/internal/domain/schedule"

	"github.com/xuri/excelize/v2"
)

// ErrColumnNotFound is returned when a required header is absent.
var ErrColumnNotFound = errors.New("column not found")

// Accepted text layouts for date cells that are not stored as Excel serials.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
}

// sheet is one worksheet read as raw cell values: header is the column
// header row and rows are the data rows below it.
type sheet struct {
	header []string
	rows   [][]string
}

// readSheet opens path and returns the named sheet. skip title rows are
// discarded before the header row.
func readSheet(path, name string, skip int) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", name, path, err)
	}
	if len(rows) <= skip {
		return nil, fmt.Errorf("sheet %q of %s has no header row", name, path)
	}
	return &sheet{header: rows[skip], rows: rows[skip+1:]}, nil
}

// column returns the index of the first header matching one of names,
// ignoring case and surrounding spaces.
func (s *sheet) column(names ...string) (int, error) {
	for i, h := range s.header {
		h = strings.TrimSpace(h)
		for _, n := range names {
			if strings.EqualFold(h, n) {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(names, "/"))
}

// cell returns the trimmed value at col, or "" for cells past the end of a
// short row.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// parseDate reads a date cell. Excel stores dates as serial day numbers;
// sheets typed by hand may hold text instead.
func parseDate(v string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", v, err)
		}
		return schedule.CalendarDate(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return schedule.CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}
