package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentAndNextWindow(t *testing.T) {
	ref := time.Date(2024, 1, 1, 18, 30, 0, 0, time.Local)

	cur := CurrentWindow(ref)
	assert.Equal(t, day(2024, 1, 1), cur.Start)
	assert.Equal(t, day(2024, 1, 8), cur.End)

	next := NextWindow(ref)
	assert.Equal(t, day(2024, 1, 8), next.Start)
	assert.Equal(t, day(2024, 1, 15), next.End)
	assert.Equal(t, "[01/08/2024, 01/15/2024]", next.String())
}

func TestSelect(t *testing.T) {
	ref := day(2024, 3, 10)

	tests := []struct {
		name        string
		rows        []Row
		wantCurrent []Row
		wantNext    []Row
	}{
		{
			name:        "Should return empty selections for an empty schedule",
			rows:        nil,
			wantCurrent: nil,
			wantNext:    nil,
		},
		{
			name:        "Should place a row three days out in the current window only",
			rows:        []Row{{Date: day(2024, 3, 13), PeriodType: "Weekly", Primary: "K1ABC", Backup: "W2XYZ"}},
			wantCurrent: []Row{{Date: day(2024, 3, 13), PeriodType: "Weekly", Primary: "K1ABC", Backup: "W2XYZ"}},
			wantNext:    nil,
		},
		{
			name:        "Should include a row on the reference date",
			rows:        []Row{{Date: day(2024, 3, 10), PeriodType: "Travel"}},
			wantCurrent: []Row{{Date: day(2024, 3, 10), PeriodType: "Travel"}},
			wantNext:    nil,
		},
		{
			name:        "Should include a row on the last day of the next window",
			rows:        []Row{{Date: day(2024, 3, 24), PeriodType: "Weekly"}},
			wantCurrent: nil,
			wantNext:    []Row{{Date: day(2024, 3, 24), PeriodType: "Weekly"}},
		},
		{
			name:        "Should ignore rows before the reference date and after the next window",
			rows:        []Row{{Date: day(2024, 3, 9)}, {Date: day(2024, 3, 25)}},
			wantCurrent: nil,
			wantNext:    nil,
		},
		{
			name: "Should keep every match in source order",
			rows: []Row{
				{Date: day(2024, 3, 14), Primary: "second"},
				{Date: day(2024, 3, 11), Primary: "first"},
			},
			wantCurrent: []Row{
				{Date: day(2024, 3, 14), Primary: "second"},
				{Date: day(2024, 3, 11), Primary: "first"},
			},
			wantNext: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, next := Select(tt.rows, ref)
			assert.Equal(t, tt.wantCurrent, cur.Matches)
			assert.Equal(t, tt.wantNext, next.Matches)
			assert.Equal(t, CurrentWindow(ref), cur.Window)
			assert.Equal(t, NextWindow(ref), next.Window)
		})
	}
}

func TestSelect_BoundaryRowBelongsToBothWindows(t *testing.T) {
	ref := day(2024, 1, 1)
	boundary := Row{Date: day(2024, 1, 8), PeriodType: "Weekly", Primary: "Alice", Backup: "Bob"}

	cur, next := Select([]Row{boundary}, ref)

	require.Len(t, cur.Matches, 1)
	require.Len(t, next.Matches, 1)
	assert.Equal(t, boundary, cur.Matches[0])
	assert.Equal(t, boundary, next.Matches[0])
}

func TestSelect_IsIdempotent(t *testing.T) {
	ref := day(2024, 1, 1)
	rows := []Row{
		{Date: day(2024, 1, 5), PeriodType: "Weekly", Primary: "Alice", Backup: "Bob"},
		{Date: day(2024, 1, 12), PeriodType: "Weekly", Primary: "Carol", Backup: "Dave"},
	}

	cur1, next1 := Select(rows, ref)
	cur2, next2 := Select(rows, ref)

	assert.Equal(t, cur1, cur2)
	assert.Equal(t, next1, next2)
	assert.Len(t, rows, 2)
}

func TestSelection_First(t *testing.T) {
	_, ok := Selection{}.First()
	assert.False(t, ok)

	sel := Selection{Matches: []Row{{Primary: "first"}, {Primary: "second"}}}
	row, ok := sel.First()
	require.True(t, ok)
	assert.Equal(t, "first", row.Primary)
	assert.False(t, sel.Missing())
}

func TestRow_FormattedDate(t *testing.T) {
	assert.Equal(t, "01/05/2024", Row{Date: day(2024, 1, 5)}.FormattedDate())
}
