package database

import (
	"context"
	"fmt"
	"time"

	"github.com/hamiltra/net-reminder/internal/domain/schedule"
)

// ScheduleRepository reads schedule rows from the net_schedule table.
type ScheduleRepository struct {
	db *DB
}

func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListRows returns every row in insertion order.
func (r *ScheduleRepository) ListRows(ctx context.Context) ([]schedule.Row, error) {
	query := `SELECT net_date, net_type, primary_operator, backup_operator
               FROM net_schedule ORDER BY id`

	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing schedule rows: %w", err)
	}
	defer rows.Close()

	result := make([]schedule.Row, 0)
	for rows.Next() {
		var (
			row  schedule.Row
			date time.Time
		)
		if err := rows.Scan(&date, &row.PeriodType, &row.Primary, &row.Backup); err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		row.Date = schedule.CalendarDate(date)
		result = append(result, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}
	return result, nil
}
