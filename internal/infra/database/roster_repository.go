package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hamiltra/net-reminder/internal/domain/roster"
)

// RosterRepository reads members from the roster_members table.
type RosterRepository struct {
	db *DB
}

func NewRosterRepository(db *DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListMembers returns active members before emeritus members. Members with a
// NULL or blank email are discarded.
func (r *RosterRepository) ListMembers(ctx context.Context) ([]roster.Member, error) {
	query := `SELECT name, email, emeritus
               FROM roster_members ORDER BY emeritus, id`

	rows, err := r.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing roster members: %w", err)
	}
	defer rows.Close()

	members := make([]roster.Member, 0)
	for rows.Next() {
		var (
			m     roster.Member
			email sql.NullString
		)
		if err := rows.Scan(&m.Name, &email, &m.Emeritus); err != nil {
			return nil, fmt.Errorf("error scanning roster member: %w", err)
		}
		m.Email = strings.TrimSpace(email.String)
		if m.Email == "" {
			continue
		}
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster members: %w", err)
	}
	return members, nil
}
