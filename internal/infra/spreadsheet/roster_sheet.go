// internal/infra/spreadsheet/roster_sheet.go
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/hamiltra/net-reminder/internal/domain/roster"
)

// RosterWorkbook reads the active and emeritus member sheets of the roster.
type RosterWorkbook struct {
	path          string
	activeSheet   string
	emeritusSheet string
}

func NewRosterWorkbook(path, activeSheet, emeritusSheet string) *RosterWorkbook {
	return &RosterWorkbook{path: path, activeSheet: activeSheet, emeritusSheet: emeritusSheet}
}

// ListMembers returns active members followed by emeritus members. Rows
// without an Email are discarded.
func (r *RosterWorkbook) ListMembers(ctx context.Context) ([]roster.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	active, err := r.readMembers(r.activeSheet, false)
	if err != nil {
		return nil, err
	}
	emeritus, err := r.readMembers(r.emeritusSheet, true)
	if err != nil {
		return nil, err
	}
	return append(active, emeritus...), nil
}

func (r *RosterWorkbook) readMembers(name string, emeritus bool) ([]roster.Member, error) {
	sh, err := readSheet(r.path, name, 0)
	if err != nil {
		return nil, err
	}
	emailCol, err := sh.column("Email", "E-mail")
	if err != nil {
		return nil, fmt.Errorf("roster sheet %q: %w", name, err)
	}
	nameCol, _ := sh.column("Name", "Call") // optional

	members := make([]roster.Member, 0, len(sh.rows))
	for _, row := range sh.rows {
		email := cell(row, emailCol)
		if email == "" {
			continue
		}
		members = append(members, roster.Member{
			Name:     cell(row, nameCol),
			Email:    email,
			Emeritus: emeritus,
		})
	}
	return members, nil
}
