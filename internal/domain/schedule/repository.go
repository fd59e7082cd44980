// internal/domain/schedule/repository.go
package schedule

import "context"

// Source loads the schedule rows for a run. Implementations return rows in
// source order and never mutate the underlying store.
type Source interface {
	ListRows(ctx context.Context) ([]Row, error)
}
