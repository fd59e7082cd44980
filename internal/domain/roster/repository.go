package roster

import (
	"context"
)

// Source loads roster members. Active members come first, followed by
// emeritus members, each group in source order.
type Source interface {
	ListMembers(ctx context.Context) ([]Member, error)
}
