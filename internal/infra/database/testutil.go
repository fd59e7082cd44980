package database

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestDB creates a migrated in-memory SQLite database private to t.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "Failed to create test database")

	err = Migrate(db)
	require.NoError(t, err, "Failed to run migrations on test database")

	t.Cleanup(func() { _ = db.Close() })
	return db
}
