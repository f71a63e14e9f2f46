package tutil

import (
	"path/filepath"
	"testing"

	"github.com/materials-commons/mcinsight/pkg/insightdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB creates a migrated sqlite database in a file under t.TempDir(). The
// connection is closed when the test ends. A file, rather than an in memory
// database, lets tests exercise the functions that take a database path.
func NewTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "insight.db")
	db, err := insightdb.RecreateDatabaseFile(dbPath)
	require.NoErrorf(t, err, "Unable to create test database %s: %s", dbPath, err)

	t.Cleanup(func() {
		_ = insightdb.Close(db)
	})

	return db, dbPath
}
