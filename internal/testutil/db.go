// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"movie-recommendation/internal/config"
	"movie-recommendation/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
)

var dbSeq atomic.Int64

// NewDatabase returns a migrated in-memory SQLite database with foreign keys
// enforced. The database is closed when the test ends.
func NewDatabase(t testing.TB) *database.Database {
	t.Helper()

	logrus.SetLevel(logrus.WarnLevel)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, dbSeq.Add(1))

	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		QueryTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
