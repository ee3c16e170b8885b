// file: db/migrate_test.go

package db

import (
	"meetbook-api/logger"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestRunMigrations_BadInputs(t *testing.T) {
	t.Run("missing source directory", func(t *testing.T) {
		err := RunMigrations("file://no-such-migrations-dir", "postgres://meetbook@localhost:5432/meetbook?sslmode=disable")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot create migrate instance")
	})

	t.Run("malformed database url", func(t *testing.T) {
		err := RunMigrations("file://migrations", "not-a-database-url")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot create migrate instance")
	})
}
