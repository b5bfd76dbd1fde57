package database

import (
	"io"
	"log/slog"
	"testing"

	"reviewhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=1", withForeignKeys("app.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=1", withForeignKeys("file::memory:?cache=shared"))
	assert.Equal(t, "app.db?_fk=1", withForeignKeys("app.db?_fk=1"))
}

func TestOpenMigratesSchema(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := Open(DriverSQLite, dsn, logger)
	require.NoError(t, err)

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasTable("title_genres"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := Open("mysql", "", logger)
	assert.ErrorContains(t, err, "unsupported database driver")
}
