package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techflow/techflow/internal/shared/config"
)

func TestOpen_SQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "techflow.db")

	db, err := Open(&config.DatabaseConfig{Dialect: config.DialectSQLite, SQLitePath: path})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
	assert.FileExists(t, path)
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Dialect: "oracle"})
	assert.Error(t, err)
}

func TestInitAndClose(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Dialect:    config.DialectSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "techflow.db"),
	}
	require.NoError(t, Init(cfg))
	assert.NotNil(t, Get())
	assert.NoError(t, Close())
}
