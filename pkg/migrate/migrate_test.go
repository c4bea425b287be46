package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestRunUpCreatesTables(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Run(ctx, db, "sqlite", "up"))

	for _, table := range []string{"users", "kv_entries"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	version, err := Version(ctx, db, "sqlite")
	require.NoError(t, err)
	require.Equal(t, int64(20250301091500), version)
}

func TestMigrateToVersionDown(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Run(ctx, db, "sqlite", "up"))
	require.NoError(t, MigrateToVersion(ctx, db, "sqlite", "20250301090000"))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master WHERE type='table' AND name = 'kv_entries'").Scan(&count))
	require.Zero(t, count)

	require.Error(t, MigrateToVersion(ctx, db, "sqlite", "not-a-version"))
}

func TestDialect(t *testing.T) {
	d, err := Dialect("postgres")
	require.NoError(t, err)
	require.Equal(t, "postgres", d)

	d, err = Dialect("SQLite")
	require.NoError(t, err)
	require.Equal(t, "sqlite3", d)

	_, err = Dialect("oracle")
	require.Error(t, err)
}

func TestValidateEmbedded(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}

func TestCreateAndValidateDir(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Orders Index!", now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20250304050607_add_orders_index.sql"), path)
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "Add Orders Index!", now)
	require.Error(t, err, "same version must not be overwritten")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.sql"), []byte("-- +goose Up"), 0o644))
	require.Error(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "!!!", now)
	require.Error(t, err)
}
