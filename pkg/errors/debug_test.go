package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestDumpPostgresError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username", TableName: "users", Detail: "Key (username)=(bob) already exists."}
	err := Wrap(CodeConflict, fmt.Errorf("insert user: %w", pgErr), "username already taken")

	d := Dump(err)
	require.Equal(t, CodeConflict, d.Code)
	require.Equal(t, StorePostgres, d.Store)
	require.Equal(t, "23505", d.StoreCode)
	require.Equal(t, "idx_users_username", d.Constraint)
	require.Len(t, d.Chain, 3)

	fields := d.Fields()
	require.Equal(t, "users", fields["table"])
	require.Equal(t, StorePostgres, fields["store"])
}

func TestDumpSQLiteError(t *testing.T) {
	liteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
	d := Dump(fmt.Errorf("upsert snapshot: %w", liteErr))

	require.Equal(t, StoreSQLite, d.Store)
	require.Equal(t, fmt.Sprintf("%d", int(sqlite3.ErrConstraintUnique)), d.StoreCode)
	require.NotEmpty(t, d.StoreDetail)
	require.Empty(t, d.Constraint)
	require.NotContains(t, d.Fields(), "constraint")
}

func TestDumpRedisError(t *testing.T) {
	d := Dump(fmt.Errorf("read snapshot: %w", redis.Nil))
	require.Equal(t, StoreRedis, d.Store)
	require.Equal(t, "redis: nil", d.StoreDetail)
}

func TestDumpPlainError(t *testing.T) {
	require.Equal(t, ErrorDump{}, Dump(nil))

	d := Dump(New(CodeValidation, "text is required"))
	require.Empty(t, d.Store)
	fields := d.Fields()
	require.Equal(t, CodeValidation, fields["error_code"])
	require.NotContains(t, fields, "store")
}
