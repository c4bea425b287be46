package snapshots

import (
	"context"
	"fmt"
	"testing"

	"github.com/shoptodo/shoptodo-backend/pkg/db/models"
	"github.com/shoptodo/shoptodo-backend/pkg/kv"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.KVEntry{}))
	return conn
}

func TestGetMissingKey(t *testing.T) {
	repo := NewRepository(newTestDB(t), "shoptodo")
	_, err := repo.Get(context.Background(), "cart")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestSetUpserts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRepository(db, "shoptodo")

	require.NoError(t, repo.Set(ctx, "user:alice:cart", `[]`))
	require.NoError(t, repo.Set(ctx, "user:alice:cart", `[{"productId":1}]`))

	got, err := repo.Get(ctx, "user:alice:cart")
	require.NoError(t, err)
	require.Equal(t, `[{"productId":1}]`, got)

	var count int64
	require.NoError(t, db.Model(&models.KVEntry{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	a := NewRepository(db, "a")
	b := NewRepository(db, "")

	require.NoError(t, a.Set(ctx, "language", `"en"`))
	_, err := b.Get(ctx, "language")
	require.ErrorIs(t, err, kv.ErrNotFound)
	require.Equal(t, "default", b.namespace)
}

func TestDeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t), "shoptodo")

	for _, key := range []string{"user:bob:todos", "user:bob:cart", "user:b_b:cart", "shoptodo:cart"} {
		require.NoError(t, repo.Set(ctx, key, "null"))
	}

	keys, err := repo.Keys(ctx, "user:bob:")
	require.NoError(t, err)
	require.Equal(t, []string{"user:bob:cart", "user:bob:todos"}, keys)

	require.NoError(t, repo.Delete(ctx, "user:bob:cart"))
	require.NoError(t, repo.Delete(ctx, "missing"))
	keys, err = repo.Keys(ctx, "user:")
	require.NoError(t, err)
	require.Equal(t, []string{"user:b_b:cart", "user:bob:todos"}, keys)
}
