package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Set(ctx, "shoptodo:cart", "[]"))
	require.NoError(t, store.Set(ctx, "shoptodo:todos", "[]"))
	require.NoError(t, store.Set(ctx, "user:a:cart", "[]"))

	got, err := store.Get(ctx, "shoptodo:cart")
	require.NoError(t, err)
	require.Equal(t, "[]", got)
	require.Equal(t, []string{"shoptodo:cart", "shoptodo:todos"}, store.Keys("shoptodo:"))

	require.NoError(t, store.Delete(ctx, "shoptodo:cart"))
	_, err = store.Get(ctx, "shoptodo:cart")
	require.ErrorIs(t, err, ErrNotFound)
}
