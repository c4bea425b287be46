package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return "sess:" + accessID
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestManagerGenerateAndRotate(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	token, err := manager.Generate(ctx, "access-123")
	require.NoError(t, err)
	require.Equal(t, token, store.data["sess:access-123"])

	_, _, err = manager.Rotate(ctx, "access-123", "wrong")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	newAccessID, newToken, err := manager.Rotate(ctx, "access-123", token)
	require.NoError(t, err)
	require.NotContains(t, store.data, "sess:access-123")
	require.Equal(t, newToken, store.data["sess:"+newAccessID])

	_, _, err = manager.Rotate(ctx, "access-123", token)
	require.ErrorIs(t, err, ErrInvalidRefreshToken, "old token must not rotate twice")
}

func TestManagerRevokeAndHasSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	_, err := manager.Generate(ctx, "jti-1")
	require.NoError(t, err)

	ok, err := manager.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, manager.Revoke(ctx, "jti-1"))
	ok, err = manager.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = manager.HasSession(ctx, " ")
	require.Error(t, err)
	require.Error(t, manager.Revoke(ctx, ""))
}

func TestNewManagerValidatesTTL(t *testing.T) {
	_, err := NewManager(nil, config.JWTConfig{})
	require.Error(t, err)
}
