package main

import (
	"testing"

	"github.com/shoptodo/shoptodo-backend/internal/snapshots"
	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/shoptodo/shoptodo-backend/pkg/db"
	"github.com/shoptodo/shoptodo-backend/pkg/kv"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStoreSelection(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "memory"}}
	store, err := snapshotStore(cfg, nil, nil)
	require.NoError(t, err)
	require.IsType(t, &kv.Memory{}, store)

	cfg.Storage.Driver = "redis"
	_, err = snapshotStore(cfg, nil, nil)
	require.Error(t, err)

	cfg.Storage.Driver = "tape"
	_, err = snapshotStore(cfg, nil, nil)
	require.Error(t, err)
}

func TestSnapshotStoreDB(t *testing.T) {
	// The repository only touches the connection on use.
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "db", Namespace: "shoptodo"}}
	store, err := snapshotStore(cfg, db.NewFromGorm(nil, config.DBDriverSQLite), nil)
	require.NoError(t, err)
	require.IsType(t, &snapshots.Repository{}, store)
}

func TestResourcesCloseWithNothingOpen(t *testing.T) {
	require.NoError(t, (&resources{}).Close())
}
