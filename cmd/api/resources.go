package main

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/shoptodo/shoptodo-backend/internal/snapshots"
	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/shoptodo/shoptodo-backend/pkg/db"
	"github.com/shoptodo/shoptodo-backend/pkg/kv"
	"github.com/shoptodo/shoptodo-backend/pkg/redis"
)

// resources owns the long lived clients opened by run.
type resources struct {
	db    *db.Client
	redis *redis.Client
}

func (r *resources) Close() error {
	var err error
	if r.redis != nil {
		err = multierr.Append(err, r.redis.Close())
	}
	if r.db != nil {
		err = multierr.Append(err, r.db.Close())
	}
	return err
}

// snapshotStore picks the key-value transport behind every user's shop.
func snapshotStore(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client) (kv.Store, error) {
	switch cfg.Storage.Kind() {
	case config.StorageDriverDB:
		return snapshots.NewRepository(dbClient.DB(), cfg.Storage.Namespace), nil
	case config.StorageDriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("storage driver redis requires a redis connection")
		}
		return redisClient.SnapshotStore(), nil
	case config.StorageDriverMemory:
		return kv.NewMemory(), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
