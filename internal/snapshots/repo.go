// Package snapshots is the SQL transport for the persistence adapter: each
// snapshot is one row in kv_entries keyed by (namespace, key).
package snapshots

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/repo"
	"github.com/shoptodo/shoptodo-backend/pkg/db/models"
	"github.com/shoptodo/shoptodo-backend/pkg/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements kv.Store over the kv_entries table.
type Repository struct {
	repo.Base
	namespace string
	now       func() time.Time
}

// NewRepository binds a store to namespace. An empty namespace maps to "default".
func NewRepository(db *gorm.DB, namespace string) *Repository {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "default"
	}
	return &Repository{Base: repo.NewBase(db), namespace: namespace, now: time.Now}
}

var _ kv.Store = (*Repository)(nil)

func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	var entry models.KVEntry
	err := r.DB(ctx).
		Where("namespace = ? AND key = ?", r.namespace, key).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", kv.ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

// Set upserts the value for key.
func (r *Repository) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{
		Namespace: r.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: r.now().UTC(),
	}
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	return r.DB(ctx).
		Where("namespace = ? AND key = ?", r.namespace, key).
		Delete(&models.KVEntry{}).Error
}

// Keys lists the stored keys starting with prefix.
func (r *Repository) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := r.DB(ctx).
		Model(&models.KVEntry{}).
		Where(`namespace = ? AND key LIKE ? ESCAPE '\'`, r.namespace, escapeLike(prefix)+"%").
		Order("key").
		Pluck("key", &keys).Error
	return keys, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
