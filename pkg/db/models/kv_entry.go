package models

import "time"

// KVEntry stores one serialized snapshot under a namespaced key.
type KVEntry struct {
	Namespace string    `gorm:"column:namespace;type:text;primaryKey"`
	Key       string    `gorm:"column:key;type:text;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (KVEntry) TableName() string { return "kv_entries" }
