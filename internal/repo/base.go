// Package repo holds the gorm plumbing shared by the user and snapshot
// repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by repositories that talk to the relational store.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection scoped to ctx. A nil ctx yields the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
