package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the gorm handle shared by the domain repositories. It owns
// the two chores every repository repeats: scoping the handle to the
// caller's context and swapping it for a transaction one.
type Base struct {
	db *gorm.DB
}

// NewBase binds a Base to the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection scoped to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Rebind returns a Base bound to the transaction handle. A nil tx keeps
// the current binding, so WithTx chains tolerate callers outside a
// transaction.
func (b Base) Rebind(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}
