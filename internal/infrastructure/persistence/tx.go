package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txContextKey carries the active transaction handle through a context.
type txContextKey struct{}

// GormTransactionManager implements shared.TransactionManager on a gorm
// connection. The transaction handle travels in the context, so every
// repository built on the same connection joins the transaction without
// knowing about it.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. The transaction
// commits when fn returns nil and rolls back when it returns an error.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// dbFromContext returns the transaction handle carried by ctx, or fallback
// when no transaction is active.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
