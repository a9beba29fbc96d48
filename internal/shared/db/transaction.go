// Package db carries the transaction plumbing shared by the repositories.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// TransactionManager starts transactions and threads them through context,
// so use cases stay free of gorm types.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside one transaction. Repositories called with
// the derived context join it via GetTxFromContext; fn returning an error
// rolls everything back. Row locks taken inside fn are held until it
// returns.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// GetTxFromContext is the repository-side counterpart of RunInTransaction:
// it yields the context's transaction when one is active, and falls back to
// defaultDB otherwise. Either way the returned handle carries ctx.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
