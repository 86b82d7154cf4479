package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// ContextWithTx returns a context carrying an open transaction. Every
// repository call made with that context joins the transaction instead
// of the base connection.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction carried by ctx, or nil.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// TxManager runs a function inside a database transaction. All writes
// issued through the derived context commit together or roll back
// together.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// GormTxManager implements TxManager on a GORM connection.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTx(ctx, tx))
	})
}

// conn picks the transaction from ctx when present, the base handle
// otherwise. Shared by all GORM repositories.
func conn(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return base.WithContext(ctx)
}
