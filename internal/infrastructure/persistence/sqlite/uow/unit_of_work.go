package uow

import (
	"context"

	"gorm.io/gorm"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

// UnitOfWork implements ports.UnitOfWork on a gorm transaction. The open
// *gorm.DB rides the callback context, so the failure, analysis, and
// taxonomy repositories resolve the same transaction and a reported
// failure and its cascade writes commit or roll back together.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// WithTx runs fn inside a transaction carried by the derived context.
func (u *UnitOfWork) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ports.WithTxContext(ctx, tx))
	})
}
