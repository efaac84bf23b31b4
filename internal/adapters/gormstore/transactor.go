package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/pkgtags/internal/ports/secondary"
)

// Transactor implements secondary.Transactor with gorm transactions.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor creates a new gorm transactor.
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn with a tag repository bound to a new transaction.
// The transaction rolls back when fn returns an error.
func (t *Transactor) WithinTx(ctx context.Context, fn func(tags secondary.TagRepository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TagRepository{db: tx})
	})
}

// Ensure Transactor implements the interface.
var _ secondary.Transactor = (*Transactor)(nil)
