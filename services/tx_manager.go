package services

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction.
// Services depend on this interface rather than on *gorm.DB directly,
// so multi-write operations (signup, upload create, cascade delete)
// stay atomic in production and run against a pass-through fake in
// tests.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
