package repository

import (
	"context"

	"gorm.io/gorm"
)

// SessionGateway scopes store access to a single request.
type SessionGateway interface {
	// WithSession runs fn against a context-bound session without a transaction.
	WithSession(ctx context.Context, fn func(db *gorm.DB) error) error
	// WithTransaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
