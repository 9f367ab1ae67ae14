package database

import (
	"context"
	"fmt"

	"sequoiacare/internal/domain/repository"

	"gorm.io/gorm"
)

type sessionGateway struct {
	db *gorm.DB
}

func NewSessionGateway(db *gorm.DB) repository.SessionGateway {
	return &sessionGateway{db: db}
}

func (g *sessionGateway) WithSession(ctx context.Context, fn func(db *gorm.DB) error) error {
	return fn(g.db.WithContext(ctx))
}

func (g *sessionGateway) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	// No-op after a successful commit; also runs when fn panics.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
