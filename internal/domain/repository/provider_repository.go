package repository

import (
	"context"

	"sequoiacare/internal/domain/entity"

	"gorm.io/gorm"
)

type ProviderRepository interface {
	// Create inserts the provider row and its specialty/language links.
	// The referenced User and reference rows must already exist.
	Create(ctx context.Context, db *gorm.DB, provider *entity.Provider) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uint) (*entity.Provider, error)
}
