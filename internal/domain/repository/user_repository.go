package repository

import (
	"context"

	"sequoiacare/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindProviders(ctx context.Context, db *gorm.DB, filter *entity.ProviderFilter) ([]entity.User, error)
}
