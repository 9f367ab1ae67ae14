package repository

import (
	"context"
	"errors"

	"sequoiacare/internal/domain/entity"
	domainRepo "sequoiacare/internal/domain/repository"

	"gorm.io/gorm"
)

type providerRepository struct{}

func NewProviderRepository() domainRepo.ProviderRepository {
	return &providerRepository{}
}

func (r *providerRepository) Create(ctx context.Context, db *gorm.DB, provider *entity.Provider) error {
	// Only the link rows are written for the associations; User and the
	// reference rows are created beforehand in the same transaction.
	return db.WithContext(ctx).
		Omit("User", "Subespecialidades.*", "Idiomas.*").
		Create(provider).Error
}

func (r *providerRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uint) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.WithContext(ctx).
		Preload("User").
		Preload("Subespecialidades", func(db *gorm.DB) *gorm.DB { return db.Order("subespecialidades.id") }).
		Preload("Idiomas", func(db *gorm.DB) *gorm.DB { return db.Order("idiomas.id") }).
		Where("user_id = ?", userID).
		First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}
