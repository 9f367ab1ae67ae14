package repository

import (
	"context"
	"errors"

	"sequoiacare/internal/domain/entity"
	domainRepo "sequoiacare/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindProviders(ctx context.Context, db *gorm.DB, filter *entity.ProviderFilter) ([]entity.User, error) {
	query := db.WithContext(ctx).Model(&entity.User{}).Where("users.role = ?", entity.RoleProvedor)

	if filter != nil {
		if filter.Subespecialidade != "" {
			query = query.Where(`EXISTS (
				SELECT 1 FROM providers p
				JOIN provider_subespecialidade ps ON ps.provider_id = p.id
				JOIN subespecialidades s ON s.id = ps.subespecialidade_id
				WHERE p.user_id = users.id AND s.nome = ?)`, filter.Subespecialidade)
		}
		if filter.Idioma != "" {
			query = query.Where(`EXISTS (
				SELECT 1 FROM providers p
				JOIN provider_idioma pi ON pi.provider_id = p.id
				JOIN idiomas i ON i.id = pi.idioma_id
				WHERE p.user_id = users.id AND i.nome = ?)`, filter.Idioma)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where("(users.nome ILIKE ? OR users.sobrenome ILIKE ?)", pattern, pattern)
		}
	}

	users := make([]entity.User, 0)
	if err := query.Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
