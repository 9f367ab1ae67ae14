package repository

import (
	"context"

	"sequoiacare/internal/domain/entity"
	domainRepo "sequoiacare/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var onNomeConflictDoNothing = clause.OnConflict{
	Columns:   []clause.Column{{Name: "nome"}},
	DoNothing: true,
}

// Subespecialidade Repository

type subespecialidadeRepository struct{}

func NewSubespecialidadeRepository() domainRepo.SubespecialidadeRepository {
	return &subespecialidadeRepository{}
}

func (r *subespecialidadeRepository) FirstOrCreate(ctx context.Context, db *gorm.DB, nome string) (*entity.Subespecialidade, error) {
	row := entity.Subespecialidade{Nome: nome}
	if err := db.WithContext(ctx).Clauses(onNomeConflictDoNothing).Create(&row).Error; err != nil {
		return nil, err
	}
	// ID stays zero when the insert hit an existing name.
	if row.ID == 0 {
		if err := db.WithContext(ctx).Where("nome = ?", nome).First(&row).Error; err != nil {
			return nil, err
		}
	}
	return &row, nil
}

func (r *subespecialidadeRepository) FindAllNames(ctx context.Context, db *gorm.DB) ([]string, error) {
	names := make([]string, 0)
	err := db.WithContext(ctx).Model(&entity.Subespecialidade{}).Order("id").Pluck("nome", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Idioma Repository

type idiomaRepository struct{}

func NewIdiomaRepository() domainRepo.IdiomaRepository {
	return &idiomaRepository{}
}

func (r *idiomaRepository) FirstOrCreate(ctx context.Context, db *gorm.DB, nome string) (*entity.Idioma, error) {
	row := entity.Idioma{Nome: nome}
	if err := db.WithContext(ctx).Clauses(onNomeConflictDoNothing).Create(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		if err := db.WithContext(ctx).Where("nome = ?", nome).First(&row).Error; err != nil {
			return nil, err
		}
	}
	return &row, nil
}

func (r *idiomaRepository) FindAllNames(ctx context.Context, db *gorm.DB) ([]string, error) {
	names := make([]string, 0)
	err := db.WithContext(ctx).Model(&entity.Idioma{}).Order("id").Pluck("nome", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
