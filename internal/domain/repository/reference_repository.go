package repository

import (
	"context"

	"sequoiacare/internal/domain/entity"

	"gorm.io/gorm"
)

type SubespecialidadeRepository interface {
	// FirstOrCreate returns the row named nome, inserting it if absent.
	FirstOrCreate(ctx context.Context, db *gorm.DB, nome string) (*entity.Subespecialidade, error)
	FindAllNames(ctx context.Context, db *gorm.DB) ([]string, error)
}

type IdiomaRepository interface {
	FirstOrCreate(ctx context.Context, db *gorm.DB, nome string) (*entity.Idioma, error)
	FindAllNames(ctx context.Context, db *gorm.DB) ([]string, error)
}
