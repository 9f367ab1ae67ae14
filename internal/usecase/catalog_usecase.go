package usecase

import (
	"context"

	"sequoiacare/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CatalogUsecase lists the reference vocabularies used to filter providers.
type CatalogUsecase interface {
	ListSubespecialidades(ctx context.Context) ([]string, error)
	ListIdiomas(ctx context.Context) ([]string, error)
}

type catalogUsecase struct {
	gateway              repository.SessionGateway
	log                  *logrus.Logger
	subespecialidadeRepo repository.SubespecialidadeRepository
	idiomaRepo           repository.IdiomaRepository
}

func NewCatalogUsecase(
	gateway repository.SessionGateway,
	log *logrus.Logger,
	subespecialidadeRepo repository.SubespecialidadeRepository,
	idiomaRepo repository.IdiomaRepository,
) CatalogUsecase {
	return &catalogUsecase{
		gateway:              gateway,
		log:                  log,
		subespecialidadeRepo: subespecialidadeRepo,
		idiomaRepo:           idiomaRepo,
	}
}

func (u *catalogUsecase) ListSubespecialidades(ctx context.Context) ([]string, error) {
	var names []string
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		names, err = u.subespecialidadeRepo.FindAllNames(ctx, db)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find subespecialidades: %+v", err)
		return nil, err
	}
	return names, nil
}

func (u *catalogUsecase) ListIdiomas(ctx context.Context) ([]string, error) {
	var names []string
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		names, err = u.idiomaRepo.FindAllNames(ctx, db)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find idiomas: %+v", err)
		return nil, err
	}
	return names, nil
}
