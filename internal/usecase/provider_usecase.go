package usecase

import (
	"context"

	"sequoiacare/internal/converter"
	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/domain/entity"
	"sequoiacare/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProviderUsecase interface {
	ListProviders(ctx context.Context, query *dto.ProviderListQuery) ([]dto.UserResponse, error)
	GetProvider(ctx context.Context, userID uint) (*dto.ProviderResponse, error)
}

type providerUsecase struct {
	gateway      repository.SessionGateway
	log          *logrus.Logger
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
}

func NewProviderUsecase(
	gateway repository.SessionGateway,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
) ProviderUsecase {
	return &providerUsecase{
		gateway:      gateway,
		log:          log,
		userRepo:     userRepo,
		providerRepo: providerRepo,
	}
}

func (u *providerUsecase) ListProviders(ctx context.Context, query *dto.ProviderListQuery) ([]dto.UserResponse, error) {
	var users []entity.User
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		users, err = u.userRepo.FindProviders(ctx, db, converter.ProviderListQueryToFilter(query))
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find providers: %+v", err)
		return nil, err
	}

	return converter.UsersToResponses(users), nil
}

func (u *providerUsecase) GetProvider(ctx context.Context, userID uint) (*dto.ProviderResponse, error) {
	var provider *entity.Provider
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		provider, err = u.providerRepo.FindByUserID(ctx, db, userID)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find provider by user ID: %+v", err)
		return nil, err
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	return converter.ProviderToResponse(provider), nil
}
