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

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	gateway      repository.SessionGateway
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	gateway repository.SessionGateway,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		gateway:      gateway,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error) {
	var page dto.AuditLogListQuery
	if query != nil {
		page = *query
	}
	if page.Limit <= 0 {
		page.Limit = dto.DefaultAuditLogLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	var logs []entity.AuditLog
	var total int64
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		logs, total, err = u.auditLogRepo.FindAll(ctx, db, page.Limit, page.Offset)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:   converter.AuditLogsToResponses(logs),
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}
