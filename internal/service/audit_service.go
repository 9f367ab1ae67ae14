package service

import (
	"context"

	"sequoiacare/internal/domain/entity"
	"sequoiacare/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditSavePoint = "audit_log"

type AuditService interface {
	// LogCreate records the creation of entityName/entityID inside tx.
	LogCreate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, newValue interface{})
	// LogEvent records an action with no entity snapshot, such as a login.
	LogEvent(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, newValue interface{}) {
	s.record(ctx, tx, &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"new_value": newValue,
		},
	})
}

func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON) {
	s.record(ctx, tx, &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	})
}

// record never fails the caller. The insert runs under a savepoint so a
// failed audit row does not abort the surrounding transaction.
func (s *auditService) record(ctx context.Context, tx *gorm.DB, auditLog *entity.AuditLog) {
	if err := tx.SavePoint(auditSavePoint).Error; err != nil {
		s.log.Warnf("Failed to create audit savepoint: %+v", err)
		return
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.WithField("action", auditLog.Action).Warnf("Failed to create audit log: %+v", err)
		if rbErr := tx.RollbackTo(auditSavePoint).Error; rbErr != nil {
			s.log.Warnf("Failed to roll back audit savepoint: %+v", rbErr)
		}
	}
}
