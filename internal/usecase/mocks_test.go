package usecase

import (
	"context"

	"sequoiacare/internal/domain/entity"
	"sequoiacare/internal/domain/repository"
	"sequoiacare/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Gateway

type mockGateway struct {
	sessions     int
	transactions int
	rolledBack   int
}

var _ repository.SessionGateway = (*mockGateway)(nil)

func (m *mockGateway) WithSession(_ context.Context, fn func(db *gorm.DB) error) error {
	m.sessions++
	return fn(nil)
}

func (m *mockGateway) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	m.transactions++
	if err := fn(nil); err != nil {
		m.rolledBack++
		return err
	}
	return nil
}

// Repositories

type mockUserRepo struct {
	CreateFunc        func(user *entity.User) error
	FindByEmailFunc   func(email string) (*entity.User, error)
	FindProvidersFunc func(filter *entity.ProviderFilter) ([]entity.User, error)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(_ context.Context, _ *gorm.DB, user *entity.User) error {
	return m.CreateFunc(user)
}

func (m *mockUserRepo) FindByEmail(_ context.Context, _ *gorm.DB, email string) (*entity.User, error) {
	return m.FindByEmailFunc(email)
}

func (m *mockUserRepo) FindProviders(_ context.Context, _ *gorm.DB, filter *entity.ProviderFilter) ([]entity.User, error) {
	return m.FindProvidersFunc(filter)
}

type mockProviderRepo struct {
	CreateFunc       func(provider *entity.Provider) error
	FindByUserIDFunc func(userID uint) (*entity.Provider, error)
}

var _ repository.ProviderRepository = (*mockProviderRepo)(nil)

func (m *mockProviderRepo) Create(_ context.Context, _ *gorm.DB, provider *entity.Provider) error {
	return m.CreateFunc(provider)
}

func (m *mockProviderRepo) FindByUserID(_ context.Context, _ *gorm.DB, userID uint) (*entity.Provider, error) {
	return m.FindByUserIDFunc(userID)
}

type mockSubespecialidadeRepo struct {
	FirstOrCreateFunc func(nome string) (*entity.Subespecialidade, error)
	FindAllNamesFunc  func() ([]string, error)
}

var _ repository.SubespecialidadeRepository = (*mockSubespecialidadeRepo)(nil)

func (m *mockSubespecialidadeRepo) FirstOrCreate(_ context.Context, _ *gorm.DB, nome string) (*entity.Subespecialidade, error) {
	return m.FirstOrCreateFunc(nome)
}

func (m *mockSubespecialidadeRepo) FindAllNames(_ context.Context, _ *gorm.DB) ([]string, error) {
	return m.FindAllNamesFunc()
}

type mockIdiomaRepo struct {
	FirstOrCreateFunc func(nome string) (*entity.Idioma, error)
	FindAllNamesFunc  func() ([]string, error)
}

var _ repository.IdiomaRepository = (*mockIdiomaRepo)(nil)

func (m *mockIdiomaRepo) FirstOrCreate(_ context.Context, _ *gorm.DB, nome string) (*entity.Idioma, error) {
	return m.FirstOrCreateFunc(nome)
}

func (m *mockIdiomaRepo) FindAllNames(_ context.Context, _ *gorm.DB) ([]string, error) {
	return m.FindAllNamesFunc()
}

type mockAuditLogRepo struct {
	CreateFunc  func(log *entity.AuditLog) error
	FindAllFunc func(limit, offset int) ([]entity.AuditLog, int64, error)
}

var _ repository.AuditLogRepository = (*mockAuditLogRepo)(nil)

func (m *mockAuditLogRepo) Create(_ context.Context, _ *gorm.DB, log *entity.AuditLog) error {
	return m.CreateFunc(log)
}

func (m *mockAuditLogRepo) FindAll(_ context.Context, _ *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error) {
	return m.FindAllFunc(limit, offset)
}

// Services

type auditEntry struct {
	UserID *uint
	Action string
}

type mockAuditService struct {
	entries []auditEntry
}

var _ service.AuditService = (*mockAuditService)(nil)

func (m *mockAuditService) LogCreate(_ context.Context, _ *gorm.DB, userID *uint, action string, _ string, _ uint, _ interface{}) {
	m.entries = append(m.entries, auditEntry{UserID: userID, Action: action})
}

func (m *mockAuditService) LogEvent(_ context.Context, _ *gorm.DB, userID *uint, action string, _ entity.JSON) {
	m.entries = append(m.entries, auditEntry{UserID: userID, Action: action})
}

func (m *mockAuditService) actions() []string {
	actions := make([]string, len(m.entries))
	for i, e := range m.entries {
		actions[i] = e.Action
	}
	return actions
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}
