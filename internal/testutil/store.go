// Package testutil provides in-memory stand-ins for the gorm-backed
// repositories so the full HTTP stack can run without Postgres.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sequoiacare/internal/domain/entity"
	"sequoiacare/internal/domain/repository"
	"sequoiacare/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store holds every table in memory. Repositories ignore the *gorm.DB they
// are handed; the gateway passes nil.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users     []entity.User
	providers []entity.Provider
	subs      []entity.Subespecialidade
	idiomas   []entity.Idioma
	audits    []entity.AuditLog

	nextID uint
}

func NewStore() *Store {
	return &Store{}
}

type snapshot struct {
	users     []entity.User
	providers []entity.Provider
	subs      []entity.Subespecialidade
	idiomas   []entity.Idioma
	audits    []entity.AuditLog
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:     append([]entity.User(nil), s.users...),
		providers: append([]entity.Provider(nil), s.providers...),
		subs:      append([]entity.Subespecialidade(nil), s.subs...),
		idiomas:   append([]entity.Idioma(nil), s.idiomas...),
		audits:    append([]entity.AuditLog(nil), s.audits...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.providers = snap.providers
	s.subs = snap.subs
	s.idiomas = snap.idiomas
	s.audits = snap.audits
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}

// SetActive flips the is_active flag of the user with email.
func (s *Store) SetActive(email string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			s.users[i].IsActive = &active
		}
	}
}

// Counts reports the number of rows per table.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"users":             len(s.users),
		"providers":         len(s.providers),
		"subespecialidades": len(s.subs),
		"idiomas":           len(s.idiomas),
		"audit_logs":        len(s.audits),
	}
}

// Gateway

type gateway struct {
	store *Store
}

func (s *Store) Gateway() repository.SessionGateway {
	return &gateway{store: s}
}

func (g *gateway) WithSession(_ context.Context, fn func(db *gorm.DB) error) error {
	return fn(nil)
}

// WithTransaction serializes transactions and restores the previous state
// when fn fails or panics.
func (g *gateway) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	g.store.txMu.Lock()
	defer g.store.txMu.Unlock()

	snap := g.store.snapshot()
	committed := false
	defer func() {
		if !committed {
			g.store.restore(snap)
		}
	}()

	if err := fn(nil); err != nil {
		return err
	}
	committed = true
	return nil
}

// Users

type userRepository struct {
	store *Store
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(_ context.Context, _ *gorm.DB, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return uniqueViolation("uq_users_email")
		}
	}

	user.ID = s.id()
	if user.IsActive == nil {
		active := true
		user.IsActive = &active
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now

	s.users = append(s.users, *user)
	return nil
}

func (r *userRepository) FindByEmail(_ context.Context, _ *gorm.DB, email string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindProviders(_ context.Context, _ *gorm.DB, filter *entity.ProviderFilter) ([]entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]entity.User, 0)
	for _, u := range s.users {
		if u.Role != entity.RoleProvedor {
			continue
		}
		if filter != nil && !s.matchesLocked(u, filter) {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) matchesLocked(u entity.User, filter *entity.ProviderFilter) bool {
	p := s.providerByUserIDLocked(u.ID)

	if filter.Subespecialidade != "" {
		if p == nil || !hasSub(p.Subespecialidades, filter.Subespecialidade) {
			return false
		}
	}
	if filter.Idioma != "" {
		if p == nil || !hasIdioma(p.Idiomas, filter.Idioma) {
			return false
		}
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(u.Nome), q) && !strings.Contains(strings.ToLower(u.Sobrenome), q) {
			return false
		}
	}
	return true
}

func hasSub(subs []entity.Subespecialidade, nome string) bool {
	for _, s := range subs {
		if s.Nome == nome {
			return true
		}
	}
	return false
}

func hasIdioma(idiomas []entity.Idioma, nome string) bool {
	for _, i := range idiomas {
		if i.Nome == nome {
			return true
		}
	}
	return false
}

func (s *Store) userByIDLocked(id uint) *entity.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *Store) providerByUserIDLocked(userID uint) *entity.Provider {
	for i := range s.providers {
		if s.providers[i].UserID == userID {
			return &s.providers[i]
		}
	}
	return nil
}

// Providers

type providerRepository struct {
	store *Store
}

func (s *Store) Providers() repository.ProviderRepository {
	return &providerRepository{store: s}
}

func (r *providerRepository) Create(_ context.Context, _ *gorm.DB, provider *entity.Provider) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.providers {
		if p.CRM == provider.CRM {
			return uniqueViolation("uq_providers_crm")
		}
		if p.UserID == provider.UserID {
			return uniqueViolation("uq_providers_user_id")
		}
	}

	provider.ID = s.id()
	row := *provider
	row.User = entity.User{}
	row.Subespecialidades = append([]entity.Subespecialidade(nil), provider.Subespecialidades...)
	row.Idiomas = append([]entity.Idioma(nil), provider.Idiomas...)
	s.providers = append(s.providers, row)
	return nil
}

func (r *providerRepository) FindByUserID(_ context.Context, _ *gorm.DB, userID uint) (*entity.Provider, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.providerByUserIDLocked(userID)
	if p == nil {
		return nil, nil
	}

	found := *p
	if u := s.userByIDLocked(userID); u != nil {
		found.User = *u
	}
	found.Subespecialidades = append([]entity.Subespecialidade(nil), p.Subespecialidades...)
	found.Idiomas = append([]entity.Idioma(nil), p.Idiomas...)
	sort.Slice(found.Subespecialidades, func(i, j int) bool { return found.Subespecialidades[i].ID < found.Subespecialidades[j].ID })
	sort.Slice(found.Idiomas, func(i, j int) bool { return found.Idiomas[i].ID < found.Idiomas[j].ID })
	return &found, nil
}

// Reference vocabularies

type subespecialidadeRepository struct {
	store *Store
}

func (s *Store) Subespecialidades() repository.SubespecialidadeRepository {
	return &subespecialidadeRepository{store: s}
}

func (r *subespecialidadeRepository) FirstOrCreate(_ context.Context, _ *gorm.DB, nome string) (*entity.Subespecialidade, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.subs {
		if row.Nome == nome {
			found := row
			return &found, nil
		}
	}
	row := entity.Subespecialidade{ID: s.id(), Nome: nome}
	s.subs = append(s.subs, row)
	return &row, nil
}

func (r *subespecialidadeRepository) FindAllNames(_ context.Context, _ *gorm.DB) ([]string, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.subs))
	for i, row := range s.subs {
		names[i] = row.Nome
	}
	return names, nil
}

type idiomaRepository struct {
	store *Store
}

func (s *Store) Idiomas() repository.IdiomaRepository {
	return &idiomaRepository{store: s}
}

func (r *idiomaRepository) FirstOrCreate(_ context.Context, _ *gorm.DB, nome string) (*entity.Idioma, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.idiomas {
		if row.Nome == nome {
			found := row
			return &found, nil
		}
	}
	row := entity.Idioma{ID: s.id(), Nome: nome}
	s.idiomas = append(s.idiomas, row)
	return &row, nil
}

func (r *idiomaRepository) FindAllNames(_ context.Context, _ *gorm.DB) ([]string, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.idiomas))
	for i, row := range s.idiomas {
		names[i] = row.Nome
	}
	return names, nil
}

// Audit logs

type auditLogRepository struct {
	store *Store
}

func (s *Store) AuditLogs() repository.AuditLogRepository {
	return &auditLogRepository{store: s}
}

func (r *auditLogRepository) Create(_ context.Context, _ *gorm.DB, log *entity.AuditLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = int64(s.id())
	log.CreatedAt = time.Now()
	s.audits = append(s.audits, *log)
	return nil
}

func (r *auditLogRepository) FindAll(_ context.Context, _ *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]entity.AuditLog, 0, limit)
	for i := len(s.audits) - 1 - offset; i >= 0 && len(logs) < limit; i-- {
		row := s.audits[i]
		if row.UserID != nil {
			if u := s.userByIDLocked(*row.UserID); u != nil {
				user := *u
				row.User = &user
			}
		}
		logs = append(logs, row)
	}
	return logs, int64(len(s.audits)), nil
}

// AuditService writes straight to the audit repository; the gorm-backed
// service needs a live transaction for its savepoint.
func (s *Store) AuditService() service.AuditService {
	return &auditService{repo: s.AuditLogs()}
}

type auditService struct {
	repo repository.AuditLogRepository
}

func (a *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, newValue interface{}) {
	_ = a.repo.Create(ctx, tx, &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"new_value": newValue,
		},
	})
}

func (a *auditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON) {
	_ = a.repo.Create(ctx, tx, &entity.AuditLog{UserID: userID, Action: action, Metadata: metadata})
}
