package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"sequoiacare/config"
	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/domain/entity"
	"sequoiacare/internal/service"
	"sequoiacare/pkg/jwt"
	"sequoiacare/pkg/password"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	gateway    *mockGateway
	users      *mockUserRepo
	providers  *mockProviderRepo
	subs       *mockSubespecialidadeRepo
	idiomas    *mockIdiomaRepo
	audit      *mockAuditService
	tokenStore service.TokenStore
	hasher     *password.Hasher
	jwtService *jwt.JWTService
	usecase    AuthUsecase
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		gateway:    &mockGateway{},
		users:      &mockUserRepo{},
		providers:  &mockProviderRepo{},
		subs:       &mockSubespecialidadeRepo{},
		idiomas:    &mockIdiomaRepo{},
		audit:      &mockAuditService{},
		tokenStore: service.NewMemoryTokenStore(),
		hasher:     password.NewHasher(bcrypt.MinCost),
		jwtService: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  30 * time.Minute,
			DefaultExpiry: 15 * time.Minute,
		}),
	}
	f.usecase = NewAuthUsecase(f.gateway, newTestLogger(), f.users, f.providers, f.subs, f.idiomas, f.audit, f.tokenStore, f.hasher, f.jwtService)
	return f
}

func strPtr(s string) *string { return &s }

func validUserRequest() *dto.UserCreateRequest {
	return &dto.UserCreateRequest{
		Email:     "ana@example.com",
		Senha:     "s3nha",
		Nome:      "Ana",
		Sobrenome: "Silva",
		Telefone:  strPtr("81999990000"),
	}
}

func TestRegisterUser_Success(t *testing.T) {
	f := newAuthFixture()
	var created *entity.User
	f.users.CreateFunc = func(user *entity.User) error {
		user.ID = 1
		created = user
		return nil
	}

	resp, err := f.usecase.RegisterUser(context.Background(), validUserRequest())
	require.NoError(t, err)

	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "ana@example.com", resp.Email)
	assert.Equal(t, "paciente", resp.Role, "role defaults to paciente")
	assert.Equal(t, "81999990000", *resp.Telefone)

	require.NotNil(t, created)
	assert.NotEqual(t, "s3nha", created.SenhaHash)
	assert.True(t, f.hasher.Verify("s3nha", created.SenhaHash))

	assert.Equal(t, 1, f.gateway.transactions)
	assert.Equal(t, []string{entity.AuditActionUserRegister}, f.audit.actions())
}

func TestRegisterUser_KeepsRequestedRole(t *testing.T) {
	f := newAuthFixture()
	f.users.CreateFunc = func(user *entity.User) error { return nil }

	req := validUserRequest()
	req.Role = "provedor"

	resp, err := f.usecase.RegisterUser(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "provedor", resp.Role)
}

func TestRegisterUser_RejectsAdminRole(t *testing.T) {
	f := newAuthFixture()
	f.users.CreateFunc = func(*entity.User) error {
		t.Fatal("admin accounts must not be created by self-registration")
		return nil
	}

	req := validUserRequest()
	req.Role = "admin"

	_, err := f.usecase.RegisterUser(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
	assert.Zero(t, f.gateway.transactions)
}

func TestCreateAdmin(t *testing.T) {
	f := newAuthFixture()
	var created *entity.User
	f.users.CreateFunc = func(user *entity.User) error {
		user.ID = 2
		created = user
		return nil
	}

	req := validUserRequest()
	req.Role = "paciente"

	resp, err := f.usecase.CreateAdmin(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role, "role is forced to admin")
	assert.Equal(t, entity.RoleAdmin, created.Role)
	assert.True(t, f.hasher.Verify("s3nha", created.SenhaHash))
	assert.Equal(t, []string{entity.AuditActionAdminCreate}, f.audit.actions())

	f.users.CreateFunc = func(*entity.User) error { return uniqueViolation("uq_users_email") }
	_, err = f.usecase.CreateAdmin(context.Background(), req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.CreateFunc = func(*entity.User) error { return uniqueViolation("uq_users_email") }

	_, err := f.usecase.RegisterUser(context.Background(), validUserRequest())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Equal(t, 1, f.gateway.rolledBack)
	assert.Empty(t, f.audit.entries)
}

func TestRegisterUser_PasswordTooLong(t *testing.T) {
	f := newAuthFixture()
	req := validUserRequest()
	req.Senha = strings.Repeat("ç", 40)

	_, err := f.usecase.RegisterUser(context.Background(), req)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Zero(t, f.gateway.transactions)
}

func TestRegisterUser_UnexpectedError(t *testing.T) {
	f := newAuthFixture()
	boom := errors.New("connection reset")
	f.users.CreateFunc = func(*entity.User) error { return boom }

	_, err := f.usecase.RegisterUser(context.Background(), validUserRequest())
	assert.ErrorIs(t, err, boom)
}

func validProviderRequest() *dto.RegisterProviderRequest {
	return &dto.RegisterProviderRequest{
		User: *validUserRequest(),
		Provider: dto.ProviderCreateRequest{
			Bio:                 strPtr("Cardiologista"),
			Educacao:            "Medicina",
			InstituicaoEducacao: "UFPE",
			AnoFormacao:         2012,
			CRM:                 "CRM-PE-123",
			Subespecialidades:   []string{"Cardiology", " Cardiology ", "Pediatrics"},
			Idiomas:             []string{"Portuguese", "English", "Portuguese"},
		},
	}
}

func TestRegisterProvider_Success(t *testing.T) {
	f := newAuthFixture()
	var createdUser *entity.User
	var createdProvider *entity.Provider
	var subCalls, idiomaCalls []string

	f.users.CreateFunc = func(user *entity.User) error {
		user.ID = 10
		createdUser = user
		return nil
	}
	f.subs.FirstOrCreateFunc = func(nome string) (*entity.Subespecialidade, error) {
		subCalls = append(subCalls, nome)
		return &entity.Subespecialidade{ID: uint(len(subCalls)), Nome: nome}, nil
	}
	f.idiomas.FirstOrCreateFunc = func(nome string) (*entity.Idioma, error) {
		idiomaCalls = append(idiomaCalls, nome)
		return &entity.Idioma{ID: uint(len(idiomaCalls)), Nome: nome}, nil
	}
	f.providers.CreateFunc = func(provider *entity.Provider) error {
		provider.ID = 3
		createdProvider = provider
		return nil
	}

	req := validProviderRequest()
	req.User.Role = "paciente"

	resp, err := f.usecase.RegisterProvider(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "provedor", resp.Role, "role is forced to provedor")
	assert.Equal(t, entity.RoleProvedor, createdUser.Role)

	assert.Equal(t, []string{"Cardiology", "Pediatrics"}, subCalls)
	assert.Equal(t, []string{"Portuguese", "English"}, idiomaCalls)

	require.NotNil(t, createdProvider)
	assert.Equal(t, uint(10), createdProvider.UserID)
	assert.Equal(t, "CRM-PE-123", createdProvider.CRM)
	assert.Len(t, createdProvider.Subespecialidades, 2)
	assert.Len(t, createdProvider.Idiomas, 2)

	assert.Equal(t, 1, f.gateway.transactions, "user and provider share one transaction")
	assert.Equal(t, []string{entity.AuditActionProviderRegister}, f.audit.actions())
}

func TestRegisterProvider_DuplicateCRMRollsBack(t *testing.T) {
	f := newAuthFixture()
	f.users.CreateFunc = func(user *entity.User) error {
		user.ID = 10
		return nil
	}
	f.subs.FirstOrCreateFunc = func(nome string) (*entity.Subespecialidade, error) {
		return &entity.Subespecialidade{ID: 1, Nome: nome}, nil
	}
	f.idiomas.FirstOrCreateFunc = func(nome string) (*entity.Idioma, error) {
		return &entity.Idioma{ID: 1, Nome: nome}, nil
	}
	f.providers.CreateFunc = func(*entity.Provider) error { return uniqueViolation("uq_providers_crm") }

	_, err := f.usecase.RegisterProvider(context.Background(), validProviderRequest())
	assert.ErrorIs(t, err, ErrCRMAlreadyExists)
	assert.Equal(t, 1, f.gateway.rolledBack)
	assert.Empty(t, f.audit.entries)
}

func TestRegisterProvider_DuplicateEmailStopsEarly(t *testing.T) {
	f := newAuthFixture()
	f.users.CreateFunc = func(*entity.User) error { return uniqueViolation("uq_users_email") }
	f.providers.CreateFunc = func(*entity.Provider) error {
		t.Fatal("provider must not be created after a duplicate email")
		return nil
	}

	_, err := f.usecase.RegisterProvider(context.Background(), validProviderRequest())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterProvider_ReferenceUpsertFails(t *testing.T) {
	f := newAuthFixture()
	boom := errors.New("deadlock detected")
	f.users.CreateFunc = func(*entity.User) error { return nil }
	f.subs.FirstOrCreateFunc = func(string) (*entity.Subespecialidade, error) { return nil, boom }

	_, err := f.usecase.RegisterProvider(context.Background(), validProviderRequest())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, f.gateway.rolledBack)
}

func (f *authFixture) seedUser(t *testing.T, email, plain string, role entity.UserRole) *entity.User {
	t.Helper()
	hashed, err := f.hasher.Hash(plain)
	require.NoError(t, err)
	user := &entity.User{ID: 5, Email: email, SenhaHash: hashed, Role: role, Nome: "Ana", Sobrenome: "Silva"}
	f.users.FindByEmailFunc = func(e string) (*entity.User, error) {
		if e == email {
			return user, nil
		}
		return nil, nil
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "ana@example.com", "s3nha", entity.RoleProvedor)

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "ana@example.com", Password: "s3nha"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := f.jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Subject)
	assert.Equal(t, "provedor", claims.Role)

	ok, err := f.tokenStore.Exists(context.Background(), service.AccessTokenKey(claims.Subject, claims.ID))
	require.NoError(t, err)
	assert.True(t, ok, "issued token is on the allow-list")

	assert.Equal(t, []string{entity.AuditActionUserLogin}, f.audit.actions())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "ana@example.com", "s3nha", entity.RolePaciente)

	cases := map[string]dto.LoginRequest{
		"wrong password": {Username: "ana@example.com", Password: "nope"},
		"unknown email":  {Username: "ghost@example.com", Password: "s3nha"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.usecase.Login(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
	assert.Empty(t, f.audit.entries)
}

func TestLogout_RevokesToken(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "ana@example.com", "s3nha", entity.RolePaciente)

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Username: "ana@example.com", Password: "s3nha"})
	require.NoError(t, err)
	claims, err := f.jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.usecase.Logout(context.Background(), claims.Subject, claims.ID))

	ok, err := f.tokenStore.Exists(context.Background(), service.AccessTokenKey(claims.Subject, claims.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, entity.AuditActionUserLogout, f.audit.entries[1].Action)
	assert.Equal(t, uint(5), *f.audit.entries[1].UserID)
}

func TestGetCurrentUser(t *testing.T) {
	f := newAuthFixture()
	user := f.seedUser(t, "ana@example.com", "s3nha", entity.RolePaciente)

	resp, err := f.usecase.GetCurrentUser(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "Ana", resp.Nome)

	_, err = f.usecase.GetCurrentUser(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	inactive := false
	user.IsActive = &inactive
	_, err = f.usecase.GetCurrentUser(context.Background(), "ana@example.com")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUniqueNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueNames([]string{" a", "b", "a ", "", "  ", "b"}))
	assert.Empty(t, uniqueNames(nil))
}

type recordingTokenStore struct {
	service.TokenStore
	ttls map[string]time.Duration
}

func (s *recordingTokenStore) Store(ctx context.Context, key string, ttl time.Duration) error {
	s.ttls[key] = ttl
	return s.TokenStore.Store(ctx, key, ttl)
}

func TestLogin_AllowListFollowsIssuedExpiry(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "ana@example.com", "s3nha", entity.RolePaciente)

	tokens := &recordingTokenStore{TokenStore: service.NewMemoryTokenStore(), ttls: map[string]time.Duration{}}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  0,
		DefaultExpiry: 15 * time.Minute,
	})
	uc := NewAuthUsecase(f.gateway, newTestLogger(), f.users, f.providers, f.subs, f.idiomas, f.audit, tokens, f.hasher, jwtService)

	resp, err := uc.Login(context.Background(), &dto.LoginRequest{Username: "ana@example.com", Password: "s3nha"})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	key := service.AccessTokenKey(claims.Subject, claims.ID)

	ok, err := tokens.Exists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok, "a freshly issued token is usable")

	ttl := tokens.ttls[key]
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
