package usecase

import (
	"context"
	"errors"
	"strings"

	"sequoiacare/internal/converter"
	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/domain/entity"
	"sequoiacare/internal/domain/repository"
	"sequoiacare/internal/service"
	"sequoiacare/pkg/jwt"
	"sequoiacare/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const tokenTypeBearer = "bearer"

type AuthUsecase interface {
	RegisterUser(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error)
	RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, email, tokenID string) error
	GetCurrentUser(ctx context.Context, email string) (*dto.UserResponse, error)
	// CreateAdmin provisions an admin account. It is only reachable from the CLI.
	CreateAdmin(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	gateway              repository.SessionGateway
	log                  *logrus.Logger
	userRepo             repository.UserRepository
	providerRepo         repository.ProviderRepository
	subespecialidadeRepo repository.SubespecialidadeRepository
	idiomaRepo           repository.IdiomaRepository
	auditService         service.AuditService
	tokenStore           service.TokenStore
	hasher               *password.Hasher
	jwtService           *jwt.JWTService
}

func NewAuthUsecase(
	gateway repository.SessionGateway,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
	subespecialidadeRepo repository.SubespecialidadeRepository,
	idiomaRepo repository.IdiomaRepository,
	auditService service.AuditService,
	tokenStore service.TokenStore,
	hasher *password.Hasher,
	jwtService *jwt.JWTService,
) AuthUsecase {
	return &authUsecase{
		gateway:              gateway,
		log:                  log,
		userRepo:             userRepo,
		providerRepo:         providerRepo,
		subespecialidadeRepo: subespecialidadeRepo,
		idiomaRepo:           idiomaRepo,
		auditService:         auditService,
		tokenStore:           tokenStore,
		hasher:               hasher,
		jwtService:           jwtService,
	}
}

func (u *authUsecase) RegisterUser(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error) {
	if entity.UserRole(req.Role) == entity.RoleAdmin {
		return nil, ErrRoleNotAllowed
	}

	user, err := u.newUser(req)
	if err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = entity.RolePaciente
	}

	err = u.gateway.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.createUser(ctx, tx, user); err != nil {
			return err
		}

		u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, auditUserSnapshot(user))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) CreateAdmin(ctx context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error) {
	user, err := u.newUser(req)
	if err != nil {
		return nil, err
	}
	user.Role = entity.RoleAdmin

	err = u.gateway.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.createUser(ctx, tx, user); err != nil {
			return err
		}

		u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionAdminCreate, "user", user.ID, auditUserSnapshot(user))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) RegisterProvider(ctx context.Context, req *dto.RegisterProviderRequest) (*dto.UserResponse, error) {
	user, err := u.newUser(&req.User)
	if err != nil {
		return nil, err
	}
	user.Role = entity.RoleProvedor

	err = u.gateway.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.createUser(ctx, tx, user); err != nil {
			return err
		}

		provider := &entity.Provider{
			UserID:              user.ID,
			Bio:                 req.Provider.Bio,
			Educacao:            req.Provider.Educacao,
			InstituicaoEducacao: req.Provider.InstituicaoEducacao,
			AnoFormacao:         req.Provider.AnoFormacao,
			CRM:                 req.Provider.CRM,
		}

		for _, nome := range uniqueNames(req.Provider.Subespecialidades) {
			sub, err := u.subespecialidadeRepo.FirstOrCreate(ctx, tx, nome)
			if err != nil {
				u.log.Warnf("Failed to upsert subespecialidade: %+v", err)
				return err
			}
			provider.Subespecialidades = append(provider.Subespecialidades, *sub)
		}

		for _, nome := range uniqueNames(req.Provider.Idiomas) {
			idioma, err := u.idiomaRepo.FirstOrCreate(ctx, tx, nome)
			if err != nil {
				u.log.Warnf("Failed to upsert idioma: %+v", err)
				return err
			}
			provider.Idiomas = append(provider.Idiomas, *idioma)
		}

		if err := u.providerRepo.Create(ctx, tx, provider); err != nil {
			if isDuplicateKeyError(err, "crm") {
				return ErrCRMAlreadyExists
			}
			u.log.Warnf("Failed to create provider: %+v", err)
			return err
		}

		u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionProviderRegister, "provider", provider.ID, entity.JSON{
			"user_id": user.ID,
			"email":   user.Email,
			"crm":     provider.CRM,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	var user *entity.User
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		user, err = u.userRepo.FindByEmail(ctx, db, req.Username)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		u.hasher.VerifyMissing(req.Password)
		return nil, ErrInvalidCredentials
	}
	if !u.hasher.Verify(req.Password, user.SenhaHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(user.Email, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	// The allow-list entry lives exactly as long as the issued token.
	claims, err := u.jwtService.ValidateToken(accessToken)
	if err != nil {
		u.log.Warnf("Failed to read issued access token: %+v", err)
		return nil, err
	}

	key := service.AccessTokenKey(user.Email, tokenID)
	if err := u.tokenStore.Store(ctx, key, u.jwtService.TTL(claims)); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	u.recordEvent(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{"email": user.Email})

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, email, tokenID string) error {
	if err := u.tokenStore.Revoke(ctx, service.AccessTokenKey(email, tokenID)); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	var userID *uint
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		user, err := u.userRepo.FindByEmail(ctx, db, email)
		if user != nil {
			userID = &user.ID
		}
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
	}

	u.recordEvent(ctx, userID, entity.AuditActionUserLogout, entity.JSON{"email": email})
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, email string) (*dto.UserResponse, error) {
	var user *entity.User
	err := u.gateway.WithSession(ctx, func(db *gorm.DB) error {
		var err error
		user, err = u.userRepo.FindByEmail(ctx, db, email)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrInactiveUser
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) newUser(req *dto.UserCreateRequest) (*entity.User, error) {
	hashed, err := u.hasher.Hash(req.Senha)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, ErrPasswordTooLong
		}
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := converter.UserCreateRequestToEntity(req)
	user.SenhaHash = hashed
	return user, nil
}

func (u *authUsecase) createUser(ctx context.Context, tx *gorm.DB, user *entity.User) error {
	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return err
	}
	return nil
}

// recordEvent writes an audit row in its own transaction. Failures are
// logged and never surface to the caller.
func (u *authUsecase) recordEvent(ctx context.Context, userID *uint, action string, metadata entity.JSON) {
	err := u.gateway.WithTransaction(ctx, func(tx *gorm.DB) error {
		u.auditService.LogEvent(ctx, tx, userID, action, metadata)
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to record %s: %+v", action, err)
	}
}

func auditUserSnapshot(user *entity.User) entity.JSON {
	return entity.JSON{
		"email": user.Email,
		"role":  string(user.Role),
	}
}

// uniqueNames trims names and drops blanks and repeats, keeping first-seen order.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
