package handler

import (
	"context"

	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/usecase"
)

type mockAuthUsecase struct {
	RegisterUserFunc     func(req *dto.UserCreateRequest) (*dto.UserResponse, error)
	RegisterProviderFunc func(req *dto.RegisterProviderRequest) (*dto.UserResponse, error)
	LoginFunc            func(req *dto.LoginRequest) (*dto.TokenResponse, error)
	LogoutFunc           func(email, tokenID string) error
	GetCurrentUserFunc   func(email string) (*dto.UserResponse, error)
	CreateAdminFunc      func(req *dto.UserCreateRequest) (*dto.UserResponse, error)
}

var _ usecase.AuthUsecase = (*mockAuthUsecase)(nil)

func (m *mockAuthUsecase) RegisterUser(_ context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error) {
	return m.RegisterUserFunc(req)
}

func (m *mockAuthUsecase) RegisterProvider(_ context.Context, req *dto.RegisterProviderRequest) (*dto.UserResponse, error) {
	return m.RegisterProviderFunc(req)
}

func (m *mockAuthUsecase) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.LoginFunc(req)
}

func (m *mockAuthUsecase) Logout(_ context.Context, email, tokenID string) error {
	return m.LogoutFunc(email, tokenID)
}

func (m *mockAuthUsecase) GetCurrentUser(_ context.Context, email string) (*dto.UserResponse, error) {
	return m.GetCurrentUserFunc(email)
}

func (m *mockAuthUsecase) CreateAdmin(_ context.Context, req *dto.UserCreateRequest) (*dto.UserResponse, error) {
	return m.CreateAdminFunc(req)
}

type mockProviderUsecase struct {
	ListProvidersFunc func(query *dto.ProviderListQuery) ([]dto.UserResponse, error)
	GetProviderFunc   func(userID uint) (*dto.ProviderResponse, error)
}

var _ usecase.ProviderUsecase = (*mockProviderUsecase)(nil)

func (m *mockProviderUsecase) ListProviders(_ context.Context, query *dto.ProviderListQuery) ([]dto.UserResponse, error) {
	return m.ListProvidersFunc(query)
}

func (m *mockProviderUsecase) GetProvider(_ context.Context, userID uint) (*dto.ProviderResponse, error) {
	return m.GetProviderFunc(userID)
}

type mockAuditLogUsecase struct {
	GetAllAuditLogsFunc func(query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error)
}

var _ usecase.AuditLogUsecase = (*mockAuditLogUsecase)(nil)

func (m *mockAuditLogUsecase) GetAllAuditLogs(_ context.Context, query *dto.AuditLogListQuery) (*dto.AuditLogListResponse, error) {
	return m.GetAllAuditLogsFunc(query)
}
