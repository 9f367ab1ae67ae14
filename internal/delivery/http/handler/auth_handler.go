package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/delivery/http/middleware"
	"sequoiacare/internal/usecase"
	"sequoiacare/pkg/response"
	"sequoiacare/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// RegisterUser handles POST /users
func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.RegisterUser(r.Context(), &req)
	if err != nil {
		writeRegistrationError(w, err, "Failed to register user")
		return
	}

	response.OK(w, user)
}

// Login handles POST /token with a form-encoded username and password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	req := dto.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			response.Unauthorized(w, "Incorrect email or password")
			return
		}
		response.InternalServerError(w, "Failed to login")
		return
	}

	response.OK(w, token)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), email, tokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.OK(w, dto.MessageResponse{Detail: "Successfully logged out"})
}

// GetCurrentUser handles GET /users/me
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetUserEmailFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			response.Unauthorized(w, "")
		case errors.Is(err, usecase.ErrInactiveUser):
			response.Error(w, http.StatusBadRequest, "Inactive user")
		default:
			response.InternalServerError(w, "Failed to get current user")
		}
		return
	}

	response.OK(w, user)
}

// writeRegistrationError maps the conflicts shared by both registration endpoints.
func writeRegistrationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Error(w, http.StatusBadRequest, "Email já registrado")
	case errors.Is(err, usecase.ErrCRMAlreadyExists):
		response.Error(w, http.StatusBadRequest, "CRM já registrado")
	case errors.Is(err, usecase.ErrRoleNotAllowed):
		response.ValidationError(w, map[string]string{"role": "role must be one of: paciente provedor"})
	case errors.Is(err, usecase.ErrPasswordTooLong):
		response.ValidationError(w, map[string]string{"senha": "senha must be at most 72 bytes"})
	default:
		response.InternalServerError(w, fallback)
	}
}
