package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/usecase"
	"sequoiacare/pkg/response"
	"sequoiacare/pkg/validator"

	"github.com/gorilla/mux"
)

type ProviderHandler struct {
	authUsecase     usecase.AuthUsecase
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(authUsecase usecase.AuthUsecase, providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		authUsecase:     authUsecase,
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

// RegisterProvider handles POST /providers
func (h *ProviderHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.RegisterProvider(r.Context(), &req)
	if err != nil {
		writeRegistrationError(w, err, "Failed to register provider")
		return
	}

	response.OK(w, user)
}

// ListProviders handles GET /providers?subespecialidade=&idioma=&q=
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &dto.ProviderListQuery{
		Subespecialidade: q.Get("subespecialidade"),
		Idioma:           q.Get("idioma"),
		Q:                q.Get("q"),
	}

	providers, err := h.providerUsecase.ListProviders(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get providers")
		return
	}

	response.OK(w, providers)
}

// GetProvider handles GET /providers/{id}, where id is the user id
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	provider, err := h.providerUsecase.GetProvider(r.Context(), uint(userID))
	if err != nil {
		if errors.Is(err, usecase.ErrProviderNotFound) {
			response.NotFound(w, "Provider not found")
			return
		}
		response.InternalServerError(w, "Failed to get provider")
		return
	}

	response.OK(w, provider)
}
