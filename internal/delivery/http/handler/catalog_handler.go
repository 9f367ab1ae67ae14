package handler

import (
	"net/http"

	"sequoiacare/internal/usecase"
	"sequoiacare/pkg/response"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
	}
}

func (h *CatalogHandler) ListSubespecialidades(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalogUsecase.ListSubespecialidades(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get subespecialidades")
		return
	}

	response.OK(w, names)
}

func (h *CatalogHandler) ListIdiomas(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalogUsecase.ListIdiomas(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get idiomas")
		return
	}

	response.OK(w, names)
}
