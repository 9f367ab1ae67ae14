package handler

import (
	"net/http"
	"strconv"

	"sequoiacare/internal/delivery/dto"
	"sequoiacare/internal/usecase"
	"sequoiacare/pkg/response"
	"sequoiacare/pkg/validator"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// GetAllAuditLogs handles GET /admin/audit-logs?limit=&offset=
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := dto.AuditLogListQuery{Limit: dto.DefaultAuditLogLimit}
	errs := make(map[string]string)

	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			errs["limit"] = "limit must be an integer"
		}
		query.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			errs["offset"] = "offset must be an integer"
		}
		query.Offset = offset
	}
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), &query)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.OK(w, auditLogs)
}
