package dto

import (
	"time"

	"sequoiacare/internal/domain/entity"
)

// DefaultAuditLogLimit is the page size when no limit is given.
const DefaultAuditLogLimit = 50

// Request DTOs

type AuditLogListQuery struct {
	Limit  int `json:"limit" validate:"gte=1,lte=200"`
	Offset int `json:"offset" validate:"gte=0"`
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs   []AuditLogResponse `json:"logs"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
