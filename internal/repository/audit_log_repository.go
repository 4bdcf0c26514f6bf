package repository

import (
	"context"
	"time"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
)

type AuditLogFilter struct {
	ActorEmail   *string
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
