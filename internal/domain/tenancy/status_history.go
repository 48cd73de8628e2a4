package tenancy

import (
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReasonCategory classifies why a status transition happened
type ReasonCategory string

const (
	ReasonCategoryManual    ReasonCategory = "MANUAL"
	ReasonCategoryAutomatic ReasonCategory = "AUTOMATIC"
)

// StatusHistory is an append-only record of a tenant status transition.
// Entries are written atomically with the status change and never mutated;
// a retention sweep may purge entries older than the configured window.
type StatusHistory struct {
	shared.BaseEntity
	TenantID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	PreviousStatus TenantStatus   `gorm:"type:varchar(20);not null"`
	NewStatus      TenantStatus   `gorm:"type:varchar(20);not null"`
	Reason         string         `gorm:"type:text"`
	ReasonCategory ReasonCategory `gorm:"type:varchar(20);not null;default:'MANUAL'"`
	Actor          string         `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (StatusHistory) TableName() string {
	return "tenant_status_history"
}

// NewStatusHistory builds the history entry for a transition about to be applied
func NewStatusHistory(tenantID uuid.UUID, previous, next TenantStatus, reason, actor string, category ReasonCategory) *StatusHistory {
	return &StatusHistory{
		BaseEntity:     shared.NewBaseEntity(),
		TenantID:       tenantID,
		PreviousStatus: previous,
		NewStatus:      next,
		Reason:         reason,
		ReasonCategory: category,
		Actor:          actor,
	}
}
