package tenancy

import (
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeTenant = "Tenant"

// Event type constants
const (
	EventTypeTenantRegistered    = "TenantRegistered"
	EventTypeTenantUpdated       = "TenantUpdated"
	EventTypeTenantStatusChanged = "TenantStatusChanged"
)

// TenantRegisteredEvent is published when a new tenant is registered
type TenantRegisteredEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID  `json:"tenant_id"`
	Kind     TenantKind `json:"kind"`
	Name     string     `json:"name"`
}

// NewTenantRegisteredEvent creates a new TenantRegisteredEvent
func NewTenantRegisteredEvent(tenant *Tenant) *TenantRegisteredEvent {
	return &TenantRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantRegistered, AggregateTypeTenant, tenant.ID),
		TenantID:        tenant.ID,
		Kind:            tenant.Kind,
		Name:            tenant.Name,
	}
}

// TenantUpdatedEvent is published when a tenant is updated
type TenantUpdatedEvent struct {
	shared.BaseDomainEvent
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
}

// NewTenantUpdatedEvent creates a new TenantUpdatedEvent
func NewTenantUpdatedEvent(tenant *Tenant) *TenantUpdatedEvent {
	return &TenantUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantUpdated, AggregateTypeTenant, tenant.ID),
		TenantID:        tenant.ID,
		Name:            tenant.Name,
	}
}

// TenantStatusChangedEvent is published when a tenant's status transitions
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	TenantID  uuid.UUID    `json:"tenant_id"`
	OldStatus TenantStatus `json:"old_status"`
	NewStatus TenantStatus `json:"new_status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(tenant *Tenant, oldStatus, newStatus TenantStatus) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, AggregateTypeTenant, tenant.ID),
		TenantID:        tenant.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
