package leasing

import (
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeLease = "Lease"

// Event type constants
const (
	EventTypeLeaseCreated     = "LeaseCreated"
	EventTypeLeaseUpdated     = "LeaseUpdated"
	EventTypeLeaseFinalized   = "LeaseFinalized"
	EventTypeLeaseReactivated = "LeaseReactivated"
)

// LeaseCreatedEvent is published when a new lease is created
type LeaseCreatedEvent struct {
	shared.BaseDomainEvent
	LeaseID     uuid.UUID `json:"lease_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	ApartmentID uuid.UUID `json:"apartment_id"`
	StartDate   time.Time `json:"start_date"`
}

// NewLeaseCreatedEvent creates a new LeaseCreatedEvent
func NewLeaseCreatedEvent(lease *Lease) *LeaseCreatedEvent {
	return &LeaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseCreated, AggregateTypeLease, lease.ID),
		LeaseID:         lease.ID,
		TenantID:        lease.TenantID,
		ApartmentID:     lease.ApartmentID,
		StartDate:       lease.StartDate,
	}
}

// LeaseUpdatedEvent is published when a lease's terms change
type LeaseUpdatedEvent struct {
	shared.BaseDomainEvent
	LeaseID     uuid.UUID  `json:"lease_id"`
	ApartmentID uuid.UUID  `json:"apartment_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// NewLeaseUpdatedEvent creates a new LeaseUpdatedEvent
func NewLeaseUpdatedEvent(lease *Lease) *LeaseUpdatedEvent {
	return &LeaseUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseUpdated, AggregateTypeLease, lease.ID),
		LeaseID:         lease.ID,
		ApartmentID:     lease.ApartmentID,
		StartDate:       lease.StartDate,
		EndDate:         lease.EndDate,
	}
}

// LeaseFinalizedEvent is published when a lease is closed
type LeaseFinalizedEvent struct {
	shared.BaseDomainEvent
	LeaseID     uuid.UUID  `json:"lease_id"`
	ApartmentID uuid.UUID  `json:"apartment_id"`
	EndDate     *time.Time `json:"end_date"`
}

// NewLeaseFinalizedEvent creates a new LeaseFinalizedEvent
func NewLeaseFinalizedEvent(lease *Lease) *LeaseFinalizedEvent {
	return &LeaseFinalizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseFinalized, AggregateTypeLease, lease.ID),
		LeaseID:         lease.ID,
		ApartmentID:     lease.ApartmentID,
		EndDate:         lease.EndDate,
	}
}

// LeaseReactivatedEvent is published when a finalized lease is reactivated
type LeaseReactivatedEvent struct {
	shared.BaseDomainEvent
	LeaseID     uuid.UUID `json:"lease_id"`
	ApartmentID uuid.UUID `json:"apartment_id"`
}

// NewLeaseReactivatedEvent creates a new LeaseReactivatedEvent
func NewLeaseReactivatedEvent(lease *Lease) *LeaseReactivatedEvent {
	return &LeaseReactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseReactivated, AggregateTypeLease, lease.ID),
		LeaseID:         lease.ID,
		ApartmentID:     lease.ApartmentID,
	}
}
