package property

import (
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeApartment = "Apartment"

// Event type constants
const (
	EventTypeApartmentCreated             = "ApartmentCreated"
	EventTypeApartmentUpdated             = "ApartmentUpdated"
	EventTypeApartmentAvailabilityChanged = "ApartmentAvailabilityChanged"
)

// ApartmentCreatedEvent is published when a new apartment is registered
type ApartmentCreatedEvent struct {
	shared.BaseDomainEvent
	ApartmentID uuid.UUID `json:"apartment_id"`
	BuildingID  uuid.UUID `json:"building_id"`
	UnitNumber  string    `json:"unit_number"`
}

// NewApartmentCreatedEvent creates a new ApartmentCreatedEvent
func NewApartmentCreatedEvent(apartment *Apartment) *ApartmentCreatedEvent {
	return &ApartmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApartmentCreated, AggregateTypeApartment, apartment.ID),
		ApartmentID:     apartment.ID,
		BuildingID:      apartment.BuildingID,
		UnitNumber:      apartment.UnitNumber,
	}
}

// ApartmentUpdatedEvent is published when an apartment is updated
type ApartmentUpdatedEvent struct {
	shared.BaseDomainEvent
	ApartmentID uuid.UUID `json:"apartment_id"`
	UnitNumber  string    `json:"unit_number"`
}

// NewApartmentUpdatedEvent creates a new ApartmentUpdatedEvent
func NewApartmentUpdatedEvent(apartment *Apartment) *ApartmentUpdatedEvent {
	return &ApartmentUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApartmentUpdated, AggregateTypeApartment, apartment.ID),
		ApartmentID:     apartment.ID,
		UnitNumber:      apartment.UnitNumber,
	}
}

// ApartmentAvailabilityChangedEvent is published when the derived
// availability flag flips
type ApartmentAvailabilityChangedEvent struct {
	shared.BaseDomainEvent
	ApartmentID uuid.UUID `json:"apartment_id"`
	UnitNumber  string    `json:"unit_number"`
	IsAvailable bool      `json:"is_available"`
}

// NewApartmentAvailabilityChangedEvent creates a new ApartmentAvailabilityChangedEvent
func NewApartmentAvailabilityChangedEvent(apartment *Apartment) *ApartmentAvailabilityChangedEvent {
	return &ApartmentAvailabilityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApartmentAvailabilityChanged, AggregateTypeApartment, apartment.ID),
		ApartmentID:     apartment.ID,
		UnitNumber:      apartment.UnitNumber,
		IsAvailable:     apartment.IsAvailable,
	}
}
