package property

import (
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeBuilding = "Building"

// Event type constants
const (
	EventTypeBuildingCreated = "BuildingCreated"
	EventTypeBuildingUpdated = "BuildingUpdated"
)

// BuildingCreatedEvent is published when a new building is registered
type BuildingCreatedEvent struct {
	shared.BaseDomainEvent
	BuildingID uuid.UUID `json:"building_id"`
	Name       string    `json:"name"`
}

// NewBuildingCreatedEvent creates a new BuildingCreatedEvent
func NewBuildingCreatedEvent(building *Building) *BuildingCreatedEvent {
	return &BuildingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBuildingCreated, AggregateTypeBuilding, building.ID),
		BuildingID:      building.ID,
		Name:            building.Name,
	}
}

// BuildingUpdatedEvent is published when a building is updated
type BuildingUpdatedEvent struct {
	shared.BaseDomainEvent
	BuildingID uuid.UUID `json:"building_id"`
	Name       string    `json:"name"`
}

// NewBuildingUpdatedEvent creates a new BuildingUpdatedEvent
func NewBuildingUpdatedEvent(building *Building) *BuildingUpdatedEvent {
	return &BuildingUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBuildingUpdated, AggregateTypeBuilding, building.ID),
		BuildingID:      building.ID,
		Name:            building.Name,
	}
}
