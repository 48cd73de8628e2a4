package property

import (
	"context"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BuildingRepository defines the persistence interface for buildings
type BuildingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Building, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Building, error)
	Save(ctx context.Context, building *Building) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ApartmentRepository defines the persistence interface for apartments
type ApartmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Apartment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Apartment, error)
	FindByBuilding(ctx context.Context, buildingID uuid.UUID, filter shared.Filter) ([]Apartment, error)
	FindAvailable(ctx context.Context, filter shared.Filter) ([]Apartment, error)
	Save(ctx context.Context, apartment *Apartment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
	ExistsByUnitNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (bool, error)
}
