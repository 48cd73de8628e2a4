package property

import (
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Apartment represents a rentable unit inside a building.
// Its availability flag is a projection of the active leases on it and is
// only ever written by the leasing synchronizer, never by callers directly.
type Apartment struct {
	shared.BaseAggregateRoot
	UnitNumber         string          `gorm:"type:varchar(10);not null"`
	Floor              string          `gorm:"type:varchar(20)"`
	BuildingID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description        string          `gorm:"type:text"`
	RentalPrice        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsAvailable        bool            `gorm:"not null;default:true"`
	IsFurnished        bool            `gorm:"not null;default:false"`
	IsPetsAllowed      bool            `gorm:"not null;default:false"`
	HasLaundry         bool            `gorm:"not null;default:false"`
	HasParking         bool            `gorm:"not null;default:false"`
	HasInternet        bool            `gorm:"not null;default:false"`
	HasAirConditioning bool            `gorm:"not null;default:false"`
	Bedrooms           int             `gorm:"not null;default:0"`
	Bathrooms          int             `gorm:"not null;default:0"`
	SquareFootage      int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Apartment) TableName() string {
	return "apartments"
}

// NewApartment creates a new apartment in a building. Units start available;
// occupancy is derived from leases afterwards.
func NewApartment(buildingID uuid.UUID, unitNumber string, bedrooms, bathrooms int) (*Apartment, error) {
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Apartment must belong to a building")
	}
	if err := validateUnitNumber(unitNumber); err != nil {
		return nil, err
	}
	if bedrooms < 0 || bathrooms < 0 {
		return nil, shared.NewDomainError("INVALID_ROOM_COUNT", "Room counts cannot be negative")
	}

	apartment := &Apartment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UnitNumber:        unitNumber,
		BuildingID:        buildingID,
		RentalPrice:       decimal.Zero,
		IsAvailable:       true,
		Bedrooms:          bedrooms,
		Bathrooms:         bathrooms,
	}

	apartment.AddDomainEvent(NewApartmentCreatedEvent(apartment))

	return apartment, nil
}

// Update updates the apartment's descriptive information
func (a *Apartment) Update(unitNumber, floor, description string) error {
	if err := validateUnitNumber(unitNumber); err != nil {
		return err
	}
	if len(floor) > 20 {
		return shared.NewDomainError("INVALID_FLOOR", "Floor cannot exceed 20 characters")
	}

	a.UnitNumber = unitNumber
	a.Floor = floor
	a.Description = description
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewApartmentUpdatedEvent(a))

	return nil
}

// SetRentalPrice sets the advertised monthly rental price
func (a *Apartment) SetRentalPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_RENTAL_PRICE", "Rental price cannot be negative")
	}

	a.RentalPrice = price
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetFeatures sets the apartment's amenity flags
func (a *Apartment) SetFeatures(furnished, petsAllowed, laundry, parking, internet, airConditioning bool) {
	a.IsFurnished = furnished
	a.IsPetsAllowed = petsAllowed
	a.HasLaundry = laundry
	a.HasParking = parking
	a.HasInternet = internet
	a.HasAirConditioning = airConditioning
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetDimensions sets room counts and floor area
func (a *Apartment) SetDimensions(bedrooms, bathrooms, squareFootage int) error {
	if bedrooms < 0 || bathrooms < 0 || squareFootage < 0 {
		return shared.NewDomainError("INVALID_DIMENSIONS", "Dimensions cannot be negative")
	}

	a.Bedrooms = bedrooms
	a.Bathrooms = bathrooms
	a.SquareFootage = squareFootage
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SyncAvailability reconciles the availability flag against the presence of
// an active lease. It returns true when the flag actually changed, so the
// persistence layer can skip redundant writes.
func (a *Apartment) SyncAvailability(hasActiveLease bool) bool {
	available := !hasActiveLease
	if a.IsAvailable == available {
		return false
	}

	a.IsAvailable = available
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewApartmentAvailabilityChangedEvent(a))

	return true
}

func validateUnitNumber(unitNumber string) error {
	if unitNumber == "" {
		return shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot be empty")
	}
	if len(unitNumber) > 10 {
		return shared.NewDomainError("INVALID_UNIT_NUMBER", "Unit number cannot exceed 10 characters")
	}
	return nil
}
