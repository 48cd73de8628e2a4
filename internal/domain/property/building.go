package property

import (
	"time"

	"github.com/aptos/backend/internal/domain/shared"
)

// Building represents a residential development that owns rentable units.
// It is the aggregate root for building-related operations.
type Building struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(100);not null"`
	Street       string `gorm:"type:varchar(100)"`
	Neighborhood string `gorm:"type:varchar(100)"`
	City         string `gorm:"type:varchar(100)"`
	State        string `gorm:"type:varchar(100)"`
	ZipCode      string `gorm:"type:varchar(20)"`
	Country      string `gorm:"type:varchar(100)"`
	VideoURL     string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Building) TableName() string {
	return "buildings"
}

// NewBuilding creates a new building with required fields
func NewBuilding(name string) (*Building, error) {
	if err := validateBuildingName(name); err != nil {
		return nil, err
	}

	building := &Building{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}

	building.AddDomainEvent(NewBuildingCreatedEvent(building))

	return building, nil
}

// Rename updates the building's display name
func (b *Building) Rename(name string) error {
	if err := validateBuildingName(name); err != nil {
		return err
	}

	b.Name = name
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBuildingUpdatedEvent(b))

	return nil
}

// SetAddress sets the building's address information
func (b *Building) SetAddress(street, neighborhood, city, state, zipCode, country string) error {
	for _, field := range []struct {
		value string
		code  string
		msg   string
	}{
		{street, "INVALID_STREET", "Street cannot exceed 100 characters"},
		{neighborhood, "INVALID_NEIGHBORHOOD", "Neighborhood cannot exceed 100 characters"},
		{city, "INVALID_CITY", "City cannot exceed 100 characters"},
		{state, "INVALID_STATE", "State cannot exceed 100 characters"},
		{country, "INVALID_COUNTRY", "Country cannot exceed 100 characters"},
	} {
		if len(field.value) > 100 {
			return shared.NewDomainError(field.code, field.msg)
		}
	}
	if len(zipCode) > 20 {
		return shared.NewDomainError("INVALID_ZIP_CODE", "Zip code cannot exceed 20 characters")
	}

	b.Street = street
	b.Neighborhood = neighborhood
	b.City = city
	b.State = state
	b.ZipCode = zipCode
	b.Country = country
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetVideoURL sets the promotional video URL
func (b *Building) SetVideoURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_VIDEO_URL", "Video URL cannot exceed 500 characters")
	}

	b.VideoURL = url
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

func validateBuildingName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Building name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Building name cannot exceed 100 characters")
	}
	return nil
}
