package property

import (
	"time"

	"github.com/aptos/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Building DTOs
// =============================================================================

// CreateBuildingRequest represents a request to create a new building
type CreateBuildingRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Street       string `json:"street" binding:"max=100"`
	Neighborhood string `json:"neighborhood" binding:"max=100"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	ZipCode      string `json:"zip_code" binding:"max=20"`
	Country      string `json:"country" binding:"max=100"`
	VideoURL     string `json:"video_url" binding:"omitempty,url,max=500"`
}

// UpdateBuildingRequest represents a request to update a building
type UpdateBuildingRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	Street       *string `json:"street" binding:"omitempty,max=100"`
	Neighborhood *string `json:"neighborhood" binding:"omitempty,max=100"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	ZipCode      *string `json:"zip_code" binding:"omitempty,max=20"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
	VideoURL     *string `json:"video_url" binding:"omitempty,url,max=500"`
}

// BuildingResponse represents a building in API responses
type BuildingResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Street       string    `json:"street"`
	Neighborhood string    `json:"neighborhood"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Country      string    `json:"country"`
	VideoURL     string    `json:"video_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int       `json:"version"`
}

// BuildingListFilter represents filter options for building list
type BuildingListFilter struct {
	Search   string `form:"search"`
	City     string `form:"city"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToBuildingResponse converts a domain building to a response DTO
func ToBuildingResponse(building *property.Building) BuildingResponse {
	return BuildingResponse{
		ID:           building.ID,
		Name:         building.Name,
		Street:       building.Street,
		Neighborhood: building.Neighborhood,
		City:         building.City,
		State:        building.State,
		ZipCode:      building.ZipCode,
		Country:      building.Country,
		VideoURL:     building.VideoURL,
		CreatedAt:    building.CreatedAt,
		UpdatedAt:    building.UpdatedAt,
		Version:      building.Version,
	}
}

// ToBuildingResponses converts a slice of domain buildings to response DTOs
func ToBuildingResponses(buildings []property.Building) []BuildingResponse {
	responses := make([]BuildingResponse, len(buildings))
	for i := range buildings {
		responses[i] = ToBuildingResponse(&buildings[i])
	}
	return responses
}

// =============================================================================
// Apartment DTOs
// =============================================================================

// CreateApartmentRequest represents a request to create a new apartment
type CreateApartmentRequest struct {
	BuildingID         uuid.UUID        `json:"building_id" binding:"required"`
	UnitNumber         string           `json:"unit_number" binding:"required,min=1,max=10"`
	Floor              string           `json:"floor" binding:"max=20"`
	Description        string           `json:"description"`
	RentalPrice        *decimal.Decimal `json:"rental_price"`
	Bedrooms           int              `json:"bedrooms" binding:"min=0"`
	Bathrooms          int              `json:"bathrooms" binding:"min=0"`
	SquareFootage      int              `json:"square_footage" binding:"min=0"`
	IsFurnished        bool             `json:"is_furnished"`
	IsPetsAllowed      bool             `json:"is_pets_allowed"`
	HasLaundry         bool             `json:"has_laundry"`
	HasParking         bool             `json:"has_parking"`
	HasInternet        bool             `json:"has_internet"`
	HasAirConditioning bool             `json:"has_air_conditioning"`
}

// UpdateApartmentRequest represents a request to update an apartment
type UpdateApartmentRequest struct {
	UnitNumber         *string          `json:"unit_number" binding:"omitempty,min=1,max=10"`
	Floor              *string          `json:"floor" binding:"omitempty,max=20"`
	Description        *string          `json:"description"`
	RentalPrice        *decimal.Decimal `json:"rental_price"`
	Bedrooms           *int             `json:"bedrooms" binding:"omitempty,min=0"`
	Bathrooms          *int             `json:"bathrooms" binding:"omitempty,min=0"`
	SquareFootage      *int             `json:"square_footage" binding:"omitempty,min=0"`
	IsFurnished        *bool            `json:"is_furnished"`
	IsPetsAllowed      *bool            `json:"is_pets_allowed"`
	HasLaundry         *bool            `json:"has_laundry"`
	HasParking         *bool            `json:"has_parking"`
	HasInternet        *bool            `json:"has_internet"`
	HasAirConditioning *bool            `json:"has_air_conditioning"`
}

// ApartmentResponse represents an apartment in API responses
type ApartmentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	BuildingID         uuid.UUID       `json:"building_id"`
	UnitNumber         string          `json:"unit_number"`
	Floor              string          `json:"floor"`
	Description        string          `json:"description"`
	RentalPrice        decimal.Decimal `json:"rental_price"`
	IsAvailable        bool            `json:"is_available"`
	IsFurnished        bool            `json:"is_furnished"`
	IsPetsAllowed      bool            `json:"is_pets_allowed"`
	HasLaundry         bool            `json:"has_laundry"`
	HasParking         bool            `json:"has_parking"`
	HasInternet        bool            `json:"has_internet"`
	HasAirConditioning bool            `json:"has_air_conditioning"`
	Bedrooms           int             `json:"bedrooms"`
	Bathrooms          int             `json:"bathrooms"`
	SquareFootage      int             `json:"square_footage"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Version            int             `json:"version"`
}

// ApartmentListFilter represents filter options for apartment list
type ApartmentListFilter struct {
	Search      string `form:"search"`
	BuildingID  string `form:"building_id" binding:"omitempty,uuid"`
	IsAvailable *bool  `form:"is_available"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToApartmentResponse converts a domain apartment to a response DTO
func ToApartmentResponse(apartment *property.Apartment) ApartmentResponse {
	return ApartmentResponse{
		ID:                 apartment.ID,
		BuildingID:         apartment.BuildingID,
		UnitNumber:         apartment.UnitNumber,
		Floor:              apartment.Floor,
		Description:        apartment.Description,
		RentalPrice:        apartment.RentalPrice,
		IsAvailable:        apartment.IsAvailable,
		IsFurnished:        apartment.IsFurnished,
		IsPetsAllowed:      apartment.IsPetsAllowed,
		HasLaundry:         apartment.HasLaundry,
		HasParking:         apartment.HasParking,
		HasInternet:        apartment.HasInternet,
		HasAirConditioning: apartment.HasAirConditioning,
		Bedrooms:           apartment.Bedrooms,
		Bathrooms:          apartment.Bathrooms,
		SquareFootage:      apartment.SquareFootage,
		CreatedAt:          apartment.CreatedAt,
		UpdatedAt:          apartment.UpdatedAt,
		Version:            apartment.Version,
	}
}

// ToApartmentResponses converts a slice of domain apartments to response DTOs
func ToApartmentResponses(apartments []property.Apartment) []ApartmentResponse {
	responses := make([]ApartmentResponse, len(apartments))
	for i := range apartments {
		responses[i] = ToApartmentResponse(&apartments[i])
	}
	return responses
}
