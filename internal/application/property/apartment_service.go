package property

import (
	"context"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ApartmentService handles apartment-related business operations
type ApartmentService struct {
	apartmentRepo property.ApartmentRepository
	buildingRepo  property.BuildingRepository
	leaseRepo     leasing.LeaseRepository
}

// NewApartmentService creates a new ApartmentService
func NewApartmentService(apartmentRepo property.ApartmentRepository, buildingRepo property.BuildingRepository, leaseRepo leasing.LeaseRepository) *ApartmentService {
	return &ApartmentService{
		apartmentRepo: apartmentRepo,
		buildingRepo:  buildingRepo,
		leaseRepo:     leaseRepo,
	}
}

// Create creates a new apartment in a building
func (s *ApartmentService) Create(ctx context.Context, req CreateApartmentRequest) (*ApartmentResponse, error) {
	if _, err := s.buildingRepo.FindByID(ctx, req.BuildingID); err != nil {
		return nil, err
	}

	exists, err := s.apartmentRepo.ExistsByUnitNumber(ctx, req.BuildingID, req.UnitNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Apartment with this unit number already exists in the building")
	}

	apartment, err := property.NewApartment(req.BuildingID, req.UnitNumber, req.Bedrooms, req.Bathrooms)
	if err != nil {
		return nil, err
	}

	if req.Floor != "" || req.Description != "" {
		if err := apartment.Update(req.UnitNumber, req.Floor, req.Description); err != nil {
			return nil, err
		}
	}

	if req.RentalPrice != nil {
		if err := apartment.SetRentalPrice(*req.RentalPrice); err != nil {
			return nil, err
		}
	}

	if req.SquareFootage > 0 {
		if err := apartment.SetDimensions(req.Bedrooms, req.Bathrooms, req.SquareFootage); err != nil {
			return nil, err
		}
	}

	apartment.SetFeatures(req.IsFurnished, req.IsPetsAllowed, req.HasLaundry, req.HasParking, req.HasInternet, req.HasAirConditioning)

	if err := s.apartmentRepo.Save(ctx, apartment); err != nil {
		return nil, err
	}

	response := ToApartmentResponse(apartment)
	return &response, nil
}

// GetByID retrieves an apartment by ID
func (s *ApartmentService) GetByID(ctx context.Context, apartmentID uuid.UUID) (*ApartmentResponse, error) {
	apartment, err := s.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	response := ToApartmentResponse(apartment)
	return &response, nil
}

// List retrieves a list of apartments with filtering and pagination
func (s *ApartmentService) List(ctx context.Context, filter ApartmentListFilter) ([]ApartmentResponse, int64, error) {
	domainFilter := buildDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.BuildingID != "" {
		domainFilter.Filters["building_id"] = filter.BuildingID
	}
	if filter.IsAvailable != nil {
		domainFilter.Filters["is_available"] = *filter.IsAvailable
	}

	apartments, err := s.apartmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.apartmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToApartmentResponses(apartments), total, nil
}

// ListAvailable retrieves only apartments without an active lease
func (s *ApartmentService) ListAvailable(ctx context.Context, filter ApartmentListFilter) ([]ApartmentResponse, error) {
	domainFilter := buildDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)

	apartments, err := s.apartmentRepo.FindAvailable(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToApartmentResponses(apartments), nil
}

// Update updates an apartment's descriptive fields
func (s *ApartmentService) Update(ctx context.Context, apartmentID uuid.UUID, req UpdateApartmentRequest) (*ApartmentResponse, error) {
	apartment, err := s.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	if req.UnitNumber != nil || req.Floor != nil || req.Description != nil {
		unitNumber := apartment.UnitNumber
		floor := apartment.Floor
		description := apartment.Description

		if req.UnitNumber != nil && *req.UnitNumber != apartment.UnitNumber {
			exists, err := s.apartmentRepo.ExistsByUnitNumber(ctx, apartment.BuildingID, *req.UnitNumber)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Apartment with this unit number already exists in the building")
			}
			unitNumber = *req.UnitNumber
		}
		if req.Floor != nil {
			floor = *req.Floor
		}
		if req.Description != nil {
			description = *req.Description
		}

		if err := apartment.Update(unitNumber, floor, description); err != nil {
			return nil, err
		}
	}

	if req.RentalPrice != nil {
		if err := apartment.SetRentalPrice(*req.RentalPrice); err != nil {
			return nil, err
		}
	}

	if req.Bedrooms != nil || req.Bathrooms != nil || req.SquareFootage != nil {
		bedrooms := apartment.Bedrooms
		bathrooms := apartment.Bathrooms
		squareFootage := apartment.SquareFootage

		if req.Bedrooms != nil {
			bedrooms = *req.Bedrooms
		}
		if req.Bathrooms != nil {
			bathrooms = *req.Bathrooms
		}
		if req.SquareFootage != nil {
			squareFootage = *req.SquareFootage
		}

		if err := apartment.SetDimensions(bedrooms, bathrooms, squareFootage); err != nil {
			return nil, err
		}
	}

	if req.IsFurnished != nil || req.IsPetsAllowed != nil || req.HasLaundry != nil || req.HasParking != nil || req.HasInternet != nil || req.HasAirConditioning != nil {
		furnished := apartment.IsFurnished
		petsAllowed := apartment.IsPetsAllowed
		laundry := apartment.HasLaundry
		parking := apartment.HasParking
		internet := apartment.HasInternet
		airConditioning := apartment.HasAirConditioning

		if req.IsFurnished != nil {
			furnished = *req.IsFurnished
		}
		if req.IsPetsAllowed != nil {
			petsAllowed = *req.IsPetsAllowed
		}
		if req.HasLaundry != nil {
			laundry = *req.HasLaundry
		}
		if req.HasParking != nil {
			parking = *req.HasParking
		}
		if req.HasInternet != nil {
			internet = *req.HasInternet
		}
		if req.HasAirConditioning != nil {
			airConditioning = *req.HasAirConditioning
		}

		apartment.SetFeatures(furnished, petsAllowed, laundry, parking, internet, airConditioning)
	}

	if err := s.apartmentRepo.Save(ctx, apartment); err != nil {
		return nil, err
	}

	response := ToApartmentResponse(apartment)
	return &response, nil
}

// Delete deletes an apartment. Apartments with an active lease cannot be
// deleted; the lease must be finalized first.
func (s *ApartmentService) Delete(ctx context.Context, apartmentID uuid.UUID) error {
	if _, err := s.apartmentRepo.FindByID(ctx, apartmentID); err != nil {
		return err
	}

	active, err := s.leaseRepo.FindActiveByApartment(ctx, apartmentID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return shared.NewDomainError("APARTMENT_HAS_ACTIVE_LEASE", "Apartment with an active lease cannot be deleted")
	}

	return s.apartmentRepo.Delete(ctx, apartmentID)
}

// ReconcileAvailability re-derives the availability flag of every apartment
// from its active leases and returns how many flags were corrected. Lease
// mutations keep the flag in sync transactionally; this sweep repairs drift
// from out-of-band data changes.
func (s *ApartmentService) ReconcileAvailability(ctx context.Context) (int, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	filter.OrderBy = "created_at"
	filter.OrderDir = "asc"

	corrected := 0
	for {
		apartments, err := s.apartmentRepo.FindAll(ctx, filter)
		if err != nil {
			return corrected, err
		}
		if len(apartments) == 0 {
			return corrected, nil
		}

		for i := range apartments {
			apartment := &apartments[i]
			active, err := s.leaseRepo.FindActiveByApartment(ctx, apartment.ID)
			if err != nil {
				return corrected, err
			}
			if apartment.SyncAvailability(len(active) > 0) {
				if err := s.apartmentRepo.Save(ctx, apartment); err != nil {
					return corrected, err
				}
				corrected++
			}
		}

		if len(apartments) < filter.PageSize {
			return corrected, nil
		}
		filter.Page++
	}
}
