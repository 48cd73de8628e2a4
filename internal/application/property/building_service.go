package property

import (
	"context"

	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BuildingService handles building-related business operations
type BuildingService struct {
	buildingRepo  property.BuildingRepository
	apartmentRepo property.ApartmentRepository
}

// NewBuildingService creates a new BuildingService
func NewBuildingService(buildingRepo property.BuildingRepository, apartmentRepo property.ApartmentRepository) *BuildingService {
	return &BuildingService{
		buildingRepo:  buildingRepo,
		apartmentRepo: apartmentRepo,
	}
}

// Create creates a new building
func (s *BuildingService) Create(ctx context.Context, req CreateBuildingRequest) (*BuildingResponse, error) {
	building, err := property.NewBuilding(req.Name)
	if err != nil {
		return nil, err
	}

	if req.Street != "" || req.Neighborhood != "" || req.City != "" || req.State != "" || req.ZipCode != "" || req.Country != "" {
		if err := building.SetAddress(req.Street, req.Neighborhood, req.City, req.State, req.ZipCode, req.Country); err != nil {
			return nil, err
		}
	}

	if req.VideoURL != "" {
		if err := building.SetVideoURL(req.VideoURL); err != nil {
			return nil, err
		}
	}

	if err := s.buildingRepo.Save(ctx, building); err != nil {
		return nil, err
	}

	response := ToBuildingResponse(building)
	return &response, nil
}

// GetByID retrieves a building by ID
func (s *BuildingService) GetByID(ctx context.Context, buildingID uuid.UUID) (*BuildingResponse, error) {
	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	response := ToBuildingResponse(building)
	return &response, nil
}

// List retrieves a list of buildings with filtering and pagination
func (s *BuildingService) List(ctx context.Context, filter BuildingListFilter) ([]BuildingResponse, int64, error) {
	domainFilter := buildDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}

	buildings, err := s.buildingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.buildingRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBuildingResponses(buildings), total, nil
}

// Update updates a building
func (s *BuildingService) Update(ctx context.Context, buildingID uuid.UUID, req UpdateBuildingRequest) (*BuildingResponse, error) {
	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := building.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Street != nil || req.Neighborhood != nil || req.City != nil || req.State != nil || req.ZipCode != nil || req.Country != nil {
		street := building.Street
		neighborhood := building.Neighborhood
		city := building.City
		state := building.State
		zipCode := building.ZipCode
		country := building.Country

		if req.Street != nil {
			street = *req.Street
		}
		if req.Neighborhood != nil {
			neighborhood = *req.Neighborhood
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.ZipCode != nil {
			zipCode = *req.ZipCode
		}
		if req.Country != nil {
			country = *req.Country
		}

		if err := building.SetAddress(street, neighborhood, city, state, zipCode, country); err != nil {
			return nil, err
		}
	}

	if req.VideoURL != nil {
		if err := building.SetVideoURL(*req.VideoURL); err != nil {
			return nil, err
		}
	}

	if err := s.buildingRepo.Save(ctx, building); err != nil {
		return nil, err
	}

	response := ToBuildingResponse(building)
	return &response, nil
}

// Delete deletes a building. Buildings with apartments cannot be deleted.
func (s *BuildingService) Delete(ctx context.Context, buildingID uuid.UUID) error {
	if _, err := s.buildingRepo.FindByID(ctx, buildingID); err != nil {
		return err
	}

	unitFilter := shared.DefaultFilter()
	unitFilter.Filters["building_id"] = buildingID
	count, err := s.apartmentRepo.Count(ctx, unitFilter)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("BUILDING_HAS_APARTMENTS", "Building with registered apartments cannot be deleted")
	}

	return s.buildingRepo.Delete(ctx, buildingID)
}

// buildDomainFilter normalizes pagination and ordering defaults
func buildDomainFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if orderBy == "" {
		orderBy = "created_at"
	}
	if orderDir == "" {
		orderDir = "desc"
	}

	return shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderBy,
		OrderDir: orderDir,
		Search:   search,
		Filters:  make(map[string]interface{}),
	}
}
