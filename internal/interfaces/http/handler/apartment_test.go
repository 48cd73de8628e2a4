package handler

import (
	"context"
	"net/http"
	"testing"

	appproperty "github.com/aptos/backend/internal/application/property"
	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockApartmentRepository is a testify mock of property.ApartmentRepository
type MockApartmentRepository struct {
	mock.Mock
}

func (m *MockApartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Apartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Apartment), args.Error(1)
}

func (m *MockApartmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Apartment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Apartment), args.Error(1)
}

func (m *MockApartmentRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID, filter shared.Filter) ([]property.Apartment, error) {
	args := m.Called(ctx, buildingID, filter)
	return args.Get(0).([]property.Apartment), args.Error(1)
}

func (m *MockApartmentRepository) FindAvailable(ctx context.Context, filter shared.Filter) ([]property.Apartment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Apartment), args.Error(1)
}

func (m *MockApartmentRepository) Save(ctx context.Context, apartment *property.Apartment) error {
	args := m.Called(ctx, apartment)
	return args.Error(0)
}

func (m *MockApartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApartmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApartmentRepository) CountAvailable(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApartmentRepository) ExistsByUnitNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (bool, error) {
	args := m.Called(ctx, buildingID, unitNumber)
	return args.Bool(0), args.Error(1)
}

// MockBuildingRepository is a testify mock of property.BuildingRepository
type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Building), args.Error(1)
}

func (m *MockBuildingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Building, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]property.Building), args.Error(1)
}

func (m *MockBuildingRepository) Save(ctx context.Context, building *property.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuildingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ property.ApartmentRepository = (*MockApartmentRepository)(nil)
	_ property.BuildingRepository  = (*MockBuildingRepository)(nil)
)

func setupApartmentTestRouter(t *testing.T) (*gin.Engine, *MockApartmentRepository, *MockBuildingRepository, *MockLeaseRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	apartmentRepo := new(MockApartmentRepository)
	buildingRepo := new(MockBuildingRepository)
	leaseRepo := new(MockLeaseRepository)
	service := appproperty.NewApartmentService(apartmentRepo, buildingRepo, leaseRepo)
	handler := NewApartmentHandler(service, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, apartmentRepo, buildingRepo, leaseRepo
}

func TestApartmentHandlerCreate(t *testing.T) {
	t.Run("creates apartment and returns 201", func(t *testing.T) {
		router, apartmentRepo, buildingRepo, _ := setupApartmentTestRouter(t)

		building, err := property.NewBuilding("Solar das Acacias")
		require.NoError(t, err)

		buildingRepo.On("FindByID", mock.Anything, building.ID).Return(building, nil)
		apartmentRepo.On("ExistsByUnitNumber", mock.Anything, building.ID, "101").Return(false, nil)
		apartmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*property.Apartment")).Return(nil)

		w := performRequest(router, http.MethodPost, "/api/v1/apartments", gin.H{
			"building_id": building.ID.String(),
			"unit_number": "101",
			"bedrooms":    2,
			"bathrooms":   1,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "101", data["unit_number"])
		assert.Equal(t, true, data["is_available"])
	})

	t.Run("rejects duplicate unit number with 409", func(t *testing.T) {
		router, apartmentRepo, buildingRepo, _ := setupApartmentTestRouter(t)

		building, err := property.NewBuilding("Solar das Acacias")
		require.NoError(t, err)

		buildingRepo.On("FindByID", mock.Anything, building.ID).Return(building, nil)
		apartmentRepo.On("ExistsByUnitNumber", mock.Anything, building.ID, "101").Return(true, nil)

		w := performRequest(router, http.MethodPost, "/api/v1/apartments", gin.H{
			"building_id": building.ID.String(),
			"unit_number": "101",
			"bedrooms":    2,
			"bathrooms":   1,
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("rejects unknown building with 404", func(t *testing.T) {
		router, _, buildingRepo, _ := setupApartmentTestRouter(t)

		id := uuid.New()
		buildingRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		w := performRequest(router, http.MethodPost, "/api/v1/apartments", gin.H{
			"building_id": id.String(),
			"unit_number": "101",
			"bedrooms":    2,
			"bathrooms":   1,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestApartmentHandlerListAvailable(t *testing.T) {
	router, apartmentRepo, _, _ := setupApartmentTestRouter(t)

	apartment := apartmentFixture(t)
	apartmentRepo.On("FindAvailable", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]property.Apartment{*apartment}, nil)

	w := performRequest(router, http.MethodGet, "/api/v1/apartments/available", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
}

func TestApartmentHandlerDelete(t *testing.T) {
	t.Run("refuses to delete an apartment with an active lease", func(t *testing.T) {
		router, apartmentRepo, _, leaseRepo := setupApartmentTestRouter(t)

		apartment := apartmentFixture(t)
		lease := leaseFixture(t, apartment.ID)

		apartmentRepo.On("FindByID", mock.Anything, apartment.ID).Return(apartment, nil)
		leaseRepo.On("FindActiveByApartment", mock.Anything, apartment.ID).Return([]leasing.Lease{*lease}, nil)

		w := performRequest(router, http.MethodDelete, "/api/v1/apartments/"+apartment.ID.String(), nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "APARTMENT_HAS_ACTIVE_LEASE", resp.Error.Code)
	})
}
