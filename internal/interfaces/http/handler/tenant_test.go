package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	apptenancy "github.com/aptos/backend/internal/application/tenancy"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTenantRepository is a testify mock of tenancy.TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByDocument(ctx context.Context, document string) (*tenancy.Tenant, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByStatus(ctx context.Context, status tenancy.TenantStatus, filter shared.Filter) ([]tenancy.Tenant, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) CountByStatus(ctx context.Context, status tenancy.TenantStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) CountByKind(ctx context.Context, kind tenancy.TenantKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	args := m.Called(ctx, document)
	return args.Bool(0), args.Error(1)
}

// MockStatusHistoryRepository is a testify mock of tenancy.StatusHistoryRepository
type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]tenancy.StatusHistory, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]tenancy.StatusHistory), args.Error(1)
}

func (m *MockStatusHistoryRepository) FindSince(ctx context.Context, since time.Time) ([]tenancy.StatusHistory, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]tenancy.StatusHistory), args.Error(1)
}

func (m *MockStatusHistoryRepository) Append(ctx context.Context, entry *tenancy.StatusHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStatusHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransitionExecutor is a testify mock of tenancy.TransitionExecutor
type MockTransitionExecutor struct {
	mock.Mock
}

func (m *MockTransitionExecutor) Execute(ctx context.Context, tenant *tenancy.Tenant, entry *tenancy.StatusHistory) error {
	args := m.Called(ctx, tenant, entry)
	return args.Error(0)
}

var (
	_ tenancy.TenantRepository        = (*MockTenantRepository)(nil)
	_ tenancy.StatusHistoryRepository = (*MockStatusHistoryRepository)(nil)
	_ tenancy.TransitionExecutor      = (*MockTransitionExecutor)(nil)
)

func setupTenantTestRouter() (*gin.Engine, *MockTenantRepository, *MockStatusHistoryRepository, *MockTransitionExecutor) {
	gin.SetMode(gin.TestMode)

	tenantRepo := new(MockTenantRepository)
	historyRepo := new(MockStatusHistoryRepository)
	executor := new(MockTransitionExecutor)
	service := apptenancy.NewTenantService(tenantRepo, historyRepo, executor)
	handler := NewTenantHandler(service, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return router, tenantRepo, historyRepo, executor
}

func TestTenantHandlerRegister(t *testing.T) {
	t.Run("registers individual and returns 201", func(t *testing.T) {
		router, tenantRepo, _, _ := setupTenantTestRouter()

		tenantRepo.On("ExistsByDocument", mock.Anything, "11144477735").Return(false, nil)
		tenantRepo.On("Save", mock.Anything, mock.AnythingOfType("*tenancy.Tenant")).Return(nil)

		w := performRequest(router, http.MethodPost, "/api/v1/tenants", gin.H{
			"kind":     "PF",
			"name":     "Maria Souza",
			"document": "111.444.777-35",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "ACTIVE", data["status"])
		assert.Equal(t, "11144477735", data["document"])

		tenantRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate document with 409", func(t *testing.T) {
		router, tenantRepo, _, _ := setupTenantTestRouter()

		tenantRepo.On("ExistsByDocument", mock.Anything, "11144477735").Return(true, nil)

		w := performRequest(router, http.MethodPost, "/api/v1/tenants", gin.H{
			"kind":     "PF",
			"name":     "Maria Souza",
			"document": "11144477735",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("rejects invalid check digits with 400", func(t *testing.T) {
		router, tenantRepo, _, _ := setupTenantTestRouter()

		tenantRepo.On("ExistsByDocument", mock.Anything, "11144477736").Return(false, nil)

		w := performRequest(router, http.MethodPost, "/api/v1/tenants", gin.H{
			"kind":     "PF",
			"name":     "Maria Souza",
			"document": "11144477736",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "INVALID_CPF", resp.Error.Code)
	})

	t.Run("rejects unknown kind with 400", func(t *testing.T) {
		router, _, _, _ := setupTenantTestRouter()

		w := performRequest(router, http.MethodPost, "/api/v1/tenants", gin.H{
			"kind":     "XX",
			"name":     "Maria Souza",
			"document": "11144477735",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTenantHandlerTransition(t *testing.T) {
	t.Run("applies a valid transition", func(t *testing.T) {
		router, tenantRepo, _, executor := setupTenantTestRouter()

		tenant := activeTenantFixture(t)
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		executor.On("Execute", mock.Anything, tenant, mock.AnythingOfType("*tenancy.StatusHistory")).Return(nil)

		w := performRequest(router, http.MethodPost, "/api/v1/tenants/"+tenant.ID.String()+"/transition", gin.H{
			"status": "DELINQUENT",
			"reason": "missed two payments",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "DELINQUENT", data["status"])

		executor.AssertExpectations(t)
	})

	t.Run("rejects an invalid transition with 422", func(t *testing.T) {
		router, tenantRepo, _, executor := setupTenantTestRouter()

		tenant := activeTenantFixture(t)
		require.NoError(t, tenant.TransitionTo(tenancy.TenantStatusInactive))
		tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

		w := performRequest(router, http.MethodPost, "/api/v1/tenants/"+tenant.ID.String()+"/transition", gin.H{
			"status": "DELINQUENT",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)

		executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTenantHandlerGetByDocument(t *testing.T) {
	router, tenantRepo, _, _ := setupTenantTestRouter()

	tenant := activeTenantFixture(t)
	tenantRepo.On("FindByDocument", mock.Anything, "11144477735").Return(tenant, nil)

	w := performRequest(router, http.MethodGet, "/api/v1/tenants/by-document/111.444.777-35", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Maria Souza", data["name"])
}

func TestTenantHandlerHistory(t *testing.T) {
	router, tenantRepo, historyRepo, _ := setupTenantTestRouter()

	tenant := activeTenantFixture(t)
	entry := tenancy.NewStatusHistory(tenant.ID, tenancy.TenantStatusActive, tenancy.TenantStatusDelinquent,
		"missed payments", "admin", tenancy.ReasonCategoryManual)

	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	historyRepo.On("FindByTenant", mock.Anything, tenant.ID, mock.AnythingOfType("shared.Filter")).
		Return([]tenancy.StatusHistory{*entry}, nil)

	w := performRequest(router, http.MethodGet, "/api/v1/tenants/"+tenant.ID.String()+"/history?page_size=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "DELINQUENT", first["new_status"])
}
