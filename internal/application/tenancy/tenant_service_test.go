package tenancy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockTenantRepository is a mock implementation of tenancy.TenantRepository
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

// MockStatusHistoryRepository is a mock implementation of StatusHistoryRepository
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

// MockStatusRuleRepository is a mock implementation of StatusRuleRepository
type MockStatusRuleRepository struct {
	mock.Mock
}

func (m *MockStatusRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.StatusRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.StatusRule), args.Error(1)
}

func (m *MockStatusRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.StatusRule, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]tenancy.StatusRule), args.Error(1)
}

func (m *MockStatusRuleRepository) FindAutomatic(ctx context.Context) ([]tenancy.StatusRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tenancy.StatusRule), args.Error(1)
}

func (m *MockStatusRuleRepository) Save(ctx context.Context, rule *tenancy.StatusRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockStatusRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransitionExecutor is a mock implementation of TransitionExecutor
type MockTransitionExecutor struct {
	mock.Mock
}

func (m *MockTransitionExecutor) Execute(ctx context.Context, tenant *tenancy.Tenant, entry *tenancy.StatusHistory) error {
	args := m.Called(ctx, tenant, entry)
	return args.Error(0)
}

// MockReferenceDateResolver is a mock implementation of ReferenceDateResolver
type MockReferenceDateResolver struct {
	mock.Mock
}

func (m *MockReferenceDateResolver) Resolve(ctx context.Context, tenant *tenancy.Tenant, criterion tenancy.RuleCriterion) (time.Time, error) {
	args := m.Called(ctx, tenant, criterion)
	return args.Get(0).(time.Time), args.Error(1)
}

// =============================================================================
// TenantService Tests
// =============================================================================

const validCPF = "11144477735"

func newTenantService(t *testing.T) (*TenantService, *MockTenantRepository, *MockStatusHistoryRepository, *MockTransitionExecutor) {
	t.Helper()
	tenantRepo := new(MockTenantRepository)
	historyRepo := new(MockStatusHistoryRepository)
	executor := new(MockTransitionExecutor)
	return NewTenantService(tenantRepo, historyRepo, executor), tenantRepo, historyRepo, executor
}

func newTestTenant(t *testing.T) *tenancy.Tenant {
	t.Helper()
	tenant, err := tenancy.NewIndividualTenant("Maria Silva", validCPF)
	require.NoError(t, err)
	return tenant
}

func TestTenantServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers PF tenant", func(t *testing.T) {
		service, tenantRepo, _, _ := newTenantService(t)

		tenantRepo.On("ExistsByDocument", ctx, validCPF).Return(false, nil)
		tenantRepo.On("Save", ctx, mock.AnythingOfType("*tenancy.Tenant")).Return(nil)

		response, err := service.Register(ctx, RegisterTenantRequest{
			Kind:     "PF",
			Name:     "Maria Silva",
			Document: "111.444.777-35",
			Email:    "maria@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, validCPF, response.Document)
		assert.Equal(t, "ACTIVE", response.Status)
		tenantRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate document", func(t *testing.T) {
		service, tenantRepo, _, _ := newTenantService(t)

		tenantRepo.On("ExistsByDocument", ctx, validCPF).Return(true, nil)

		_, err := service.Register(ctx, RegisterTenantRequest{
			Kind:     "PF",
			Name:     "Maria Silva",
			Document: validCPF,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		tenantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid document", func(t *testing.T) {
		service, tenantRepo, _, _ := newTenantService(t)

		tenantRepo.On("ExistsByDocument", ctx, mock.Anything).Return(false, nil)

		_, err := service.Register(ctx, RegisterTenantRequest{
			Kind:     "PF",
			Name:     "Maria Silva",
			Document: "12345678900",
		})

		assert.Error(t, err)
	})
}

func TestTenantServiceTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("applies legal transition through the executor", func(t *testing.T) {
		service, tenantRepo, _, executor := newTenantService(t)
		tenant := newTestTenant(t)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		executor.On("Execute", ctx, tenant, mock.MatchedBy(func(entry *tenancy.StatusHistory) bool {
			return entry.TenantID == tenant.ID &&
				entry.PreviousStatus == tenancy.TenantStatusActive &&
				entry.NewStatus == tenancy.TenantStatusBlocked &&
				entry.ReasonCategory == tenancy.ReasonCategoryManual
		})).Return(nil)

		response, err := service.Transition(ctx, tenant.ID, TransitionTenantRequest{
			Status: "BLOCKED",
			Reason: "chargebacks",
			Actor:  "admin@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "BLOCKED", response.Status)
		executor.AssertExpectations(t)
	})

	t.Run("rejects illegal transition without touching the executor", func(t *testing.T) {
		service, tenantRepo, _, executor := newTenantService(t)
		tenant := newTestTenant(t)
		tenant.Status = tenancy.TenantStatusInactive

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

		_, err := service.Transition(ctx, tenant.ID, TransitionTenantRequest{Status: "DELINQUENT"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("executor failure surfaces to the caller", func(t *testing.T) {
		service, tenantRepo, _, executor := newTenantService(t)
		tenant := newTestTenant(t)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		executor.On("Execute", ctx, tenant, mock.Anything).Return(shared.ErrConcurrencyConflict)

		_, err := service.Transition(ctx, tenant.ID, TransitionTenantRequest{Status: "INACTIVE"})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

// =============================================================================
// StatusRuleService Tests
// =============================================================================

func newStatusRuleService(t *testing.T) (*StatusRuleService, *MockStatusRuleRepository, *MockTenantRepository, *MockTransitionExecutor, *MockReferenceDateResolver) {
	t.Helper()
	ruleRepo := new(MockStatusRuleRepository)
	tenantRepo := new(MockTenantRepository)
	executor := new(MockTransitionExecutor)
	resolver := new(MockReferenceDateResolver)
	service := NewStatusRuleService(ruleRepo, tenantRepo, executor, resolver, zap.NewNop())
	return service, ruleRepo, tenantRepo, executor, resolver
}

func TestStatusRuleServiceApplyAutomaticRules(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)

	t.Run("transitions matching tenants with automatic history entries", func(t *testing.T) {
		service, ruleRepo, tenantRepo, executor, resolver := newStatusRuleService(t)

		rule, err := tenancy.NewStatusRule("delinquency", tenancy.CriterionDaysWithoutPayment, 30, tenancy.TenantStatusDelinquent)
		require.NoError(t, err)
		rule.SetAutomatic(true)

		overdue := newTestTenant(t)
		current := newTestTenant(t)
		current.Document = "52998224725"

		ruleRepo.On("FindAutomatic", ctx).Return([]tenancy.StatusRule{*rule}, nil)
		tenantRepo.On("FindAll", ctx, mock.Anything).Return([]tenancy.Tenant{*overdue, *current}, nil)
		resolver.On("Resolve", ctx, mock.MatchedBy(func(tn *tenancy.Tenant) bool { return tn.ID == overdue.ID }), tenancy.CriterionDaysWithoutPayment).
			Return(now.AddDate(0, 0, -45), nil)
		resolver.On("Resolve", ctx, mock.MatchedBy(func(tn *tenancy.Tenant) bool { return tn.ID == current.ID }), tenancy.CriterionDaysWithoutPayment).
			Return(now.AddDate(0, 0, -5), nil)
		executor.On("Execute", ctx, mock.MatchedBy(func(tn *tenancy.Tenant) bool { return tn.ID == overdue.ID }), mock.MatchedBy(func(entry *tenancy.StatusHistory) bool {
			return entry.ReasonCategory == tenancy.ReasonCategoryAutomatic && entry.NewStatus == tenancy.TenantStatusDelinquent
		})).Return(nil)

		result, err := service.ApplyAutomaticRules(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Transitioned)
		assert.Equal(t, 0, result.Failed)
		executor.AssertExpectations(t)
	})

	t.Run("one failing tenant does not abort the sweep", func(t *testing.T) {
		service, ruleRepo, tenantRepo, executor, resolver := newStatusRuleService(t)

		rule, err := tenancy.NewStatusRule("inactivity", tenancy.CriterionDaysInactive, 60, tenancy.TenantStatusInactive)
		require.NoError(t, err)
		rule.SetAutomatic(true)

		first := newTestTenant(t)
		second := newTestTenant(t)
		second.Document = "52998224725"

		ruleRepo.On("FindAutomatic", ctx).Return([]tenancy.StatusRule{*rule}, nil)
		tenantRepo.On("FindAll", ctx, mock.Anything).Return([]tenancy.Tenant{*first, *second}, nil)
		resolver.On("Resolve", ctx, mock.Anything, tenancy.CriterionDaysInactive).Return(now.AddDate(0, 0, -90), nil)
		executor.On("Execute", ctx, mock.MatchedBy(func(tn *tenancy.Tenant) bool { return tn.ID == first.ID }), mock.Anything).
			Return(shared.ErrConcurrencyConflict)
		executor.On("Execute", ctx, mock.MatchedBy(func(tn *tenancy.Tenant) bool { return tn.ID == second.ID }), mock.Anything).
			Return(nil)

		result, err := service.ApplyAutomaticRules(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Transitioned)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("sweeps tenants beyond the first page", func(t *testing.T) {
		service, ruleRepo, tenantRepo, _, resolver := newStatusRuleService(t)

		rule, err := tenancy.NewStatusRule("delinquency", tenancy.CriterionDaysWithoutPayment, 30, tenancy.TenantStatusDelinquent)
		require.NoError(t, err)
		rule.SetAutomatic(true)

		firstPage := make([]tenancy.Tenant, 500)
		for i := range firstPage {
			firstPage[i] = *newTestTenant(t)
		}
		secondPage := []tenancy.Tenant{*newTestTenant(t)}

		ruleRepo.On("FindAutomatic", ctx).Return([]tenancy.StatusRule{*rule}, nil)
		tenantRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 1 && f.PageSize == 500 })).
			Return(firstPage, nil).Once()
		tenantRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool { return f.Page == 2 && f.PageSize == 500 })).
			Return(secondPage, nil).Once()
		resolver.On("Resolve", ctx, mock.Anything, tenancy.CriterionDaysWithoutPayment).
			Return(now.AddDate(0, 0, -5), nil)

		result, err := service.ApplyAutomaticRules(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 501, result.Evaluated)
		assert.Equal(t, 0, result.Transitioned)
		tenantRepo.AssertExpectations(t)
	})

	t.Run("no automatic rules is a no-op", func(t *testing.T) {
		service, ruleRepo, tenantRepo, _, _ := newStatusRuleService(t)

		ruleRepo.On("FindAutomatic", ctx).Return([]tenancy.StatusRule{}, nil)

		result, err := service.ApplyAutomaticRules(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Evaluated)
		tenantRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}
