package tenancy

import (
	"context"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

// TenantService handles tenant registration, profile updates and status
// transitions. Status transitions go through the TransitionExecutor so the
// status change, its history entry and any BLOCKED-triggered lease
// finalization commit atomically.
type TenantService struct {
	tenantRepo  tenancy.TenantRepository
	historyRepo tenancy.StatusHistoryRepository
	executor    tenancy.TransitionExecutor
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo tenancy.TenantRepository, historyRepo tenancy.StatusHistoryRepository, executor tenancy.TransitionExecutor) *TenantService {
	return &TenantService{
		tenantRepo:  tenantRepo,
		historyRepo: historyRepo,
		executor:    executor,
	}
}

// Register registers a new tenant. The document must be unique across both
// individual and legal-entity tenants.
func (s *TenantService) Register(ctx context.Context, req RegisterTenantRequest) (*TenantResponse, error) {
	normalized := tenancy.CleanDocument(req.Document)
	exists, err := s.tenantRepo.ExistsByDocument(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this document already exists")
	}

	var tenant *tenancy.Tenant
	switch tenancy.TenantKind(req.Kind) {
	case tenancy.TenantKindIndividual:
		tenant, err = tenancy.NewIndividualTenant(req.Name, req.Document)
	case tenancy.TenantKindLegalEntity:
		tenant, err = tenancy.NewLegalEntityTenant(req.Name, req.Document)
	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Tenant kind must be PF or PJ")
	}
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" {
		if err := tenant.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		if err := tenant.Update(req.Name, req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByID retrieves a tenant by ID
func (s *TenantService) GetByID(ctx context.Context, tenantID uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// GetByDocument retrieves a tenant by its CPF/CNPJ, masked or not
func (s *TenantService) GetByDocument(ctx context.Context, document string) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByDocument(ctx, tenancy.CleanDocument(document))
	if err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// List retrieves a list of tenants with filtering and pagination
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) ([]TenantListResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTenantListResponses(tenants), total, nil
}

// Update updates a tenant's profile. Kind and document are immutable.
func (s *TenantService) Update(ctx context.Context, tenantID uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Notes != nil {
		name := tenant.Name
		notes := tenant.Notes
		if req.Name != nil {
			name = *req.Name
		}
		if req.Notes != nil {
			notes = *req.Notes
		}
		if err := tenant.Update(name, notes); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil {
		email := tenant.Email
		phone := tenant.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := tenant.SetContact(email, phone); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Transition moves a tenant to a new status. The transition is validated
// against the state machine, logged, and applied atomically together with
// its side effects.
func (s *TenantService) Transition(ctx context.Context, tenantID uuid.UUID, req TransitionTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	previous := tenant.Status
	target := tenancy.TenantStatus(req.Status)
	if err := tenant.TransitionTo(target); err != nil {
		return nil, err
	}

	entry := tenancy.NewStatusHistory(tenant.ID, previous, target, req.Reason, req.Actor, tenancy.ReasonCategoryManual)
	if err := s.executor.Execute(ctx, tenant, entry); err != nil {
		return nil, err
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// History retrieves the status transition log for a tenant
func (s *TenantService) History(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StatusHistoryResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	return ToStatusHistoryResponses(entries), nil
}
