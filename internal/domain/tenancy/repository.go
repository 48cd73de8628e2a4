package tenancy

import (
	"context"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRepository defines the persistence interface for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByDocument(ctx context.Context, document string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	FindByStatus(ctx context.Context, status TenantStatus, filter shared.Filter) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status TenantStatus) (int64, error)
	CountByKind(ctx context.Context, kind TenantKind) (int64, error)
	ExistsByDocument(ctx context.Context, document string) (bool, error)
}

// StatusHistoryRepository defines the persistence interface for the
// append-only status transition log
type StatusHistoryRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StatusHistory, error)
	FindSince(ctx context.Context, since time.Time) ([]StatusHistory, error)
	Append(ctx context.Context, entry *StatusHistory) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StatusRuleRepository defines the persistence interface for status rules
type StatusRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StatusRule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StatusRule, error)
	FindAutomatic(ctx context.Context) ([]StatusRule, error)
	Save(ctx context.Context, rule *StatusRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransitionExecutor persists a validated status transition as one atomic
// unit: the tenant's new status, the history entry, and - when the target
// status is BLOCKED - the forced finalization of the tenant's active leases
// together with the availability resync of each affected apartment. Any
// failure rolls the whole transition back, history entry included.
type TransitionExecutor interface {
	Execute(ctx context.Context, tenant *Tenant, entry *StatusHistory) error
}
