package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// HistoryReferenceDateResolver derives rule criterion clocks from recorded
// history instead of a dedicated ledger.
//
// DAYS_WITHOUT_PAYMENT starts at the start date of the tenant's most recent
// active lease; rent falls due from that date and a tenant with no active
// lease has no payment clock. DAYS_INACTIVE starts at the tenant's most
// recent recorded event: a status change, a lease lifecycle event or the
// tenant record's own last update, whichever is latest. A zero time means
// the clock never started.
type HistoryReferenceDateResolver struct {
	db *gorm.DB
}

// NewHistoryReferenceDateResolver creates a history-backed resolver
func NewHistoryReferenceDateResolver(db *gorm.DB) *HistoryReferenceDateResolver {
	return &HistoryReferenceDateResolver{db: db}
}

// Resolve returns the date the criterion's clock started for the tenant
func (r *HistoryReferenceDateResolver) Resolve(ctx context.Context, tenant *tenancy.Tenant, criterion tenancy.RuleCriterion) (time.Time, error) {
	switch criterion {
	case tenancy.CriterionDaysWithoutPayment:
		return r.paymentClock(ctx, tenant)
	case tenancy.CriterionDaysInactive:
		return r.activityClock(ctx, tenant)
	default:
		return time.Time{}, fmt.Errorf("unknown rule criterion %q", criterion)
	}
}

func (r *HistoryReferenceDateResolver) paymentClock(ctx context.Context, tenant *tenancy.Tenant) (time.Time, error) {
	var lease leasing.Lease
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenant.ID, true).
		Order("start_date DESC").
		First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to resolve payment clock: %w", err)
	}
	return lease.StartDate, nil
}

func (r *HistoryReferenceDateResolver) activityClock(ctx context.Context, tenant *tenancy.Tenant) (time.Time, error) {
	latest := tenant.UpdatedAt

	var statusEntry tenancy.StatusHistory
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenant.ID).
		Order("created_at DESC").
		First(&statusEntry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, fmt.Errorf("failed to resolve activity clock: %w", err)
	}
	if err == nil && statusEntry.CreatedAt.After(latest) {
		latest = statusEntry.CreatedAt
	}

	var leaseEntry leasing.LeaseHistory
	err = r.db.WithContext(ctx).
		Where("tenant_id = ?", tenant.ID).
		Order("created_at DESC").
		First(&leaseEntry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, fmt.Errorf("failed to resolve activity clock: %w", err)
	}
	if err == nil && leaseEntry.CreatedAt.After(latest) {
		latest = leaseEntry.CreatedAt
	}

	return latest, nil
}
