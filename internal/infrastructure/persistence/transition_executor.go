package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// GormTransitionExecutor implements tenancy.TransitionExecutor.
//
// A status transition commits the tenant's new status and the history entry
// together. When the target status is BLOCKED the tenant's active leases are
// force-finalized as of today inside the same transaction, each with its own
// lease history entry, and the availability of every affected apartment is
// re-derived. Any failure rolls the whole transition back.
type GormTransitionExecutor struct {
	db *gorm.DB
}

// NewGormTransitionExecutor creates a new GORM transition executor
func NewGormTransitionExecutor(db *gorm.DB) *GormTransitionExecutor {
	return &GormTransitionExecutor{db: db}
}

// Execute persists the transition atomically
func (e *GormTransitionExecutor) Execute(ctx context.Context, tenant *tenancy.Tenant, entry *tenancy.StatusHistory) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tenant).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if tenant.Status == tenancy.TenantStatusBlocked {
			return e.finalizeActiveLeases(tx, tenant, entry.Actor)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to execute status transition: %w", err)
	}
	return nil
}

// finalizeActiveLeases closes every active lease of a blocked tenant as of
// today and re-derives availability for the apartments they occupied
func (e *GormTransitionExecutor) finalizeActiveLeases(tx *gorm.DB, tenant *tenancy.Tenant, actor string) error {
	var leases []leasing.Lease
	err := tx.Where("tenant_id = ? AND active = ?", tenant.ID, true).
		Find(&leases).Error
	if err != nil {
		return err
	}

	today := time.Now().Truncate(24 * time.Hour)
	for i := range leases {
		lease := &leases[i]
		if err := lease.Finalize(today); err != nil {
			return err
		}
		lease.UpdatedBy = actor
		if err := tx.Save(lease).Error; err != nil {
			return err
		}
		history := leasing.NewLeaseHistory(lease, leasing.HistoryEventFinalized, actor)
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		if err := syncApartmentAvailability(tx, lease.ApartmentID); err != nil {
			return err
		}
	}
	return nil
}
