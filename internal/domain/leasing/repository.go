package leasing

import (
	"context"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeaseRepository defines the persistence interface for leases.
//
// Create, Update and Delete are transactional: the lease write, the history
// entry and the availability resync of the affected apartment(s) commit or
// roll back as one unit. A duplicated-key violation of the active-lease
// partial unique index surfaces as the OVERLAPPING_LEASE domain error.
type LeaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lease, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Lease, error)
	FindByApartment(ctx context.Context, apartmentID uuid.UUID, filter shared.Filter) ([]Lease, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Lease, error)
	FindActiveByApartment(ctx context.Context, apartmentID uuid.UUID) ([]Lease, error)
	FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]Lease, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountOccupiedApartments(ctx context.Context, asOf time.Time) (int64, error)

	Create(ctx context.Context, lease *Lease, entry *LeaseHistory) error
	// Update re-syncs availability for the lease's apartment; when the lease
	// moved between apartments previousApartmentID is re-synced as well
	// (pass uuid.Nil when unchanged).
	Update(ctx context.Context, lease *Lease, entry *LeaseHistory, previousApartmentID uuid.UUID) error
	// Delete removes the lease and re-derives availability for the
	// apartment captured before deletion.
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeaseHistoryRepository defines the read interface for the append-only
// lease lifecycle log. Entries are only ever written through the
// transactional LeaseRepository operations.
type LeaseHistoryRepository interface {
	FindByLease(ctx context.Context, leaseID uuid.UUID, filter shared.Filter) ([]LeaseHistory, error)
	FindByApartment(ctx context.Context, apartmentID uuid.UUID, filter shared.Filter) ([]LeaseHistory, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
