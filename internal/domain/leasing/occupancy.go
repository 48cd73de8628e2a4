package leasing

import (
	"fmt"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

// MaxFutureStartDays bounds how far in the future a lease may start,
// guarding against data-entry errors and speculative bookings.
const MaxFutureStartDays = 365

// Typed occupancy errors
var (
	ErrInvalidPeriod         = shared.NewDomainError("INVALID_PERIOD", "Lease start date must be on or before the end date")
	ErrStartTooFarInFuture   = shared.NewDomainError("START_TOO_FAR_IN_FUTURE", "Lease start date cannot be more than 1 year in the future")
	ErrTenantBlocked         = shared.NewDomainError("TENANT_BLOCKED", "A blocked tenant cannot be attached to a lease")
	ErrLeaseAlreadyFinalized = shared.NewDomainError("LEASE_ALREADY_FINALIZED", "Lease has already been finalized")
	ErrOverlappingLease      = shared.NewDomainError("OVERLAPPING_LEASE", "Period conflicts with an active lease on the same apartment")
)

// NewOverlappingLeaseError builds the typed error for an interval conflict,
// naming the lease that blocks the candidate.
func NewOverlappingLeaseError(conflictingID uuid.UUID) *shared.DomainError {
	return shared.NewDomainError("OVERLAPPING_LEASE",
		fmt.Sprintf("Period conflicts with active lease %s on the same apartment", conflictingID))
}

// ValidateOccupancy decides whether a candidate lease may be persisted.
// It runs on create and on update (the candidate's own ID is excluded from
// the overlap scan) and is idempotent: validating unchanged state always
// yields the same result.
//
// This in-application check is the user-friendly fast path; the partial
// unique index on active leases remains the authority of record under
// concurrent commits.
func ValidateOccupancy(candidate *Lease, tenantStatus tenancy.TenantStatus, existing []Lease, today time.Time) error {
	today = truncateToDate(today)

	if candidate.EndDate != nil && candidate.EndDate.Before(candidate.StartDate) {
		return ErrInvalidPeriod
	}

	if candidate.StartDate.After(today.AddDate(0, 0, MaxFutureStartDays)) {
		return ErrStartTooFarInFuture
	}

	if tenantStatus == tenancy.TenantStatusBlocked {
		return ErrTenantBlocked
	}

	// Inactive candidates occupy nothing; historical records may coexist.
	if !candidate.Active {
		return nil
	}

	// The apartment admits at most one active lease, mirroring the partial
	// unique index on active rows. A disjoint period does not exempt a
	// second active lease: open-ended or bounded, it conflicts with the
	// lease already holding the apartment.
	for i := range existing {
		other := &existing[i]
		if other.ID == candidate.ID || !other.Active || other.ApartmentID != candidate.ApartmentID {
			continue
		}
		return NewOverlappingLeaseError(other.ID)
	}

	return nil
}
