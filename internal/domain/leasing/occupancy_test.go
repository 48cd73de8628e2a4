package leasing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
)

func mustLease(t *testing.T, apartmentID uuid.UUID, start time.Time, end *time.Time) *Lease {
	t.Helper()
	lease, err := NewLease(uuid.New(), apartmentID, start, end, nil)
	require.NoError(t, err)
	return lease
}

func TestValidateOccupancy(t *testing.T) {
	today := date(2024, 6, 1)
	apartmentID := uuid.New()

	t.Run("accepts candidate on an empty apartment", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, date(2024, 6, 10), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, nil, today)

		assert.NoError(t, err)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, date(2024, 6, 10), datePtr(2024, 6, 1))

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, nil, today)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("accepts single-day lease", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, date(2024, 6, 10), datePtr(2024, 6, 10))

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, nil, today)

		assert.NoError(t, err)
	})

	t.Run("rejects start more than a year ahead", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, today.AddDate(0, 0, MaxFutureStartDays+1), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, nil, today)

		assert.ErrorIs(t, err, ErrStartTooFarInFuture)
	})

	t.Run("accepts start exactly at the future bound", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, today.AddDate(0, 0, MaxFutureStartDays), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, nil, today)

		assert.NoError(t, err)
	})

	t.Run("rejects blocked tenant", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, date(2024, 6, 10), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusBlocked, nil, today)

		assert.ErrorIs(t, err, ErrTenantBlocked)
	})

	t.Run("accepts delinquent tenant", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, date(2024, 6, 10), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusDelinquent, nil, today)

		assert.NoError(t, err)
	})
}

func TestValidateOccupancyOverlap(t *testing.T) {
	today := date(2024, 6, 1)
	apartmentID := uuid.New()

	t.Run("rejects overlap with bounded active lease", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), datePtr(2024, 12, 31))
		candidate := mustLease(t, apartmentID, date(2024, 7, 1), datePtr(2025, 6, 30))

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERLAPPING_LEASE", domainErr.Code)
		assert.Contains(t, domainErr.Message, existing.ID.String())
	})

	t.Run("bounded active lease blocks later candidates until finalized", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), datePtr(2024, 6, 30))
		candidate := mustLease(t, apartmentID, date(2024, 7, 1), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERLAPPING_LEASE", domainErr.Code)
		assert.Contains(t, domainErr.Message, existing.ID.String())
	})

	t.Run("rejects candidate starting the day a bounded lease ends", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), datePtr(2024, 6, 30))
		candidate := mustLease(t, apartmentID, date(2024, 6, 30), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		assert.Error(t, err)
	})

	t.Run("open-ended lease blocks later candidates", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), nil)
		candidate := mustLease(t, apartmentID, date(2024, 8, 1), datePtr(2024, 12, 31))

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		assert.Error(t, err)
	})

	t.Run("disjoint periods still conflict while both leases are active", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 9, 1), nil)
		candidate := mustLease(t, apartmentID, date(2024, 6, 1), datePtr(2024, 8, 15))

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Message, existing.ID.String())
	})

	t.Run("two open-ended leases on the same apartment always conflict", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2030, 1, 1), nil)
		candidate := mustLease(t, apartmentID, date(2024, 6, 1), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, date(2029, 6, 1))

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERLAPPING_LEASE", domainErr.Code)
	})

	t.Run("ignores inactive leases", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), nil)
		require.NoError(t, existing.Finalize(date(2024, 5, 31)))
		candidate := mustLease(t, apartmentID, date(2024, 6, 1), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		assert.NoError(t, err)
	})

	t.Run("ignores leases on other apartments", func(t *testing.T) {
		existing := mustLease(t, uuid.New(), date(2024, 1, 1), nil)
		candidate := mustLease(t, apartmentID, date(2024, 6, 1), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		assert.NoError(t, err)
	})

	t.Run("candidate never conflicts with itself on update", func(t *testing.T) {
		candidate := mustLease(t, apartmentID, date(2024, 1, 1), nil)

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*candidate}, today)

		assert.NoError(t, err)
	})

	t.Run("validation is idempotent over unchanged state", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), nil)
		candidate := mustLease(t, apartmentID, date(2024, 6, 1), nil)
		snapshot := []Lease{*existing}

		first := ValidateOccupancy(candidate, tenancy.TenantStatusActive, snapshot, today)
		second := ValidateOccupancy(candidate, tenancy.TenantStatusActive, snapshot, today)

		assert.Equal(t, first, second)
	})

	t.Run("inactive candidate may coexist with anything", func(t *testing.T) {
		existing := mustLease(t, apartmentID, date(2024, 1, 1), nil)
		candidate := mustLease(t, apartmentID, date(2024, 6, 1), nil)
		require.NoError(t, candidate.Finalize(date(2024, 7, 1)))

		err := ValidateOccupancy(candidate, tenancy.TenantStatusActive, []Lease{*existing}, today)

		assert.NoError(t, err)
	})
}
