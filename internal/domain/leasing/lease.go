package leasing

import (
	"math"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lease associates a tenant with an apartment for a period of time. It is
// the sole source of truth for occupancy: Apartment.IsAvailable is a
// projection of the set of active leases, never written directly.
type Lease struct {
	shared.BaseAggregateRoot
	TenantID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	ApartmentID uuid.UUID        `gorm:"type:uuid;not null;index"`
	StartDate   time.Time        `gorm:"type:date;not null"`
	EndDate     *time.Time       `gorm:"type:date"`
	Rent        *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Active      bool             `gorm:"not null;default:true"`
	Notes       string           `gorm:"type:text"`
	CreatedBy   string           `gorm:"type:varchar(150)"`
	UpdatedBy   string           `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (Lease) TableName() string {
	return "leases"
}

// NewLease creates a new active lease draft. Occupancy validation happens
// separately through ValidateOccupancy before the lease is persisted.
func NewLease(tenantID, apartmentID uuid.UUID, startDate time.Time, endDate *time.Time, rent *decimal.Decimal) (*Lease, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Lease must reference a tenant")
	}
	if apartmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APARTMENT", "Lease must reference an apartment")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Lease start date is required")
	}
	if rent != nil && rent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent cannot be negative")
	}

	lease := &Lease{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		ApartmentID:       apartmentID,
		StartDate:         truncateToDate(startDate),
		Active:            true,
	}
	if endDate != nil {
		d := truncateToDate(*endDate)
		lease.EndDate = &d
	}
	if rent != nil {
		r := *rent
		lease.Rent = &r
	}

	lease.AddDomainEvent(NewLeaseCreatedEvent(lease))

	return lease, nil
}

// ChangePeriod updates the lease period. The merged result must be
// re-validated through ValidateOccupancy before persisting.
func (l *Lease) ChangePeriod(startDate time.Time, endDate *time.Time) error {
	if startDate.IsZero() {
		return shared.NewDomainError("INVALID_PERIOD", "Lease start date is required")
	}

	l.StartDate = truncateToDate(startDate)
	if endDate != nil {
		d := truncateToDate(*endDate)
		l.EndDate = &d
	} else {
		l.EndDate = nil
	}
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeaseUpdatedEvent(l))

	return nil
}

// SetRent sets the agreed monthly rent
func (l *Lease) SetRent(rent *decimal.Decimal) error {
	if rent != nil && rent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Rent cannot be negative")
	}

	if rent != nil {
		r := *rent
		l.Rent = &r
	} else {
		l.Rent = nil
	}
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetNotes sets free-text notes on the lease
func (l *Lease) SetNotes(notes string) {
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// Finalize closes the lease: the active flag drops and the end date is set.
// When endDate is zero the current date is used, unless an end date is
// already recorded. Finalizing a lease that is already inactive returns
// ErrLeaseAlreadyFinalized; callers may treat it as a benign conflict.
func (l *Lease) Finalize(endDate time.Time) error {
	if !l.Active {
		return ErrLeaseAlreadyFinalized
	}

	if !endDate.IsZero() {
		d := truncateToDate(endDate)
		l.EndDate = &d
	} else if l.EndDate == nil {
		d := truncateToDate(time.Now())
		l.EndDate = &d
	}

	l.Active = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeaseFinalizedEvent(l))

	return nil
}

// Reactivate puts a finalized lease back in force. The merged result must
// pass ValidateOccupancy again before persisting.
func (l *Lease) Reactivate() error {
	if l.Active {
		return shared.NewDomainError("LEASE_ALREADY_ACTIVE", "Lease is already active")
	}

	l.Active = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeaseReactivatedEvent(l))

	return nil
}

// DurationDays returns the lease length in whole days as of the given date.
// Open-ended leases are measured up to asOf.
func (l *Lease) DurationDays(asOf time.Time) int {
	end := truncateToDate(asOf)
	if l.EndDate != nil {
		end = *l.EndDate
	}
	days := int(end.Sub(truncateToDate(l.StartDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DurationMonths returns the approximate lease length in months (average
// month of 30.44 days), rounded to one decimal place.
func (l *Lease) DurationMonths(asOf time.Time) float64 {
	months := float64(l.DurationDays(asOf)) / 30.44
	return math.Round(months*10) / 10
}

// IsCurrentlyActive reports whether the lease is in force on the given
// date: flagged active, already started, and not yet ended.
func (l *Lease) IsCurrentlyActive(asOf time.Time) bool {
	if !l.Active {
		return false
	}
	today := truncateToDate(asOf)
	if l.StartDate.After(today) {
		return false
	}
	if l.EndDate != nil && l.EndDate.Before(today) {
		return false
	}
	return true
}

// truncateToDate drops the time-of-day component, keeping UTC calendar dates
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
