package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeaseRepository implements leasing.LeaseRepository using GORM.
//
// Every mutating operation runs inside a transaction that also writes the
// lease history entry and re-derives the availability of the affected
// apartment(s) from the remaining active leases. The partial unique index
// on active leases per apartment is the last line of defense against two
// concurrent writers slipping past application-level validation; its
// violation is translated to gorm.ErrDuplicatedKey by the driver and to
// the overlap domain error here.
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GORM lease repository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.Lease, error) {
	var lease leasing.Lease
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find lease: %w", err)
	}
	return &lease, nil
}

// FindAll finds all leases matching the filter
func (r *GormLeaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]leasing.Lease, error) {
	var leases []leasing.Lease
	query := r.db.WithContext(ctx).Model(&leasing.Lease{})
	query = r.applyFilter(query, filter)
	if err := query.Find(&leases).Error; err != nil {
		return nil, fmt.Errorf("failed to find leases: %w", err)
	}
	return leases, nil
}

// FindByApartment finds leases on the given apartment
func (r *GormLeaseRepository) FindByApartment(ctx context.Context, apartmentID uuid.UUID, filter shared.Filter) ([]leasing.Lease, error) {
	var leases []leasing.Lease
	query := r.db.WithContext(ctx).Model(&leasing.Lease{}).Where("apartment_id = ?", apartmentID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&leases).Error; err != nil {
		return nil, fmt.Errorf("failed to find leases by apartment: %w", err)
	}
	return leases, nil
}

// FindByTenant finds leases held by the given tenant
func (r *GormLeaseRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]leasing.Lease, error) {
	var leases []leasing.Lease
	query := r.db.WithContext(ctx).Model(&leasing.Lease{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&leases).Error; err != nil {
		return nil, fmt.Errorf("failed to find leases by tenant: %w", err)
	}
	return leases, nil
}

// FindActiveByApartment finds active leases on the given apartment
func (r *GormLeaseRepository) FindActiveByApartment(ctx context.Context, apartmentID uuid.UUID) ([]leasing.Lease, error) {
	var leases []leasing.Lease
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND active = ?", apartmentID, true).
		Order("start_date ASC").
		Find(&leases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active leases by apartment: %w", err)
	}
	return leases, nil
}

// FindActiveByTenant finds active leases held by the given tenant
func (r *GormLeaseRepository) FindActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]leasing.Lease, error) {
	var leases []leasing.Lease
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("start_date ASC").
		Find(&leases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active leases by tenant: %w", err)
	}
	return leases, nil
}

// Count counts leases matching the filter
func (r *GormLeaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&leasing.Lease{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count leases: %w", err)
	}
	return count, nil
}

// CountOccupiedApartments counts apartments with a lease whose period
// covers the given date
func (r *GormLeaseRepository) CountOccupiedApartments(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	day := asOf.Truncate(24 * time.Hour)
	err := r.db.WithContext(ctx).Model(&leasing.Lease{}).
		Distinct("apartment_id").
		Where("active = ? AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)", true, day, day).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count occupied apartments: %w", err)
	}
	return count, nil
}

// Create inserts the lease and its initial history entry, then re-derives
// the apartment's availability, all in one transaction
func (r *GormLeaseRepository) Create(ctx context.Context, lease *leasing.Lease, entry *leasing.LeaseHistory) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lease).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return syncApartmentAvailability(tx, lease.ApartmentID)
	})
	return translateLeaseWriteError(err, "create")
}

// Update saves the lease, appends the history entry and re-derives
// availability for the current apartment and, when the lease moved, the
// previous one as well
func (r *GormLeaseRepository) Update(ctx context.Context, lease *leasing.Lease, entry *leasing.LeaseHistory, previousApartmentID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lease).Error; err != nil {
			return err
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if err := syncApartmentAvailability(tx, lease.ApartmentID); err != nil {
			return err
		}
		if previousApartmentID != uuid.Nil && previousApartmentID != lease.ApartmentID {
			return syncApartmentAvailability(tx, previousApartmentID)
		}
		return nil
	})
	return translateLeaseWriteError(err, "update")
}

// Delete removes the lease and its history, then re-derives availability
// for the apartment it occupied
func (r *GormLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lease leasing.Lease
		if err := tx.Where("id = ?", id).First(&lease).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := tx.Where("lease_id = ?", id).Delete(&leasing.LeaseHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&leasing.Lease{}).Error; err != nil {
			return err
		}
		return syncApartmentAvailability(tx, lease.ApartmentID)
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		return fmt.Errorf("failed to delete lease: %w", err)
	}
	return nil
}

// syncApartmentAvailability re-derives the apartment's availability flag
// from its remaining active leases inside the caller's transaction
func syncApartmentAvailability(tx *gorm.DB, apartmentID uuid.UUID) error {
	var apartment property.Apartment
	if err := tx.Where("id = ?", apartmentID).First(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}

	var activeCount int64
	err := tx.Model(&leasing.Lease{}).
		Where("apartment_id = ? AND active = ?", apartmentID, true).
		Count(&activeCount).Error
	if err != nil {
		return err
	}

	if apartment.SyncAvailability(activeCount > 0) {
		return tx.Save(&apartment).Error
	}
	return nil
}

// translateLeaseWriteError maps a unique violation of the active-lease
// index to the already-exists sentinel so the application layer can
// surface it as an overlap
func translateLeaseWriteError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	if errors.Is(err, shared.ErrNotFound) {
		return shared.ErrNotFound
	}
	return fmt.Errorf("failed to %s lease: %w", op, err)
}

// applyFilter applies filter options including pagination to the query
func (r *GormLeaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeaseSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}

// applyFilterWithoutPagination applies field filters only
func (r *GormLeaseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "apartment_id":
			query = query.Where("apartment_id = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		case "starts_after":
			query = query.Where("start_date >= ?", value)
		case "ends_before":
			query = query.Where("end_date IS NOT NULL AND end_date <= ?", value)
		}
	}
	return query
}
