package persistence

import (
	"context"
	"fmt"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLeaseHistoryRepository implements leasing.LeaseHistoryRepository
// using GORM. Entries are written exclusively through the transactional
// lease repository operations; this repository only reads.
type GormLeaseHistoryRepository struct {
	db *gorm.DB
}

// NewGormLeaseHistoryRepository creates a new GORM lease history repository
func NewGormLeaseHistoryRepository(db *gorm.DB) *GormLeaseHistoryRepository {
	return &GormLeaseHistoryRepository{db: db}
}

// FindByLease finds history entries for a lease
func (r *GormLeaseHistoryRepository) FindByLease(ctx context.Context, leaseID uuid.UUID, filter shared.Filter) ([]leasing.LeaseHistory, error) {
	var entries []leasing.LeaseHistory
	query := r.db.WithContext(ctx).Model(&leasing.LeaseHistory{}).Where("lease_id = ?", leaseID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find lease history: %w", err)
	}
	return entries, nil
}

// FindByApartment finds history entries across all leases of an apartment
func (r *GormLeaseHistoryRepository) FindByApartment(ctx context.Context, apartmentID uuid.UUID, filter shared.Filter) ([]leasing.LeaseHistory, error) {
	var entries []leasing.LeaseHistory
	query := r.db.WithContext(ctx).Model(&leasing.LeaseHistory{}).Where("apartment_id = ?", apartmentID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find lease history by apartment: %w", err)
	}
	return entries, nil
}

// Count counts history entries matching the filter
func (r *GormLeaseHistoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&leasing.LeaseHistory{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count lease history: %w", err)
	}
	return count, nil
}

// applyFilter applies filter options including pagination to the query
func (r *GormLeaseHistoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LeaseHistorySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}

// applyFilterWithoutPagination applies field filters only
func (r *GormLeaseHistoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "lease_id":
			query = query.Where("lease_id = ?", value)
		case "apartment_id":
			query = query.Where("apartment_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "event":
			query = query.Where("event = ?", value)
		}
	}
	return query
}
