package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements tenancy.StatusHistoryRepository
// using GORM. The table is append-only: entries are never updated.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GORM status history repository
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// FindByTenant finds status history entries for a tenant
func (r *GormStatusHistoryRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]tenancy.StatusHistory, error) {
	var entries []tenancy.StatusHistory
	query := r.db.WithContext(ctx).Model(&tenancy.StatusHistory{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find status history: %w", err)
	}
	return entries, nil
}

// FindSince finds all entries recorded at or after the given time
func (r *GormStatusHistoryRepository) FindSince(ctx context.Context, since time.Time) ([]tenancy.StatusHistory, error) {
	var entries []tenancy.StatusHistory
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find status history since %s: %w", since.Format(time.RFC3339), err)
	}
	return entries, nil
}

// Append inserts a new history entry
func (r *GormStatusHistoryRepository) Append(ctx context.Context, entry *tenancy.StatusHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	return nil
}

// Count counts history entries matching the filter
func (r *GormStatusHistoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&tenancy.StatusHistory{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count status history: %w", err)
	}
	return count, nil
}

// DeleteOlderThan removes entries recorded before the cutoff and returns
// the number of rows purged
func (r *GormStatusHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&tenancy.StatusHistory{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge status history: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options including pagination to the query
func (r *GormStatusHistoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StatusHistorySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}

// applyFilterWithoutPagination applies field filters only
func (r *GormStatusHistoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		case "new_status":
			query = query.Where("new_status = ?", value)
		case "reason_category":
			query = query.Where("reason_category = ?", value)
		}
	}
	return query
}
