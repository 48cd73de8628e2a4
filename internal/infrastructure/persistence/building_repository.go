package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBuildingRepository implements property.BuildingRepository using GORM
type GormBuildingRepository struct {
	db *gorm.DB
}

// NewGormBuildingRepository creates a new GORM building repository
func NewGormBuildingRepository(db *gorm.DB) *GormBuildingRepository {
	return &GormBuildingRepository{db: db}
}

// FindByID finds a building by ID
func (r *GormBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Building, error) {
	var building property.Building
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&building).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find building: %w", err)
	}
	return &building, nil
}

// FindAll finds all buildings matching the filter
func (r *GormBuildingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Building, error) {
	var buildings []property.Building
	query := r.db.WithContext(ctx).Model(&property.Building{})
	query = r.applyFilter(query, filter)
	if err := query.Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("failed to find buildings: %w", err)
	}
	return buildings, nil
}

// Save creates or updates a building
func (r *GormBuildingRepository) Save(ctx context.Context, building *property.Building) error {
	if err := r.db.WithContext(ctx).Save(building).Error; err != nil {
		return fmt.Errorf("failed to save building: %w", err)
	}
	return nil
}

// Delete deletes a building by ID
func (r *GormBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&property.Building{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete building: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts buildings matching the filter
func (r *GormBuildingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&property.Building{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count buildings: %w", err)
	}
	return count, nil
}

// applyFilter applies filter options including pagination to the query
func (r *GormBuildingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BuildingSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}

// applyFilterWithoutPagination applies search and field filters only
func (r *GormBuildingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?)", search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "city":
			query = query.Where("city = ?", value)
		case "state":
			query = query.Where("state = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		}
	}

	return query
}
