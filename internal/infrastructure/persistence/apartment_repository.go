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

// GormApartmentRepository implements property.ApartmentRepository using GORM
type GormApartmentRepository struct {
	db *gorm.DB
}

// NewGormApartmentRepository creates a new GORM apartment repository
func NewGormApartmentRepository(db *gorm.DB) *GormApartmentRepository {
	return &GormApartmentRepository{db: db}
}

// FindByID finds an apartment by ID
func (r *GormApartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Apartment, error) {
	var apartment property.Apartment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&apartment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find apartment: %w", err)
	}
	return &apartment, nil
}

// FindAll finds all apartments matching the filter
func (r *GormApartmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Apartment, error) {
	var apartments []property.Apartment
	query := r.db.WithContext(ctx).Model(&property.Apartment{})
	query = r.applyFilter(query, filter)
	if err := query.Find(&apartments).Error; err != nil {
		return nil, fmt.Errorf("failed to find apartments: %w", err)
	}
	return apartments, nil
}

// FindByBuilding finds apartments belonging to a building
func (r *GormApartmentRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID, filter shared.Filter) ([]property.Apartment, error) {
	var apartments []property.Apartment
	query := r.db.WithContext(ctx).Model(&property.Apartment{}).Where("building_id = ?", buildingID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&apartments).Error; err != nil {
		return nil, fmt.Errorf("failed to find apartments by building: %w", err)
	}
	return apartments, nil
}

// FindAvailable finds apartments currently marked available
func (r *GormApartmentRepository) FindAvailable(ctx context.Context, filter shared.Filter) ([]property.Apartment, error) {
	var apartments []property.Apartment
	query := r.db.WithContext(ctx).Model(&property.Apartment{}).Where("is_available = ?", true)
	query = r.applyFilter(query, filter)
	if err := query.Find(&apartments).Error; err != nil {
		return nil, fmt.Errorf("failed to find available apartments: %w", err)
	}
	return apartments, nil
}

// Save creates or updates an apartment
func (r *GormApartmentRepository) Save(ctx context.Context, apartment *property.Apartment) error {
	if err := r.db.WithContext(ctx).Save(apartment).Error; err != nil {
		return fmt.Errorf("failed to save apartment: %w", err)
	}
	return nil
}

// Delete deletes an apartment by ID
func (r *GormApartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&property.Apartment{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete apartment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts apartments matching the filter
func (r *GormApartmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&property.Apartment{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count apartments: %w", err)
	}
	return count, nil
}

// CountAvailable counts apartments currently marked available
func (r *GormApartmentRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&property.Apartment{}).
		Where("is_available = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count available apartments: %w", err)
	}
	return count, nil
}

// ExistsByUnitNumber checks whether a building already has a unit with the given number
func (r *GormApartmentRepository) ExistsByUnitNumber(ctx context.Context, buildingID uuid.UUID, unitNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&property.Apartment{}).
		Where("building_id = ? AND unit_number = ?", buildingID, unitNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check apartment existence: %w", err)
	}
	return count > 0, nil
}

// applyFilter applies filter options including pagination to the query
func (r *GormApartmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ApartmentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}

// applyFilterWithoutPagination applies search and field filters only
func (r *GormApartmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("LOWER(unit_number) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "building_id":
			query = query.Where("building_id = ?", value)
		case "is_available":
			query = query.Where("is_available = ?", value)
		case "is_furnished":
			query = query.Where("is_furnished = ?", value)
		case "is_pets_allowed":
			query = query.Where("is_pets_allowed = ?", value)
		case "bedrooms":
			query = query.Where("bedrooms = ?", value)
		case "min_bedrooms":
			query = query.Where("bedrooms >= ?", value)
		}
	}

	return query
}
