package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantRepository implements tenancy.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GORM tenant repository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	var tenant tenancy.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return &tenant, nil
}

// FindByDocument finds a tenant by document. The document must already be
// normalized to digits only.
func (r *GormTenantRepository) FindByDocument(ctx context.Context, document string) (*tenancy.Tenant, error) {
	var tenant tenancy.Tenant
	err := r.db.WithContext(ctx).Where("document = ?", document).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tenant by document: %w", err)
	}
	return &tenant, nil
}

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.Tenant, error) {
	var tenants []tenancy.Tenant
	query := r.db.WithContext(ctx).Model(&tenancy.Tenant{})
	query = r.applyFilter(query, filter)
	if err := query.Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to find tenants: %w", err)
	}
	return tenants, nil
}

// FindByStatus finds tenants with the given status
func (r *GormTenantRepository) FindByStatus(ctx context.Context, status tenancy.TenantStatus, filter shared.Filter) ([]tenancy.Tenant, error) {
	var tenants []tenancy.Tenant
	query := r.db.WithContext(ctx).Model(&tenancy.Tenant{}).Where("status = ?", status)
	query = r.applyFilter(query, filter)
	if err := query.Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to find tenants by status: %w", err)
	}
	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	if err := r.db.WithContext(ctx).Save(tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save tenant: %w", err)
	}
	return nil
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&tenancy.Tenant{})
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

// CountByStatus counts tenants with the given status
func (r *GormTenantRepository) CountByStatus(ctx context.Context, status tenancy.TenantStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&tenancy.Tenant{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tenants by status: %w", err)
	}
	return count, nil
}

// CountByKind counts tenants of the given kind
func (r *GormTenantRepository) CountByKind(ctx context.Context, kind tenancy.TenantKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&tenancy.Tenant{}).
		Where("kind = ?", kind).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tenants by kind: %w", err)
	}
	return count, nil
}

// ExistsByDocument checks whether a tenant with the document already exists
func (r *GormTenantRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&tenancy.Tenant{}).
		Where("document = ?", document).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check tenant existence: %w", err)
	}
	return count > 0, nil
}

// applyFilter applies filter options including pagination to the query
func (r *GormTenantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	return query
}

// applyFilterWithoutPagination applies search and field filters only
func (r *GormTenantRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR document LIKE ? OR LOWER(email) LIKE LOWER(?)", search, search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		}
	}

	return query
}
