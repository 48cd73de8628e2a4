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

// GormStatusRuleRepository implements tenancy.StatusRuleRepository using GORM
type GormStatusRuleRepository struct {
	db *gorm.DB
}

// NewGormStatusRuleRepository creates a new GORM status rule repository
func NewGormStatusRuleRepository(db *gorm.DB) *GormStatusRuleRepository {
	return &GormStatusRuleRepository{db: db}
}

// FindByID finds a status rule by ID
func (r *GormStatusRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.StatusRule, error) {
	var rule tenancy.StatusRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find status rule: %w", err)
	}
	return &rule, nil
}

// FindAll finds all status rules matching the filter
func (r *GormStatusRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenancy.StatusRule, error) {
	var rules []tenancy.StatusRule
	query := r.db.WithContext(ctx).Model(&tenancy.StatusRule{})

	for key, value := range filter.Filters {
		switch key {
		case "enabled":
			query = query.Where("enabled = ?", value)
		case "automatic":
			query = query.Where("automatic = ?", value)
		case "target_status":
			query = query.Where("target_status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, StatusRuleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if err := query.Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to find status rules: %w", err)
	}
	return rules, nil
}

// FindAutomatic finds enabled rules flagged for automatic application
func (r *GormStatusRuleRepository) FindAutomatic(ctx context.Context) ([]tenancy.StatusRule, error) {
	var rules []tenancy.StatusRule
	err := r.db.WithContext(ctx).
		Where("automatic = ? AND enabled = ?", true, true).
		Order("created_at ASC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find automatic status rules: %w", err)
	}
	return rules, nil
}

// Save creates or updates a status rule
func (r *GormStatusRuleRepository) Save(ctx context.Context, rule *tenancy.StatusRule) error {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return fmt.Errorf("failed to save status rule: %w", err)
	}
	return nil
}

// Delete deletes a status rule by ID
func (r *GormStatusRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&tenancy.StatusRule{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete status rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
