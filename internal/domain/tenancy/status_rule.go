package tenancy

import (
	"time"

	"github.com/aptos/backend/internal/domain/shared"
)

// RuleCriterion identifies the condition a status rule evaluates
type RuleCriterion string

const (
	CriterionDaysWithoutPayment RuleCriterion = "DAYS_WITHOUT_PAYMENT"
	CriterionDaysInactive       RuleCriterion = "DAYS_INACTIVE"
)

// StatusRule is a data-driven rule that moves tenants to a target status
// when its criterion is met. Rules are configuration, not code; the
// scheduler sweep evaluates active automatic rules and applies the target
// status through the regular transition operation.
type StatusRule struct {
	shared.BaseAggregateRoot
	Name         string        `gorm:"type:varchar(100);not null"`
	Description  string        `gorm:"type:text"`
	Criterion    RuleCriterion `gorm:"type:varchar(40);not null"`
	ThresholdDays int          `gorm:"not null"`
	TargetStatus TenantStatus  `gorm:"type:varchar(20);not null"`
	Enabled      bool          `gorm:"not null;default:true"`
	Automatic    bool          `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (StatusRule) TableName() string {
	return "tenant_status_rules"
}

// NewStatusRule creates a new status rule
func NewStatusRule(name string, criterion RuleCriterion, thresholdDays int, target TenantStatus) (*StatusRule, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Rule name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Rule name cannot exceed 100 characters")
	}
	if err := validateRuleCriterion(criterion); err != nil {
		return nil, err
	}
	if thresholdDays <= 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Threshold must be a positive number of days")
	}
	if err := validateTenantStatus(target); err != nil {
		return nil, err
	}

	return &StatusRule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Criterion:         criterion,
		ThresholdDays:     thresholdDays,
		TargetStatus:      target,
		Enabled:           true,
	}, nil
}

// SetAutomatic toggles whether the scheduler applies this rule without review
func (r *StatusRule) SetAutomatic(automatic bool) {
	r.Automatic = automatic
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Enable activates the rule
func (r *StatusRule) Enable() {
	r.Enabled = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Disable deactivates the rule without deleting it
func (r *StatusRule) Disable() {
	r.Enabled = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Matches evaluates the rule against a tenant. referenceDate is the date the
// criterion clock started for this tenant (last payment, last activity);
// callers resolve it from the relevant collaborator.
func (r *StatusRule) Matches(tenant *Tenant, referenceDate time.Time, now time.Time) bool {
	if !r.Enabled {
		return false
	}
	// A rule never re-applies its own target, and transitions must stay legal.
	if tenant.Status == r.TargetStatus || !tenant.CanTransitionTo(r.TargetStatus) {
		return false
	}
	if referenceDate.IsZero() {
		return false
	}

	elapsed := int(now.Sub(referenceDate).Hours() / 24)
	return elapsed >= r.ThresholdDays
}

func validateRuleCriterion(criterion RuleCriterion) error {
	switch criterion {
	case CriterionDaysWithoutPayment, CriterionDaysInactive:
		return nil
	default:
		return shared.NewDomainError("INVALID_CRITERION", "Unknown rule criterion")
	}
}
