package tenancy

import (
	"context"
	"fmt"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReferenceDateResolver resolves the date a rule criterion's clock started
// for a tenant: the last recorded payment for DAYS_WITHOUT_PAYMENT, the
// last observed activity for DAYS_INACTIVE. A zero time means the clock
// never started and the rule does not apply.
type ReferenceDateResolver interface {
	Resolve(ctx context.Context, tenant *tenancy.Tenant, criterion tenancy.RuleCriterion) (time.Time, error)
}

// StatusRuleService manages status rules and runs the automatic sweep that
// applies them to tenants.
type StatusRuleService struct {
	ruleRepo   tenancy.StatusRuleRepository
	tenantRepo tenancy.TenantRepository
	executor   tenancy.TransitionExecutor
	resolver   ReferenceDateResolver
	logger     *zap.Logger
}

// NewStatusRuleService creates a new StatusRuleService
func NewStatusRuleService(
	ruleRepo tenancy.StatusRuleRepository,
	tenantRepo tenancy.TenantRepository,
	executor tenancy.TransitionExecutor,
	resolver ReferenceDateResolver,
	logger *zap.Logger,
) *StatusRuleService {
	return &StatusRuleService{
		ruleRepo:   ruleRepo,
		tenantRepo: tenantRepo,
		executor:   executor,
		resolver:   resolver,
		logger:     logger,
	}
}

// Create creates a new status rule
func (s *StatusRuleService) Create(ctx context.Context, req CreateStatusRuleRequest) (*StatusRuleResponse, error) {
	rule, err := tenancy.NewStatusRule(req.Name, tenancy.RuleCriterion(req.Criterion), req.ThresholdDays, tenancy.TenantStatus(req.TargetStatus))
	if err != nil {
		return nil, err
	}

	rule.Description = req.Description
	if req.Automatic {
		rule.SetAutomatic(true)
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	response := ToStatusRuleResponse(rule)
	return &response, nil
}

// GetByID retrieves a status rule by ID
func (s *StatusRuleService) GetByID(ctx context.Context, ruleID uuid.UUID) (*StatusRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	response := ToStatusRuleResponse(rule)
	return &response, nil
}

// List retrieves all status rules
func (s *StatusRuleService) List(ctx context.Context, filter shared.Filter) ([]StatusRuleResponse, error) {
	rules, err := s.ruleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToStatusRuleResponses(rules), nil
}

// Update updates a status rule's threshold and flags
func (s *StatusRuleService) Update(ctx context.Context, ruleID uuid.UUID, req UpdateStatusRuleRequest) (*StatusRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	if req.ThresholdDays != nil {
		if *req.ThresholdDays <= 0 {
			return nil, shared.NewDomainError("INVALID_THRESHOLD", "Threshold must be a positive number of days")
		}
		rule.ThresholdDays = *req.ThresholdDays
		rule.IncrementVersion()
	}
	if req.Enabled != nil {
		if *req.Enabled {
			rule.Enable()
		} else {
			rule.Disable()
		}
	}
	if req.Automatic != nil {
		rule.SetAutomatic(*req.Automatic)
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	response := ToStatusRuleResponse(rule)
	return &response, nil
}

// Delete deletes a status rule
func (s *StatusRuleService) Delete(ctx context.Context, ruleID uuid.UUID) error {
	if _, err := s.ruleRepo.FindByID(ctx, ruleID); err != nil {
		return err
	}
	return s.ruleRepo.Delete(ctx, ruleID)
}

// ApplyAutomaticRules runs one sweep of the enabled automatic rules over
// the tenant base. Each matching tenant is transitioned through the regular
// atomic transition path with an AUTOMATIC history entry. A failure on one
// tenant is logged and counted without aborting the sweep.
func (s *StatusRuleService) ApplyAutomaticRules(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	rules, err := s.ruleRepo.FindAutomatic(ctx)
	if err != nil {
		return result, err
	}
	if len(rules) == 0 {
		return result, nil
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 500
	filter.OrderBy = "created_at"
	filter.OrderDir = "asc"

	for {
		tenants, err := s.tenantRepo.FindAll(ctx, filter)
		if err != nil {
			return result, err
		}
		if len(tenants) == 0 {
			return result, nil
		}

		for ti := range tenants {
			tenant := &tenants[ti]

			for ri := range rules {
				rule := &rules[ri]
				result.Evaluated++

				referenceDate, err := s.resolver.Resolve(ctx, tenant, rule.Criterion)
				if err != nil {
					result.Failed++
					s.logger.Warn("reference date resolution failed",
						zap.String("tenant_id", tenant.ID.String()),
						zap.String("rule", rule.Name),
						zap.Error(err))
					continue
				}

				if !rule.Matches(tenant, referenceDate, now) {
					continue
				}

				if err := s.applyRule(ctx, tenant, rule); err != nil {
					result.Failed++
					s.logger.Warn("automatic transition failed",
						zap.String("tenant_id", tenant.ID.String()),
						zap.String("rule", rule.Name),
						zap.Error(err))
					continue
				}

				result.Transitioned++
				// The tenant's status changed; re-evaluate remaining rules
				// against the new status in the next sweep, not this one.
				break
			}
		}

		if len(tenants) < filter.PageSize {
			return result, nil
		}
		filter.Page++
	}
}

func (s *StatusRuleService) applyRule(ctx context.Context, tenant *tenancy.Tenant, rule *tenancy.StatusRule) error {
	previous := tenant.Status
	if err := tenant.TransitionTo(rule.TargetStatus); err != nil {
		return err
	}

	reason := fmt.Sprintf("Rule %q: %s over %d days", rule.Name, rule.Criterion, rule.ThresholdDays)
	entry := tenancy.NewStatusHistory(tenant.ID, previous, rule.TargetStatus, reason, "scheduler", tenancy.ReasonCategoryAutomatic)

	return s.executor.Execute(ctx, tenant, entry)
}
