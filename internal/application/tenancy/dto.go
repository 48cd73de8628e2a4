package tenancy

import (
	"time"

	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

// =============================================================================
// Tenant DTOs
// =============================================================================

// RegisterTenantRequest represents a request to register a new tenant.
// Kind selects the document validation: PF expects a CPF, PJ a CNPJ.
type RegisterTenantRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=PF PJ"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Document string `json:"document" binding:"required,min=11,max=18"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=20"`
	Notes    string `json:"notes"`
}

// UpdateTenantRequest represents a request to update a tenant's profile.
// The document and kind are immutable after registration.
type UpdateTenantRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email *string `json:"email" binding:"omitempty,email,max=200"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
	Notes *string `json:"notes"`
}

// TransitionTenantRequest represents a request to change a tenant's status
type TransitionTenantRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE INACTIVE DELINQUENT BLOCKED"`
	Reason string `json:"reason" binding:"max=500"`
	Actor  string `json:"-"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID                uuid.UUID `json:"id"`
	Kind              string    `json:"kind"`
	Document          string    `json:"document"`
	FormattedDocument string    `json:"formatted_document"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Status            string    `json:"status"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Version           int       `json:"version"`
}

// TenantListResponse represents a list item for tenants. The document is
// masked in listings.
type TenantListResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Document  string    `json:"document"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantListFilter represents filter options for tenant list
type TenantListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE DELINQUENT BLOCKED"`
	Kind     string `form:"kind" binding:"omitempty,oneof=PF PJ"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StatusHistoryResponse represents a status transition log entry
type StatusHistoryResponse struct {
	ID             uuid.UUID `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Reason         string    `json:"reason"`
	ReasonCategory string    `json:"reason_category"`
	Actor          string    `json:"actor"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToTenantResponse converts a domain tenant to a response DTO
func ToTenantResponse(tenant *tenancy.Tenant) TenantResponse {
	return TenantResponse{
		ID:                tenant.ID,
		Kind:              string(tenant.Kind),
		Document:          tenant.Document,
		FormattedDocument: tenant.FormattedDocument(),
		Name:              tenant.Name,
		Email:             tenant.Email,
		Phone:             tenant.Phone,
		Status:            string(tenant.Status),
		Notes:             tenant.Notes,
		CreatedAt:         tenant.CreatedAt,
		UpdatedAt:         tenant.UpdatedAt,
		Version:           tenant.Version,
	}
}

// ToTenantListResponses converts domain tenants to list DTOs
func ToTenantListResponses(tenants []tenancy.Tenant) []TenantListResponse {
	responses := make([]TenantListResponse, len(tenants))
	for i := range tenants {
		t := &tenants[i]
		responses[i] = TenantListResponse{
			ID:        t.ID,
			Kind:      string(t.Kind),
			Document:  tenancy.MaskDocument(t.Document),
			Name:      t.Name,
			Email:     t.Email,
			Status:    string(t.Status),
			CreatedAt: t.CreatedAt,
		}
	}
	return responses
}

// ToStatusHistoryResponses converts history entries to DTOs
func ToStatusHistoryResponses(entries []tenancy.StatusHistory) []StatusHistoryResponse {
	responses := make([]StatusHistoryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = StatusHistoryResponse{
			ID:             e.ID,
			TenantID:       e.TenantID,
			PreviousStatus: string(e.PreviousStatus),
			NewStatus:      string(e.NewStatus),
			Reason:         e.Reason,
			ReasonCategory: string(e.ReasonCategory),
			Actor:          e.Actor,
			CreatedAt:      e.CreatedAt,
		}
	}
	return responses
}

// =============================================================================
// Status rule DTOs
// =============================================================================

// CreateStatusRuleRequest represents a request to create a status rule
type CreateStatusRuleRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Description   string `json:"description"`
	Criterion     string `json:"criterion" binding:"required,oneof=DAYS_WITHOUT_PAYMENT DAYS_INACTIVE"`
	ThresholdDays int    `json:"threshold_days" binding:"required,min=1"`
	TargetStatus  string `json:"target_status" binding:"required,oneof=ACTIVE INACTIVE DELINQUENT BLOCKED"`
	Automatic     bool   `json:"automatic"`
}

// UpdateStatusRuleRequest represents a request to update a status rule
type UpdateStatusRuleRequest struct {
	ThresholdDays *int  `json:"threshold_days" binding:"omitempty,min=1"`
	Enabled       *bool `json:"enabled"`
	Automatic     *bool `json:"automatic"`
}

// StatusRuleResponse represents a status rule in API responses
type StatusRuleResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Criterion     string    `json:"criterion"`
	ThresholdDays int       `json:"threshold_days"`
	TargetStatus  string    `json:"target_status"`
	Enabled       bool      `json:"enabled"`
	Automatic     bool      `json:"automatic"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SweepResult summarizes one automatic rule sweep
type SweepResult struct {
	Evaluated    int `json:"evaluated"`
	Transitioned int `json:"transitioned"`
	Failed       int `json:"failed"`
}

// ToStatusRuleResponse converts a domain rule to a response DTO
func ToStatusRuleResponse(rule *tenancy.StatusRule) StatusRuleResponse {
	return StatusRuleResponse{
		ID:            rule.ID,
		Name:          rule.Name,
		Description:   rule.Description,
		Criterion:     string(rule.Criterion),
		ThresholdDays: rule.ThresholdDays,
		TargetStatus:  string(rule.TargetStatus),
		Enabled:       rule.Enabled,
		Automatic:     rule.Automatic,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}
}

// ToStatusRuleResponses converts domain rules to response DTOs
func ToStatusRuleResponses(rules []tenancy.StatusRule) []StatusRuleResponse {
	responses := make([]StatusRuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToStatusRuleResponse(&rules[i])
	}
	return responses
}
