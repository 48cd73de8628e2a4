package tenancy

import (
	"fmt"
	"regexp"
	"time"

	"github.com/aptos/backend/internal/domain/shared"
)

// TenantStatus represents the lifecycle status of a tenant
type TenantStatus string

const (
	TenantStatusActive     TenantStatus = "ACTIVE"
	TenantStatusInactive   TenantStatus = "INACTIVE"
	TenantStatusDelinquent TenantStatus = "DELINQUENT"
	TenantStatusBlocked    TenantStatus = "BLOCKED"
)

// TenantKind distinguishes individual renters from legal entities
type TenantKind string

const (
	TenantKindIndividual  TenantKind = "PF" // Pessoa física
	TenantKindLegalEntity TenantKind = "PJ" // Pessoa jurídica
)

// allowedTransitions is the directed edge set of the status state machine.
// Self-transitions are not listed and therefore illegal.
var allowedTransitions = map[TenantStatus][]TenantStatus{
	TenantStatusActive:     {TenantStatusInactive, TenantStatusDelinquent, TenantStatusBlocked},
	TenantStatusInactive:   {TenantStatusActive},
	TenantStatusDelinquent: {TenantStatusActive, TenantStatusBlocked},
	TenantStatusBlocked:    {TenantStatusActive, TenantStatusInactive},
}

// Tenant represents a renter, either an individual (PF, identified by CPF)
// or a legal entity (PJ, identified by CNPJ). The document is stored
// digits-only and is unique across both kinds. Status is mutated only
// through TransitionTo; tenants are never hard-deleted in normal operation.
type Tenant struct {
	shared.BaseAggregateRoot
	Kind     TenantKind   `gorm:"type:varchar(2);not null"`
	Document string       `gorm:"type:varchar(14);not null;uniqueIndex:uniq_tenant_document"`
	Name     string       `gorm:"type:varchar(200);not null"`
	Email    string       `gorm:"type:varchar(200);index"`
	Phone    string       `gorm:"type:varchar(20)"`
	Status   TenantStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	Notes    string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewIndividualTenant creates a PF tenant identified by a CPF
func NewIndividualTenant(fullName, cpf string) (*Tenant, error) {
	normalized, err := ValidateCPF(cpf)
	if err != nil {
		return nil, err
	}
	return newTenant(TenantKindIndividual, fullName, normalized)
}

// NewLegalEntityTenant creates a PJ tenant identified by a CNPJ
func NewLegalEntityTenant(companyName, cnpj string) (*Tenant, error) {
	normalized, err := ValidateCNPJ(cnpj)
	if err != nil {
		return nil, err
	}
	return newTenant(TenantKindLegalEntity, companyName, normalized)
}

func newTenant(kind TenantKind, name, document string) (*Tenant, error) {
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Document:          document,
		Name:              name,
		Status:            TenantStatusActive,
	}

	tenant.AddDomainEvent(NewTenantRegisteredEvent(tenant))

	return tenant, nil
}

// Update updates the tenant's display name and notes
func (t *Tenant) Update(name, notes string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}

	t.Name = name
	t.Notes = notes
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantUpdatedEvent(t))

	return nil
}

// SetContact sets the tenant's contact information
func (t *Tenant) SetContact(email, phone string) error {
	if email != "" {
		if err := validateTenantEmail(email); err != nil {
			return err
		}
	}
	if len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 20 characters")
	}

	t.Email = email
	t.Phone = phone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// CanTransitionTo reports whether the status state machine allows moving
// from the tenant's current status to the target status
func (t *Tenant) CanTransitionTo(target TenantStatus) bool {
	for _, allowed := range allowedTransitions[t.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the tenant to the target status after validating the
// transition against the allowed-edges table. Callers must persist the
// matching StatusHistory entry atomically with the status change.
func (t *Tenant) TransitionTo(target TenantStatus) error {
	if err := validateTenantStatus(target); err != nil {
		return err
	}
	if !t.CanTransitionTo(target) {
		return NewInvalidTransitionError(t.Status, target)
	}

	previous := t.Status
	t.Status = target
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t, previous, target))

	return nil
}

// IsBlocked returns true if the tenant cannot be attached to new leases
func (t *Tenant) IsBlocked() bool {
	return t.Status == TenantStatusBlocked
}

// IsActive returns true if the tenant is in good standing
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// IsIndividual returns true for PF tenants
func (t *Tenant) IsIndividual() bool {
	return t.Kind == TenantKindIndividual
}

// FormattedDocument returns the document with the standard CPF/CNPJ mask
func (t *Tenant) FormattedDocument() string {
	if t.Kind == TenantKindIndividual {
		return FormatCPF(t.Document)
	}
	return FormatCNPJ(t.Document)
}

// NewInvalidTransitionError builds the typed error for a disallowed status change
func NewInvalidTransitionError(from, to TenantStatus) *shared.DomainError {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Status transition from %s to %s is not allowed", from, to))
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}

func validateTenantStatus(status TenantStatus) error {
	switch status {
	case TenantStatusActive, TenantStatusInactive, TenantStatusDelinquent, TenantStatusBlocked:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown tenant status")
	}
}

var tenantEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateTenantEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !tenantEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
