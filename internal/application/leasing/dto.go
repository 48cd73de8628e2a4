package leasing

import (
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for lease dates
const dateLayout = "2006-01-02"

// CreateLeaseRequest represents a request to create a new lease
type CreateLeaseRequest struct {
	TenantID    uuid.UUID        `json:"tenant_id" binding:"required"`
	ApartmentID uuid.UUID        `json:"apartment_id" binding:"required"`
	StartDate   string           `json:"start_date" binding:"required"`
	EndDate     *string          `json:"end_date"`
	Rent        *decimal.Decimal `json:"rent"`
	Notes       string           `json:"notes"`
	Actor       string           `json:"-"`
}

// UpdateLeaseRequest represents a request to update a lease. Changing the
// period or the apartment re-runs the full occupancy validation.
type UpdateLeaseRequest struct {
	ApartmentID *uuid.UUID       `json:"apartment_id"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	ClearEnd    bool             `json:"clear_end"`
	Rent        *decimal.Decimal `json:"rent"`
	Notes       *string          `json:"notes"`
	Actor       string           `json:"-"`
}

// FinalizeLeaseRequest represents a request to finalize a lease
type FinalizeLeaseRequest struct {
	EndDate *string `json:"end_date"`
	Actor   string  `json:"-"`
}

// LeaseResponse represents a lease in API responses
type LeaseResponse struct {
	ID                uuid.UUID        `json:"id"`
	TenantID          uuid.UUID        `json:"tenant_id"`
	ApartmentID       uuid.UUID        `json:"apartment_id"`
	StartDate         string           `json:"start_date"`
	EndDate           *string          `json:"end_date,omitempty"`
	Rent              *decimal.Decimal `json:"rent,omitempty"`
	Active            bool             `json:"active"`
	Notes             string           `json:"notes"`
	DurationDays      int              `json:"duration_days"`
	DurationMonths    float64          `json:"duration_months"`
	IsCurrentlyActive bool             `json:"is_currently_active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Version           int              `json:"version"`
}

// LeaseListFilter represents filter options for lease list
type LeaseListFilter struct {
	TenantID    string `form:"tenant_id" binding:"omitempty,uuid"`
	ApartmentID string `form:"apartment_id" binding:"omitempty,uuid"`
	Active      *bool  `form:"active"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LeaseHistoryResponse represents a lease lifecycle log entry
type LeaseHistoryResponse struct {
	ID          uuid.UUID `json:"id"`
	LeaseID     uuid.UUID `json:"lease_id"`
	ApartmentID uuid.UUID `json:"apartment_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Event       string    `json:"event"`
	Snapshot    string    `json:"snapshot"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToLeaseResponse converts a domain lease to a response DTO
func ToLeaseResponse(lease *leasing.Lease) LeaseResponse {
	now := time.Now()
	response := LeaseResponse{
		ID:                lease.ID,
		TenantID:          lease.TenantID,
		ApartmentID:       lease.ApartmentID,
		StartDate:         lease.StartDate.Format(dateLayout),
		Active:            lease.Active,
		Notes:             lease.Notes,
		DurationDays:      lease.DurationDays(now),
		DurationMonths:    lease.DurationMonths(now),
		IsCurrentlyActive: lease.IsCurrentlyActive(now),
		CreatedAt:         lease.CreatedAt,
		UpdatedAt:         lease.UpdatedAt,
		Version:           lease.Version,
	}
	if lease.EndDate != nil {
		s := lease.EndDate.Format(dateLayout)
		response.EndDate = &s
	}
	if lease.Rent != nil {
		r := *lease.Rent
		response.Rent = &r
	}
	return response
}

// ToLeaseResponses converts domain leases to response DTOs
func ToLeaseResponses(leases []leasing.Lease) []LeaseResponse {
	responses := make([]LeaseResponse, len(leases))
	for i := range leases {
		responses[i] = ToLeaseResponse(&leases[i])
	}
	return responses
}

// ToLeaseHistoryResponses converts history entries to DTOs
func ToLeaseHistoryResponses(entries []leasing.LeaseHistory) []LeaseHistoryResponse {
	responses := make([]LeaseHistoryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = LeaseHistoryResponse{
			ID:          e.ID,
			LeaseID:     e.LeaseID,
			ApartmentID: e.ApartmentID,
			TenantID:    e.TenantID,
			Event:       string(e.Event),
			Snapshot:    e.Snapshot,
			Actor:       e.Actor,
			CreatedAt:   e.CreatedAt,
		}
	}
	return responses
}
