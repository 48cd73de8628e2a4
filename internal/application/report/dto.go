package report

import (
	"time"

	"github.com/google/uuid"
)

// TenantMetrics summarizes the tenant base for the dashboard
type TenantMetrics struct {
	Total         int64     `json:"total"`
	Active        int64     `json:"active"`
	Inactive      int64     `json:"inactive"`
	Delinquent    int64     `json:"delinquent"`
	Blocked       int64     `json:"blocked"`
	Individuals   int64     `json:"individuals"`
	LegalEntities int64     `json:"legal_entities"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// OccupancyMetrics summarizes apartment occupancy. Occupied counts units
// whose active lease is in force today; the rate is occupied over total.
type OccupancyMetrics struct {
	TotalApartments     int64     `json:"total_apartments"`
	OccupiedApartments  int64     `json:"occupied_apartments"`
	AvailableApartments int64     `json:"available_apartments"`
	OccupancyRate       float64   `json:"occupancy_rate"`
	ActiveLeases        int64     `json:"active_leases"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// DelinquentTenantEntry is one row of the delinquency report
type DelinquentTenantEntry struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	Name         string    `json:"name"`
	Document     string    `json:"document"`
	ActiveLeases int       `json:"active_leases"`
	Since        time.Time `json:"since"`
}

// DelinquencyReport lists delinquent tenants and whether they still hold
// active leases
type DelinquencyReport struct {
	Entries     []DelinquentTenantEntry `json:"entries"`
	Total       int                     `json:"total"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// StatusTransitionSummary is the transition count for one target status
type StatusTransitionSummary struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatusActivityReport summarizes status transitions over a window
type StatusActivityReport struct {
	WindowDays  int                       `json:"window_days"`
	Transitions []StatusTransitionSummary `json:"transitions"`
	Automatic   int64                     `json:"automatic"`
	Manual      int64                     `json:"manual"`
	GeneratedAt time.Time                 `json:"generated_at"`
}
