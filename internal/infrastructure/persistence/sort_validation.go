package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BuildingSortFields contains allowed sort fields for buildings
var BuildingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"address":    true,
}

// ApartmentSortFields contains allowed sort fields for apartments
var ApartmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"unit_number":  true,
	"building_id":  true,
	"is_available": true,
	"rental_price": true,
	"bedrooms":     true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"document":   true,
	"kind":       true,
	"status":     true,
}

// StatusRuleSortFields contains allowed sort fields for status rules
var StatusRuleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"criterion":      true,
	"target_status":  true,
	"threshold_days": true,
	"automatic":      true,
	"enabled":        true,
}

// LeaseSortFields contains allowed sort fields for leases
var LeaseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"tenant_id":    true,
	"apartment_id": true,
	"start_date":   true,
	"end_date":     true,
	"rent":         true,
	"active":       true,
}

// StatusHistorySortFields contains allowed sort fields for tenant status history
var StatusHistorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"tenant_id":  true,
	"new_status": true,
}

// LeaseHistorySortFields contains allowed sort fields for lease history
var LeaseHistorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"lease_id":   true,
	"event":      true,
}
