package dto

import "net/http"

// Error codes shared across handlers. Domain packages produce most codes;
// these are the interface-level ones.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// DomainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Conflicts with current state are 409, violated business rules are 422,
// malformed input is 400.
var DomainCodeHTTPStatus = map[string]int{
	// lookups
	"NOT_FOUND": http.StatusNotFound,

	// state conflicts
	"ALREADY_EXISTS":          http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,
	"OVERLAPPING_LEASE":       http.StatusConflict,
	"LEASE_ALREADY_FINALIZED": http.StatusConflict,
	"LEASE_ALREADY_ACTIVE":    http.StatusConflict,

	// business rule violations
	"INVALID_STATE":              http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":         http.StatusUnprocessableEntity,
	"TENANT_BLOCKED":             http.StatusUnprocessableEntity,
	"INVALID_PERIOD":             http.StatusUnprocessableEntity,
	"START_TOO_FAR_IN_FUTURE":    http.StatusUnprocessableEntity,
	"BUILDING_HAS_APARTMENTS":    http.StatusUnprocessableEntity,
	"APARTMENT_HAS_ACTIVE_LEASE": http.StatusUnprocessableEntity,

	// malformed input
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_DATE":         http.StatusBadRequest,
	"INVALID_KIND":         http.StatusBadRequest,
	"INVALID_STATUS":       http.StatusBadRequest,
	"INVALID_CPF":          http.StatusBadRequest,
	"INVALID_CNPJ":         http.StatusBadRequest,
	"INVALID_EMAIL":        http.StatusBadRequest,
	"INVALID_PHONE":        http.StatusBadRequest,
	"INVALID_RENT":         http.StatusBadRequest,
	"INVALID_RENTAL_PRICE": http.StatusBadRequest,
	"INVALID_UNIT_NUMBER":  http.StatusBadRequest,
	"INVALID_FLOOR":        http.StatusBadRequest,
	"INVALID_ROOM_COUNT":   http.StatusBadRequest,
	"INVALID_DIMENSIONS":   http.StatusBadRequest,
	"INVALID_ZIP_CODE":     http.StatusBadRequest,
	"INVALID_VIDEO_URL":    http.StatusBadRequest,
	"INVALID_CRITERION":    http.StatusBadRequest,
	"INVALID_THRESHOLD":    http.StatusBadRequest,
	"INVALID_BUILDING":     http.StatusBadRequest,
	"INVALID_APARTMENT":    http.StatusBadRequest,
	"INVALID_TENANT":       http.StatusBadRequest,

	// auth
	"UNAUTHORIZED": http.StatusUnauthorized,
	"FORBIDDEN":    http.StatusForbidden,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for unknown codes
func GetHTTPStatus(code string) int {
	if status, ok := DomainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
