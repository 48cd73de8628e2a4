package leasing

import (
	"encoding/json"

	"github.com/aptos/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// HistoryEvent classifies a lease lifecycle event
type HistoryEvent string

const (
	HistoryEventCreated     HistoryEvent = "CREATED"
	HistoryEventUpdated     HistoryEvent = "UPDATED"
	HistoryEventFinalized   HistoryEvent = "FINALIZED"
	HistoryEventReactivated HistoryEvent = "REACTIVATED"
)

// LeaseHistory is an append-only record of a lease lifecycle event with a
// snapshot of the fields as of the mutation. Written explicitly by every
// mutating operation, in the same transaction as the lease itself.
type LeaseHistory struct {
	shared.BaseEntity
	LeaseID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	ApartmentID uuid.UUID    `gorm:"type:uuid;not null;index"`
	TenantID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Event       HistoryEvent `gorm:"type:varchar(20);not null"`
	Snapshot    string       `gorm:"type:jsonb"`
	Actor       string       `gorm:"type:varchar(150)"`
}

// TableName returns the table name for GORM
func (LeaseHistory) TableName() string {
	return "lease_history"
}

// leaseSnapshot is the serialized field state captured on every mutation
type leaseSnapshot struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	Rent      *string `json:"rent,omitempty"`
	Active    bool    `json:"active"`
	Notes     string  `json:"notes,omitempty"`
}

// NewLeaseHistory builds the history entry for a lease lifecycle event
func NewLeaseHistory(lease *Lease, event HistoryEvent, actor string) *LeaseHistory {
	snap := leaseSnapshot{
		StartDate: lease.StartDate.Format("2006-01-02"),
		Active:    lease.Active,
		Notes:     lease.Notes,
	}
	if lease.EndDate != nil {
		s := lease.EndDate.Format("2006-01-02")
		snap.EndDate = &s
	}
	if lease.Rent != nil {
		s := lease.Rent.String()
		snap.Rent = &s
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		payload = []byte("{}")
	}

	return &LeaseHistory{
		BaseEntity:  shared.NewBaseEntity(),
		LeaseID:     lease.ID,
		ApartmentID: lease.ApartmentID,
		TenantID:    lease.TenantID,
		Event:       event,
		Snapshot:    string(payload),
		Actor:       actor,
	}
}
