package leasing

import (
	"context"
	"errors"
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaseService orchestrates the lease lifecycle. Every mutating operation
// validates occupancy against the current active leases, writes the lease,
// its history entry and the apartment availability resync as one atomic
// repository operation, and translates a unique-index race into the same
// overlap error the validation would have produced.
type LeaseService struct {
	leaseRepo     leasing.LeaseRepository
	historyRepo   leasing.LeaseHistoryRepository
	tenantRepo    tenancy.TenantRepository
	apartmentRepo property.ApartmentRepository
	logger        *zap.Logger
}

// NewLeaseService creates a new LeaseService
func NewLeaseService(
	leaseRepo leasing.LeaseRepository,
	historyRepo leasing.LeaseHistoryRepository,
	tenantRepo tenancy.TenantRepository,
	apartmentRepo property.ApartmentRepository,
	logger *zap.Logger,
) *LeaseService {
	return &LeaseService{
		leaseRepo:     leaseRepo,
		historyRepo:   historyRepo,
		tenantRepo:    tenantRepo,
		apartmentRepo: apartmentRepo,
		logger:        logger,
	}
}

// Create creates a new lease after validating the tenant, the apartment and
// the occupancy rules.
func (s *LeaseService) Create(ctx context.Context, req CreateLeaseRequest) (*LeaseResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.apartmentRepo.FindByID(ctx, req.ApartmentID); err != nil {
		return nil, err
	}

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lease, err := leasing.NewLease(req.TenantID, req.ApartmentID, startDate, endDate, req.Rent)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		lease.SetNotes(req.Notes)
	}
	lease.CreatedBy = req.Actor
	lease.UpdatedBy = req.Actor

	existing, err := s.leaseRepo.FindActiveByApartment(ctx, req.ApartmentID)
	if err != nil {
		return nil, err
	}
	if err := leasing.ValidateOccupancy(lease, tenant.Status, existing, time.Now()); err != nil {
		return nil, err
	}

	entry := leasing.NewLeaseHistory(lease, leasing.HistoryEventCreated, req.Actor)
	if err := s.leaseRepo.Create(ctx, lease, entry); err != nil {
		return nil, s.translateWriteError(err, req.ApartmentID)
	}

	s.logger.Info("lease created",
		zap.String("lease_id", lease.ID.String()),
		zap.String("apartment_id", lease.ApartmentID.String()),
		zap.String("tenant_id", lease.TenantID.String()))

	response := ToLeaseResponse(lease)
	return &response, nil
}

// GetByID retrieves a lease by ID
func (s *LeaseService) GetByID(ctx context.Context, leaseID uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	response := ToLeaseResponse(lease)
	return &response, nil
}

// List retrieves leases with filtering and pagination
func (s *LeaseService) List(ctx context.Context, filter LeaseListFilter) ([]LeaseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "start_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.TenantID != "" {
		domainFilter.Filters["tenant_id"] = filter.TenantID
	}
	if filter.ApartmentID != "" {
		domainFilter.Filters["apartment_id"] = filter.ApartmentID
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	leases, err := s.leaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.leaseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLeaseResponses(leases), total, nil
}

// Update applies field changes to a lease. Period and apartment changes are
// validated against the merged result, so a partial update can never slip
// an invalid combination through.
func (s *LeaseService) Update(ctx context.Context, leaseID uuid.UUID, req UpdateLeaseRequest) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}

	previousApartmentID := uuid.Nil
	if req.ApartmentID != nil && *req.ApartmentID != lease.ApartmentID {
		if _, err := s.apartmentRepo.FindByID(ctx, *req.ApartmentID); err != nil {
			return nil, err
		}
		previousApartmentID = lease.ApartmentID
		lease.ApartmentID = *req.ApartmentID
	}

	if req.StartDate != nil || req.EndDate != nil || req.ClearEnd {
		startDate := lease.StartDate
		endDate := lease.EndDate

		if req.StartDate != nil {
			startDate, err = parseDate(*req.StartDate)
			if err != nil {
				return nil, err
			}
		}
		if req.ClearEnd {
			endDate = nil
		} else if req.EndDate != nil {
			d, err := parseDate(*req.EndDate)
			if err != nil {
				return nil, err
			}
			endDate = &d
		}

		if err := lease.ChangePeriod(startDate, endDate); err != nil {
			return nil, err
		}
	}

	if req.Rent != nil {
		if err := lease.SetRent(req.Rent); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		lease.SetNotes(*req.Notes)
	}
	lease.UpdatedBy = req.Actor

	existing, err := s.leaseRepo.FindActiveByApartment(ctx, lease.ApartmentID)
	if err != nil {
		return nil, err
	}
	if err := leasing.ValidateOccupancy(lease, tenant.Status, existing, time.Now()); err != nil {
		return nil, err
	}

	entry := leasing.NewLeaseHistory(lease, leasing.HistoryEventUpdated, req.Actor)
	if err := s.leaseRepo.Update(ctx, lease, entry, previousApartmentID); err != nil {
		return nil, s.translateWriteError(err, lease.ApartmentID)
	}

	response := ToLeaseResponse(lease)
	return &response, nil
}

// Finalize closes a lease and frees its apartment. Finalizing an already
// finalized lease returns LEASE_ALREADY_FINALIZED and changes nothing.
func (s *LeaseService) Finalize(ctx context.Context, leaseID uuid.UUID, req FinalizeLeaseRequest) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	var endDate time.Time
	if req.EndDate != nil {
		endDate, err = parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
	}

	if err := lease.Finalize(endDate); err != nil {
		return nil, err
	}
	lease.UpdatedBy = req.Actor

	entry := leasing.NewLeaseHistory(lease, leasing.HistoryEventFinalized, req.Actor)
	if err := s.leaseRepo.Update(ctx, lease, entry, uuid.Nil); err != nil {
		return nil, err
	}

	s.logger.Info("lease finalized",
		zap.String("lease_id", lease.ID.String()),
		zap.String("apartment_id", lease.ApartmentID.String()))

	response := ToLeaseResponse(lease)
	return &response, nil
}

// Reactivate puts a finalized lease back in force after re-validating
// occupancy against the apartment's current active leases.
func (s *LeaseService) Reactivate(ctx context.Context, leaseID uuid.UUID, actor string) (*LeaseResponse, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.FindByID(ctx, lease.TenantID)
	if err != nil {
		return nil, err
	}

	if err := lease.Reactivate(); err != nil {
		return nil, err
	}
	lease.UpdatedBy = actor

	existing, err := s.leaseRepo.FindActiveByApartment(ctx, lease.ApartmentID)
	if err != nil {
		return nil, err
	}
	if err := leasing.ValidateOccupancy(lease, tenant.Status, existing, time.Now()); err != nil {
		return nil, err
	}

	entry := leasing.NewLeaseHistory(lease, leasing.HistoryEventReactivated, actor)
	if err := s.leaseRepo.Update(ctx, lease, entry, uuid.Nil); err != nil {
		return nil, s.translateWriteError(err, lease.ApartmentID)
	}

	response := ToLeaseResponse(lease)
	return &response, nil
}

// Delete removes a lease and its history entries in one transaction. The
// apartment's availability is re-derived from the remaining leases.
func (s *LeaseService) Delete(ctx context.Context, leaseID uuid.UUID) error {
	if _, err := s.leaseRepo.FindByID(ctx, leaseID); err != nil {
		return err
	}
	return s.leaseRepo.Delete(ctx, leaseID)
}

// History retrieves the lifecycle log for a lease
func (s *LeaseService) History(ctx context.Context, leaseID uuid.UUID, filter shared.Filter) ([]LeaseHistoryResponse, error) {
	if _, err := s.leaseRepo.FindByID(ctx, leaseID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByLease(ctx, leaseID, filter)
	if err != nil {
		return nil, err
	}

	return ToLeaseHistoryResponses(entries), nil
}

// translateWriteError maps a duplicated-key violation of the active-lease
// unique index to the overlap error, so a lost race reads the same as a
// failed validation.
func (s *LeaseService) translateWriteError(err error, apartmentID uuid.UUID) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, shared.ErrAlreadyExists) {
		s.logger.Warn("concurrent lease creation lost the race",
			zap.String("apartment_id", apartmentID.String()))
		return leasing.ErrOverlappingLease
	}
	return err
}

func parsePeriod(start string, end *string) (time.Time, *time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, nil, err
	}
	if end == nil {
		return startDate, nil, nil
	}
	endDate, err := parseDate(*end)
	if err != nil {
		return time.Time{}, nil, err
	}
	return startDate, &endDate, nil
}

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must use the YYYY-MM-DD format")
	}
	return d, nil
}
