package report

import (
	"context"
	"time"

	"github.com/aptos/backend/internal/domain/leasing"
	"github.com/aptos/backend/internal/domain/property"
	"github.com/aptos/backend/internal/domain/shared"
	"github.com/aptos/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// Cache keys for computed reports
const (
	cacheKeyTenantMetrics    = "report:tenant_metrics"
	cacheKeyOccupancyMetrics = "report:occupancy_metrics"
)

// MetricsCache stores computed report payloads with a TTL. Implementations
// must treat a miss as (false, nil), not an error.
type MetricsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// ReportService computes dashboard metrics and operational reports. Reports
// are read models over the repositories; nothing here mutates state.
type ReportService struct {
	tenantRepo    tenancy.TenantRepository
	historyRepo   tenancy.StatusHistoryRepository
	apartmentRepo property.ApartmentRepository
	leaseRepo     leasing.LeaseRepository
	cache         MetricsCache
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	tenantRepo tenancy.TenantRepository,
	historyRepo tenancy.StatusHistoryRepository,
	apartmentRepo property.ApartmentRepository,
	leaseRepo leasing.LeaseRepository,
	cache MetricsCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ReportService{
		tenantRepo:    tenantRepo,
		historyRepo:   historyRepo,
		apartmentRepo: apartmentRepo,
		leaseRepo:     leaseRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// TenantMetrics returns counts of tenants by status and kind
func (s *ReportService) TenantMetrics(ctx context.Context) (*TenantMetrics, error) {
	var cached TenantMetrics
	if hit, err := s.cache.Get(ctx, cacheKeyTenantMetrics, &cached); err != nil {
		s.logger.Warn("metrics cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	metrics := TenantMetrics{GeneratedAt: time.Now()}

	var err error
	if metrics.Total, err = s.tenantRepo.Count(ctx, shared.DefaultFilter()); err != nil {
		return nil, err
	}

	statusCounts := []struct {
		status tenancy.TenantStatus
		dest   *int64
	}{
		{tenancy.TenantStatusActive, &metrics.Active},
		{tenancy.TenantStatusInactive, &metrics.Inactive},
		{tenancy.TenantStatusDelinquent, &metrics.Delinquent},
		{tenancy.TenantStatusBlocked, &metrics.Blocked},
	}
	for _, sc := range statusCounts {
		if *sc.dest, err = s.tenantRepo.CountByStatus(ctx, sc.status); err != nil {
			return nil, err
		}
	}

	if metrics.Individuals, err = s.tenantRepo.CountByKind(ctx, tenancy.TenantKindIndividual); err != nil {
		return nil, err
	}
	if metrics.LegalEntities, err = s.tenantRepo.CountByKind(ctx, tenancy.TenantKindLegalEntity); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKeyTenantMetrics, metrics, s.cacheTTL); err != nil {
		s.logger.Warn("metrics cache write failed", zap.Error(err))
	}

	return &metrics, nil
}

// OccupancyMetrics returns the apartment occupancy picture as of today
func (s *ReportService) OccupancyMetrics(ctx context.Context) (*OccupancyMetrics, error) {
	var cached OccupancyMetrics
	if hit, err := s.cache.Get(ctx, cacheKeyOccupancyMetrics, &cached); err != nil {
		s.logger.Warn("metrics cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	now := time.Now()
	metrics := OccupancyMetrics{GeneratedAt: now}

	var err error
	if metrics.TotalApartments, err = s.apartmentRepo.Count(ctx, shared.DefaultFilter()); err != nil {
		return nil, err
	}
	if metrics.OccupiedApartments, err = s.leaseRepo.CountOccupiedApartments(ctx, now); err != nil {
		return nil, err
	}
	if metrics.AvailableApartments, err = s.apartmentRepo.CountAvailable(ctx); err != nil {
		return nil, err
	}

	activeFilter := shared.DefaultFilter()
	activeFilter.Filters["active"] = true
	if metrics.ActiveLeases, err = s.leaseRepo.Count(ctx, activeFilter); err != nil {
		return nil, err
	}

	if metrics.TotalApartments > 0 {
		metrics.OccupancyRate = float64(metrics.OccupiedApartments) / float64(metrics.TotalApartments)
	}

	if err := s.cache.Set(ctx, cacheKeyOccupancyMetrics, metrics, s.cacheTTL); err != nil {
		s.logger.Warn("metrics cache write failed", zap.Error(err))
	}

	return &metrics, nil
}

// DelinquencyReport lists delinquent tenants together with their active
// lease count. Not cached: it is an operational report, not dashboard data.
func (s *ReportService) DelinquencyReport(ctx context.Context) (*DelinquencyReport, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 500
	tenants, err := s.tenantRepo.FindByStatus(ctx, tenancy.TenantStatusDelinquent, filter)
	if err != nil {
		return nil, err
	}

	report := DelinquencyReport{
		Entries:     make([]DelinquentTenantEntry, 0, len(tenants)),
		GeneratedAt: time.Now(),
	}

	for i := range tenants {
		tenant := &tenants[i]
		active, err := s.leaseRepo.FindActiveByTenant(ctx, tenant.ID)
		if err != nil {
			return nil, err
		}

		report.Entries = append(report.Entries, DelinquentTenantEntry{
			TenantID:     tenant.ID,
			Name:         tenant.Name,
			Document:     tenancy.MaskDocument(tenant.Document),
			ActiveLeases: len(active),
			Since:        tenant.UpdatedAt,
		})
	}
	report.Total = len(report.Entries)

	return &report, nil
}

// StatusActivityReport summarizes status transitions over the last
// windowDays days, split by target status and by origin (manual/automatic)
func (s *ReportService) StatusActivityReport(ctx context.Context, windowDays int) (*StatusActivityReport, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	entries, err := s.historyRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	report := StatusActivityReport{
		WindowDays:  windowDays,
		GeneratedAt: time.Now(),
	}
	for i := range entries {
		e := &entries[i]
		byStatus[string(e.NewStatus)]++
		if e.ReasonCategory == tenancy.ReasonCategoryAutomatic {
			report.Automatic++
		} else {
			report.Manual++
		}
	}

	for _, status := range []tenancy.TenantStatus{
		tenancy.TenantStatusActive,
		tenancy.TenantStatusInactive,
		tenancy.TenantStatusDelinquent,
		tenancy.TenantStatusBlocked,
	} {
		if count, ok := byStatus[string(status)]; ok {
			report.Transitions = append(report.Transitions, StatusTransitionSummary{
				Status: string(status),
				Count:  count,
			})
		}
	}

	return &report, nil
}

// InvalidateMetrics drops the cached dashboard payloads. Called after
// mutations that change the underlying counts.
func (s *ReportService) InvalidateMetrics(ctx context.Context) error {
	return s.cache.Invalidate(ctx, cacheKeyTenantMetrics, cacheKeyOccupancyMetrics)
}
