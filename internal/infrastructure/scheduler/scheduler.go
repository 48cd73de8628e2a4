package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	appproperty "github.com/aptos/backend/internal/application/property"
	apptenancy "github.com/aptos/backend/internal/application/tenancy"
	"github.com/aptos/backend/internal/domain/tenancy"
	"github.com/aptos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// checkInterval is how often the scheduler evaluates job schedules
const checkInterval = 30 * time.Second

// MaintenanceScheduler runs the recurring background jobs: the automatic
// status rule sweep, the status history retention purge and the apartment
// availability reconciliation. Each job fires at most once per scheduled
// minute; a failed run is logged and retried at the next scheduled slot.
type MaintenanceScheduler struct {
	cfg           config.SchedulerConfig
	retentionDays int

	ruleService      *apptenancy.StatusRuleService
	apartmentService *appproperty.ApartmentService
	historyRepo      tenancy.StatusHistoryRepository
	logger           *zap.Logger

	jobs []*scheduledJob

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

type scheduledJob struct {
	name     string
	schedule CronSchedule
	run      func(ctx context.Context) error
	lastSlot string
}

// NewMaintenanceScheduler creates the scheduler with its three jobs wired
// to the given services
func NewMaintenanceScheduler(
	cfg config.SchedulerConfig,
	retention config.RetentionConfig,
	ruleService *apptenancy.StatusRuleService,
	apartmentService *appproperty.ApartmentService,
	historyRepo tenancy.StatusHistoryRepository,
	logger *zap.Logger,
) (*MaintenanceScheduler, error) {
	s := &MaintenanceScheduler{
		cfg:              cfg,
		retentionDays:    retention.StatusHistoryDays,
		ruleService:      ruleService,
		apartmentService: apartmentService,
		historyRepo:      historyRepo,
		logger:           logger,
	}

	sweepSchedule, err := ParseCronSchedule(cfg.StatusSweepCron)
	if err != nil {
		return nil, fmt.Errorf("status sweep schedule: %w", err)
	}
	retentionSchedule, err := ParseCronSchedule(cfg.RetentionCron)
	if err != nil {
		return nil, fmt.Errorf("retention schedule: %w", err)
	}
	availabilitySchedule, err := ParseCronSchedule(cfg.AvailabilitySyncCron)
	if err != nil {
		return nil, fmt.Errorf("availability sync schedule: %w", err)
	}

	s.jobs = []*scheduledJob{
		{name: "status_rule_sweep", schedule: sweepSchedule, run: s.runStatusSweep},
		{name: "history_retention_purge", schedule: retentionSchedule, run: s.runRetentionPurge},
		{name: "availability_reconciliation", schedule: availabilitySchedule, run: s.runAvailabilitySync},
	}

	return s, nil
}

// Start launches the scheduling loop. It is a no-op when the scheduler is
// disabled by configuration or already running.
func (s *MaintenanceScheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("maintenance scheduler disabled by configuration")
		return
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("maintenance scheduler started",
		zap.String("status_sweep", s.cfg.StatusSweepCron),
		zap.String("retention_purge", s.cfg.RetentionCron),
		zap.String("availability_sync", s.cfg.AvailabilitySyncCron),
	)
}

// Stop stops the scheduling loop and waits for a running job to finish
func (s *MaintenanceScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("maintenance scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MaintenanceScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.runDueJobs(ctx, now)
		}
	}
}

// runDueJobs fires every job whose schedule matches the current minute.
// lastSlot deduplicates fires within the same minute across ticks.
func (s *MaintenanceScheduler) runDueJobs(ctx context.Context, now time.Time) {
	slot := now.Format("2006-01-02T15:04")
	for _, job := range s.jobs {
		if job.lastSlot == slot || !job.schedule.Matches(now) {
			continue
		}
		job.lastSlot = slot

		jobCtx := ctx
		var cancel context.CancelFunc
		if s.cfg.JobTimeout > 0 {
			jobCtx, cancel = context.WithTimeout(ctx, s.cfg.JobTimeout)
		}

		started := time.Now()
		if err := job.run(jobCtx); err != nil {
			s.logger.Error("scheduled job failed",
				zap.String("job", job.name),
				zap.Duration("elapsed", time.Since(started)),
				zap.Error(err),
			)
		} else {
			s.logger.Info("scheduled job finished",
				zap.String("job", job.name),
				zap.Duration("elapsed", time.Since(started)),
			)
		}

		if cancel != nil {
			cancel()
		}
	}
}

func (s *MaintenanceScheduler) runStatusSweep(ctx context.Context) error {
	result, err := s.ruleService.ApplyAutomaticRules(ctx, time.Now())
	if err != nil {
		return err
	}
	s.logger.Info("status rule sweep completed",
		zap.Int("evaluated", result.Evaluated),
		zap.Int("transitioned", result.Transitioned),
		zap.Int("failed", result.Failed),
	)
	return nil
}

func (s *MaintenanceScheduler) runRetentionPurge(ctx context.Context) error {
	if s.retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	purged, err := s.historyRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	s.logger.Info("status history purge completed",
		zap.Int64("purged", purged),
		zap.Time("cutoff", cutoff),
	)
	return nil
}

func (s *MaintenanceScheduler) runAvailabilitySync(ctx context.Context) error {
	corrected, err := s.apartmentService.ReconcileAvailability(ctx)
	if err != nil {
		return err
	}
	if corrected > 0 {
		s.logger.Warn("availability drift corrected",
			zap.Int("apartments", corrected),
		)
	}
	return nil
}
