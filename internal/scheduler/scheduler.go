package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/config"
	"github.com/vaychinnakhet-arch/canetrack/internal/service/tickets"
)

// Scheduler periodically re-pulls the spreadsheet mirror so edits made
// directly in the sheet flow back into the local store.
type Scheduler struct {
	cron      *cron.Cron
	ticketSvc *tickets.Service
	cfg       config.SyncConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured
// timezone (falls back to the host's local zone when it cannot be loaded).
func NewScheduler(cfg config.SyncConfig, ticketSvc *tickets.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		ticketSvc: ticketSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers and starts the refresh job.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.refreshMirror); err != nil {
		s.logger.Error("failed to schedule mirror refresh", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshMirror() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.ticketSvc.Refresh(ctx)
	if err != nil {
		s.logger.Warn("scheduled mirror refresh failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled mirror refresh done", zap.Int("fetched", count))
}
