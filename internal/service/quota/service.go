package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
)

// Store is the persistence surface the quota service needs.
type Store interface {
	ListTickets(ctx context.Context) ([]models.CaneTicket, error)
	GetQuotaSettings(ctx context.Context) (models.QuotaSettings, error)
	SaveQuotaSettings(ctx context.Context, s models.QuotaSettings) error
}

// Service wraps the pure goal arithmetic with storage access. A single
// mutex serializes settings writes in-process; across processes the last
// write wins, which is acceptable for a single-user app.
type Service struct {
	store  Store
	logger *zap.Logger
	mu     sync.Mutex
}

// NewService wires a new quota service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Settings loads the current goal settings, defaulted for first run or
// old-shape documents.
func (s *Service) Settings(ctx context.Context) (models.QuotaSettings, error) {
	settings, err := s.store.GetQuotaSettings(ctx)
	if err != nil {
		return models.QuotaSettings{}, fmt.Errorf("load quota settings: %w", err)
	}
	return settings.Normalize(), nil
}

// CurrentProgress reports the active round's progress.
func (s *Service) CurrentProgress(ctx context.Context) (Progress, models.QuotaSettings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return Progress{}, models.QuotaSettings{}, err
	}

	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return Progress{}, models.QuotaSettings{}, fmt.Errorf("load tickets: %w", err)
	}

	active := ActiveRoundRecords(tickets, settings.CurrentGoalStartDate)
	return Summarize(active, settings.TargetTons), settings, nil
}

// UpdateTarget changes the active round's target without closing it.
func (s *Service) UpdateTarget(ctx context.Context, newTarget float64) (models.QuotaSettings, error) {
	if newTarget <= 0 {
		return models.QuotaSettings{}, ErrInvalidTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Settings(ctx)
	if err != nil {
		return models.QuotaSettings{}, err
	}

	settings.TargetTons = newTarget
	if err := s.store.SaveQuotaSettings(ctx, settings); err != nil {
		return models.QuotaSettings{}, fmt.Errorf("save quota settings: %w", err)
	}

	s.logger.Info("goal target updated", zap.Float64("target_tons", newTarget))
	return settings, nil
}

// StartNextRound closes the active round and opens the next one. The
// active round must already have met its target.
func (s *Service) StartNextRound(ctx context.Context, newTarget float64) (models.QuotaSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Settings(ctx)
	if err != nil {
		return models.QuotaSettings{}, err
	}

	tickets, err := s.store.ListTickets(ctx)
	if err != nil {
		return models.QuotaSettings{}, fmt.Errorf("load tickets: %w", err)
	}

	active := ActiveRoundRecords(tickets, settings.CurrentGoalStartDate)
	if !Summarize(active, settings.TargetTons).Achieved {
		return models.QuotaSettings{}, ErrGoalNotReached
	}

	next, err := StartNextRound(settings, tickets, newTarget, time.Now())
	if err != nil {
		return models.QuotaSettings{}, err
	}

	if err := s.store.SaveQuotaSettings(ctx, next); err != nil {
		return models.QuotaSettings{}, fmt.Errorf("save quota settings: %w", err)
	}

	s.logger.Info("goal round closed",
		zap.Int("completed_round", next.History[0].Round),
		zap.Float64("achieved_tons", next.History[0].AchievedTons),
		zap.Float64("next_target_tons", newTarget))

	return next, nil
}
