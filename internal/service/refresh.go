package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRefreshSchedule reloads country data four times a day.
const DefaultRefreshSchedule = "@every 6h"

// RefreshService reloads the country repository on a cron schedule.
type RefreshService struct {
	loader   RepositoryLoader
	schedule string
	logger   *zap.Logger
}

// NewRefreshService creates a refresher. An empty schedule disables it.
func NewRefreshService(loader RepositoryLoader, schedule string, logger *zap.Logger) *RefreshService {
	return &RefreshService{
		loader:   loader,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the schedule until ctx is done.
func (s *RefreshService) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.logger.Info("country refresh disabled")
		<-ctx.Done()
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: refreshing countries")
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("add refresh job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("country refresh scheduled", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("country refresh stopped")

	return nil
}

func (s *RefreshService) refresh(ctx context.Context) {
	if _, err := s.loader.LoadRepository(ctx); err != nil {
		s.logger.Warn("country refresh failed, keeping previous data", zap.Error(err))
	}
}
