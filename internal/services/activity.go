package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/infrastructure/activity"
	"github.com/taskboard/backend/usecase"
)

// ActivityConfig controls feed retention.
type ActivityConfig struct {
	Retention     time.Duration
	SweepInterval time.Duration
}

// ActivityService records board mutations into the activity store and
// periodically sweeps out entries past retention.
type ActivityService struct {
	store  *activity.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    ActivityConfig
}

func NewActivityService(store *activity.Store, logger *zap.Logger, cfg ActivityConfig) *ActivityService {
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := &ActivityService{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.SweepInterval.Seconds()))
	_, _ = svc.cron.AddFunc(schedule, func() {
		cutoff := time.Now().Add(-cfg.Retention)
		if err := svc.store.Cleanup(cutoff); err != nil {
			svc.logger.Error("activity sweep failed", zap.Error(err))
		}
	})

	return svc
}

// Start launches the retention sweeper.
func (s *ActivityService) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("activity service started")
}

// Stop gracefully stops the sweeper.
func (s *ActivityService) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("activity service stopped")
}

// Record appends asynchronously; a failed append is logged and never
// propagates to the mutation being recorded.
func (s *ActivityService) Record(_ context.Context, entry domain.Activity) {
	if s == nil || s.store == nil {
		return
	}
	go func() {
		if err := s.store.Append(entry); err != nil {
			s.logger.Warn("failed to record activity",
				zap.String("project_id", entry.ProjectID),
				zap.String("action", entry.Action),
				zap.Error(err))
		}
	}()
}

// Recent returns the newest entries for a project.
func (s *ActivityService) Recent(_ context.Context, projectID string, limit int) ([]domain.Activity, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	return s.store.Recent(projectID, limit)
}

var _ usecase.ActivityLog = (*ActivityService)(nil)
