package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/campuslabs/orgfee-api/internal/models"
	appErrors "github.com/campuslabs/orgfee-api/pkg/errors"
)

type dashboardRepository interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

type summaryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

const dashboardCacheKey = "dashboard:summary"

// DashboardService serves cached top-level aggregates.
type DashboardService struct {
	repo     dashboardRepository
	cache    summaryCache
	cacheTTL time.Duration
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs the dashboard service. Both cache and
// metrics may be nil.
func NewDashboardService(repo dashboardRepository, cache summaryCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger, now: time.Now}
}

// Summary returns the dashboard aggregates, served from cache when warm.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if s.cache != nil {
		var cached models.DashboardSummary
		err := s.cache.Get(ctx, dashboardCacheKey, &cached)
		if err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		}
		s.metrics.RecordCacheOperation(false)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	summary.GeneratedAt = s.now().UTC()

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}
