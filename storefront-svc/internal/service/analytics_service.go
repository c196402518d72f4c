package service

import (
	"context"
	"log/slog"
	"time"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const revenueWindowDays = 7

type AnalyticsService struct {
	repo  StatsRepository
	cache StatsCache
	loc   *time.Location
	now   func() time.Time
	log   *logger.Logger
}

func NewAnalyticsService(repo StatsRepository, cache StatsCache, loc *time.Location, log *logger.Logger) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{repo: repo, cache: cache, loc: loc, now: time.Now, log: log}
}

// WithClock replaces the time source.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

// Stats reads the dashboard totals from Redis first and recomputes them from
// the database on a miss.
func (s *AnalyticsService) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.cache != nil {
		stats, ok, err := s.cache.GetStats(ctx)
		if err != nil {
			s.log.Warn(ctx, "stats_cache", "stats cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return stats, nil
		}
	}

	stats, err := s.repo.Stats(ctx, s.startOfDay(s.now()))
	if err != nil {
		return nil, storeErr("load stats", err)
	}

	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			s.log.Warn(ctx, "stats_cache", "stats cache write failed", slog.String("error", err.Error()))
		}
	}
	return stats, nil
}

// WeeklyRevenue returns completed revenue for today and the six days before
// it, oldest first. Days without sales are reported as zero.
func (s *AnalyticsService) WeeklyRevenue(ctx context.Context) ([]domain.RevenuePoint, error) {
	today := s.startOfDay(s.now())
	since := today.AddDate(0, 0, -(revenueWindowDays - 1))

	byDay, err := s.repo.CompletedRevenueByDay(ctx, since)
	if err != nil {
		return nil, storeErr("load weekly revenue", err)
	}

	points := make([]domain.RevenuePoint, 0, revenueWindowDays)
	for day := since; !day.After(today); day = day.AddDate(0, 0, 1) {
		revenue, ok := byDay[day.Format("2006-01-02")]
		if !ok {
			revenue = decimal.Zero
		}
		points = append(points, domain.RevenuePoint{Name: day.Format("Mon"), Revenue: revenue})
	}
	return points, nil
}

func (s *AnalyticsService) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}
