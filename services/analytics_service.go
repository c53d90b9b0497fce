package services

import (
	"context"
	"fmt"
	"time"

	"mitra-support-backend/models"

	"go.uber.org/zap"
)

// CounterStore keeps aggregate tallies.
type CounterStore interface {
	Increment(ctx context.Context, metric, key string) error
	Counters(ctx context.Context) ([]models.Counter, error)
	Ping(ctx context.Context) error
}

// counterTimeout bounds all counter writes of one recorded event together.
const counterTimeout = 500 * time.Millisecond

type tally struct {
	metric string
	key    string
}

// AnalyticsService feeds the admin dashboard with counts only. Store
// failures are logged and never fail the caller's request.
type AnalyticsService struct {
	store   CounterStore
	logger  *zap.Logger
	timeout time.Duration
}

func NewAnalyticsService(store CounterStore, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:   store,
		logger:  logger,
		timeout: counterTimeout,
	}
}

// RecordChat tallies one chat reply.
func (s *AnalyticsService) RecordChat(ctx context.Context, resp *models.ChatResponse) {
	tallies := []tally{
		{models.MetricChatCategory, string(resp.Category)},
		{models.MetricChatSeverity, string(resp.Type)},
		{models.MetricChatSource, string(resp.Source)},
	}
	if resp.CrisisDetected {
		tallies = append(tallies, tally{models.MetricCrisisDetected, string(resp.Locale)})
	}
	s.record(ctx, tallies)
}

// RecordScreening tallies one scored screening.
func (s *AnalyticsService) RecordScreening(ctx context.Context, result *models.ScreeningResult) {
	tallies := []tally{
		{models.MetricScreeningRisk, fmt.Sprintf("%s:%s", result.Instrument, result.RiskLevel)},
	}
	if result.NeedImmediateHelp {
		tallies = append(tallies, tally{models.MetricImmediateHelp, string(result.Instrument)})
	}
	s.record(ctx, tallies)
}

// Snapshot groups every counter by metric.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*models.AnalyticsSnapshot, error) {
	counters, err := s.store.Counters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}

	snapshot := &models.AnalyticsSnapshot{
		GeneratedAt: time.Now().UTC(),
		Metrics:     make(map[string]map[string]int64),
	}
	for _, c := range counters {
		if snapshot.Metrics[c.Metric] == nil {
			snapshot.Metrics[c.Metric] = make(map[string]int64)
		}
		snapshot.Metrics[c.Metric][c.Key] += c.Count
	}
	return snapshot, nil
}

// HealthCheck pings the backing store.
func (s *AnalyticsService) HealthCheck(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// record writes the tallies of one event under a single deadline. It
// detaches from request cancellation so a reply that was already computed
// is still counted, and stops at the first failure.
func (s *AnalyticsService) record(ctx context.Context, tallies []tally) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	for i, t := range tallies {
		if err := s.store.Increment(ctx, t.metric, t.key); err != nil {
			s.logger.Warn("Failed to record counters",
				zap.String("metric", t.metric),
				zap.String("key", t.key),
				zap.Int("skipped", len(tallies)-i-1),
				zap.Error(err))
			return
		}
	}
}
