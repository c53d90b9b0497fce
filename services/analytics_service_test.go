package services

import (
	"context"
	"errors"
	"testing"

	"mitra-support-backend/database"
	"mitra-support-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Increment(context.Context, string, string) error { return errStoreDown }
func (failingStore) Counters(context.Context) ([]models.Counter, error) {
	return nil, errStoreDown
}
func (failingStore) Ping(context.Context) error { return errStoreDown }

func TestAnalytics_StoreFailuresAreLoggedOnly(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewAnalyticsService(failingStore{}, zap.New(core))

	svc.RecordChat(context.Background(), &models.ChatResponse{
		Category:       models.CategoryUrgent,
		Type:           models.SeverityUrgent,
		Source:         models.SourceLocal,
		Locale:         models.LocaleEnglish,
		CrisisDetected: true,
	})
	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, 3, logs.All()[0].ContextMap()["skipped"])

	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, errStoreDown)
	assert.ErrorIs(t, svc.HealthCheck(context.Background()), errStoreDown)
}

func TestAnalytics_RecordsAfterCancellation(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewAnalyticsService(store, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.RecordScreening(ctx, &models.ScreeningResult{
		Instrument:        models.InstrumentGAD7,
		RiskLevel:         models.RiskSevere,
		NeedImmediateHelp: true,
	})

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"gad7:severe": 1}, snapshot.Metrics[models.MetricScreeningRisk])
	assert.Equal(t, map[string]int64{"gad7": 1}, snapshot.Metrics[models.MetricImmediateHelp])
	assert.False(t, snapshot.GeneratedAt.IsZero())
}
