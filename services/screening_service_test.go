package services

import (
	"context"
	"testing"

	"mitra-support-backend/database"
	"mitra-support-backend/models"
	"mitra-support-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// uniform answers every question of in with value.
func uniform(in *Instrument, value int) models.ScreeningResponseSet {
	set := make(models.ScreeningResponseSet, in.QuestionCount())
	for id := 1; id <= in.QuestionCount(); id++ {
		set[id] = value
	}
	return set
}

// withTotal builds a valid answer set whose values sum to total.
func withTotal(in *Instrument, total int) models.ScreeningResponseSet {
	set := uniform(in, 0)
	for id := 1; id <= in.QuestionCount() && total > 0; id++ {
		v := total
		if v > maxItemValue {
			v = maxItemValue
		}
		set[id] = v
		total -= v
	}
	return set
}

func TestScore_TotalIsSumOfAnswers(t *testing.T) {
	var scorer ScreeningScorer

	responses := models.ScreeningResponseSet{1: 0, 2: 1, 3: 2, 4: 3, 5: 0, 6: 1, 7: 2}
	result, err := scorer.Score(models.InstrumentGAD7, responses, models.LocaleEnglish)
	require.NoError(t, err)

	assert.Equal(t, 9, result.TotalScore)
	assert.Equal(t, 21, result.MaxScore)
	assert.Equal(t, models.RiskMild, result.RiskLevel)
	assert.Equal(t, models.InstrumentGAD7, result.Instrument)
}

func TestScore_Bands(t *testing.T) {
	var scorer ScreeningScorer

	tests := []struct {
		instrument models.InstrumentName
		total      int
		want       models.RiskLevel
	}{
		{models.InstrumentPHQ9, 0, models.RiskMinimal},
		{models.InstrumentPHQ9, 4, models.RiskMinimal},
		{models.InstrumentPHQ9, 5, models.RiskMild},
		{models.InstrumentPHQ9, 9, models.RiskMild},
		{models.InstrumentPHQ9, 10, models.RiskModerate},
		{models.InstrumentPHQ9, 14, models.RiskModerate},
		{models.InstrumentPHQ9, 15, models.RiskModeratelySevere},
		{models.InstrumentPHQ9, 19, models.RiskModeratelySevere},
		{models.InstrumentPHQ9, 20, models.RiskSevere},
		{models.InstrumentPHQ9, 27, models.RiskSevere},
		{models.InstrumentGAD7, 0, models.RiskMinimal},
		{models.InstrumentGAD7, 4, models.RiskMinimal},
		{models.InstrumentGAD7, 5, models.RiskMild},
		{models.InstrumentGAD7, 10, models.RiskModerate},
		{models.InstrumentGAD7, 14, models.RiskModerate},
		{models.InstrumentGAD7, 15, models.RiskSevere},
		{models.InstrumentGAD7, 21, models.RiskSevere},
	}

	for _, tt := range tests {
		in, err := scorer.Lookup(tt.instrument)
		require.NoError(t, err)

		responses := withTotal(in, tt.total)
		// Keep the self-harm item at zero so only the band is under test.
		if in.SelfHarmItem > 0 && responses[in.SelfHarmItem] > 0 {
			continue
		}

		result, err := scorer.Score(tt.instrument, responses, models.LocaleEnglish)
		require.NoError(t, err)
		assert.Equal(t, tt.total, result.TotalScore)
		assert.Equal(t, tt.want, result.RiskLevel, "%s total %d", tt.instrument, tt.total)
	}
}

func TestScore_RiskIsMonotonic(t *testing.T) {
	var scorer ScreeningScorer

	for _, name := range instrumentOrder {
		in, err := scorer.Lookup(name)
		require.NoError(t, err)

		prev := -1
		for total := 0; total <= in.MaxScore(); total++ {
			rank := in.RiskFor(total).Rank()
			require.GreaterOrEqual(t, rank, 0)
			assert.GreaterOrEqual(t, rank, prev, "%s total %d", name, total)
			prev = rank
		}
		assert.Equal(t, in.MostSevere(), in.RiskFor(in.MaxScore()))
	}
}

func TestScore_ScoreWithinRange(t *testing.T) {
	var scorer ScreeningScorer

	for _, name := range instrumentOrder {
		in, _ := scorer.Lookup(name)
		for value := 0; value <= maxItemValue; value++ {
			result, err := scorer.Score(name, uniform(in, value), models.LocaleHindi)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.TotalScore, 0)
			assert.LessOrEqual(t, result.TotalScore, result.MaxScore)
			assert.NotEmpty(t, result.Recommendations)
		}
	}
}

func TestScore_SelfHarmItemRequiresHelp(t *testing.T) {
	var scorer ScreeningScorer

	responses := uniform(phq9, 0)
	responses[9] = 3

	result, err := scorer.Score(models.InstrumentPHQ9, responses, models.LocaleEnglish)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalScore)
	assert.Equal(t, models.RiskMinimal, result.RiskLevel)
	assert.True(t, result.NeedImmediateHelp)
	assert.Contains(t, result.Recommendations, urgentRecommendation[models.LocaleEnglish])
}

func TestScore_TopBandRequiresHelp(t *testing.T) {
	var scorer ScreeningScorer

	result, err := scorer.Score(models.InstrumentPHQ9, uniform(phq9, 3), models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, 27, result.TotalScore)
	assert.Equal(t, models.RiskSevere, result.RiskLevel)
	assert.True(t, result.NeedImmediateHelp)

	result, err = scorer.Score(models.InstrumentGAD7, uniform(gad7, 3), models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, models.RiskSevere, result.RiskLevel)
	assert.True(t, result.NeedImmediateHelp)

	result, err = scorer.Score(models.InstrumentGAD7, uniform(gad7, 2), models.LocaleEnglish)
	require.NoError(t, err)
	assert.Equal(t, models.RiskModerate, result.RiskLevel)
	assert.False(t, result.NeedImmediateHelp)
	assert.NotContains(t, result.Recommendations, urgentRecommendation[models.LocaleEnglish])
}

func TestScore_RecommendationsFollowLocale(t *testing.T) {
	var scorer ScreeningScorer

	result, err := scorer.Score(models.InstrumentGAD7, uniform(gad7, 1), models.LocaleHindi)
	require.NoError(t, err)
	assert.Equal(t, recommendations[models.RiskMild][models.LocaleHindi], result.Recommendations)
}

func TestScore_RejectsIncompleteSets(t *testing.T) {
	var scorer ScreeningScorer

	missing := uniform(phq9, 1)
	delete(missing, 4)

	outOfRange := uniform(phq9, 1)
	outOfRange[2] = 4

	negative := uniform(phq9, 1)
	negative[2] = -1

	extra := uniform(gad7, 1)
	extra[8] = 0

	zeroID := uniform(gad7, 1)
	zeroID[0] = 1

	tests := []struct {
		name       string
		instrument models.InstrumentName
		responses  models.ScreeningResponseSet
	}{
		{"missing question", models.InstrumentPHQ9, missing},
		{"value above range", models.InstrumentPHQ9, outOfRange},
		{"negative value", models.InstrumentPHQ9, negative},
		{"unknown question id", models.InstrumentGAD7, extra},
		{"zero question id", models.InstrumentGAD7, zeroID},
		{"empty", models.InstrumentGAD7, models.ScreeningResponseSet{}},
		{"gad7 answers for phq9", models.InstrumentPHQ9, uniform(gad7, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(tt.instrument, tt.responses, models.LocaleEnglish)
			assert.ErrorIs(t, err, ErrIncompleteResponseSet)
			assert.Nil(t, result)
		})
	}
}

func TestScore_UnknownInstrumentAndLocale(t *testing.T) {
	var scorer ScreeningScorer

	_, err := scorer.Score("ghq12", models.ScreeningResponseSet{1: 0}, models.LocaleEnglish)
	assert.ErrorIs(t, err, ErrUnknownInstrument)

	_, err = scorer.Score(models.InstrumentGAD7, uniform(gad7, 0), "fr")
	assert.ErrorIs(t, err, utils.ErrInvalidLocale)
}

func TestScreeningService_Submit(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewScreeningService(NewAnalyticsService(store, zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	responses := uniform(phq9, 0)
	responses[9] = 1
	result, err := svc.Submit(ctx, models.InstrumentPHQ9, models.ScreeningRequest{Responses: responses}, models.LocaleEnglish)
	require.NoError(t, err)
	assert.True(t, result.NeedImmediateHelp)

	_, err = svc.Submit(ctx, models.InstrumentGAD7, models.ScreeningRequest{Responses: models.ScreeningResponseSet{1: 2}}, models.LocaleEnglish)
	assert.ErrorIs(t, err, ErrIncompleteResponseSet)

	snapshot, err := NewAnalyticsService(store, zap.NewNop()).Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"phq9:minimal": 1}, snapshot.Metrics[models.MetricScreeningRisk])
	assert.Equal(t, map[string]int64{"phq9": 1}, snapshot.Metrics[models.MetricImmediateHelp])
}

func TestScreeningService_Instruments(t *testing.T) {
	svc := NewScreeningService(NewAnalyticsService(database.NewMemoryStore(), zap.NewNop()), zap.NewNop())

	list := svc.Instruments(models.LocaleEnglish)
	require.Len(t, list, 2)
	assert.Equal(t, models.InstrumentPHQ9, list[0].Name)
	assert.Equal(t, 9, list[0].QuestionCount)
	assert.Equal(t, models.InstrumentGAD7, list[1].Name)
	assert.Equal(t, 7, list[1].QuestionCount)

	view, err := svc.Instrument(models.InstrumentGAD7, models.LocaleHindi)
	require.NoError(t, err)
	assert.Equal(t, models.LocaleHindi, view.Locale)
	require.Len(t, view.Questions, 7)
	assert.Equal(t, 1, view.Questions[0].ID)
	assert.Equal(t, "घबराहट, चिंता या बेचैनी महसूस करना", view.Questions[0].Prompt)
	require.Len(t, view.Questions[0].Options, 4)
	assert.Equal(t, 3, view.Questions[0].Options[3].Value)
	assert.Equal(t, "लगभग हर दिन", view.Questions[0].Options[3].Label)

	_, err = svc.Instrument("unknown", models.LocaleEnglish)
	assert.ErrorIs(t, err, ErrUnknownInstrument)
}
