package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"mitra-support-backend/models"
	"mitra-support-backend/utils"

	"go.uber.org/zap"
)

var (
	ErrIncompleteResponseSet = models.ErrIncompleteResponseSet
	ErrUnknownInstrument     = errors.New("unknown instrument")
)

// recommendations by band. Every band has at least one line.
var recommendations = map[models.RiskLevel]map[models.Locale][]string{
	models.RiskMinimal: {
		models.LocaleEnglish: {
			"Keep up your current routines for sleep, meals and exercise",
			"Check in with yourself again in a few weeks",
		},
		models.LocaleHindi: {
			"नींद, भोजन और व्यायाम की अपनी मौजूदा दिनचर्या बनाए रखें",
			"कुछ हफ्तों बाद फिर से अपनी जांच करें",
		},
	},
	models.RiskMild: {
		models.LocaleEnglish: {
			"Practice stress management techniques",
			"Maintain a regular sleep schedule",
			"Connect with your support network",
		},
		models.LocaleHindi: {
			"तनाव प्रबंधन की तकनीकें अपनाएं",
			"सोने का नियमित समय बनाए रखें",
			"अपने करीबी लोगों से जुड़े रहें",
		},
	},
	models.RiskModerate: {
		models.LocaleEnglish: {
			"Consider booking a session with a counselor",
			"Join our peer support community",
			"Practice daily mindfulness exercises",
		},
		models.LocaleHindi: {
			"किसी काउंसलर के साथ सत्र बुक करने पर विचार करें",
			"हमारे पीयर सपोर्ट समुदाय से जुड़ें",
			"रोज़ माइंडफुलनेस अभ्यास करें",
		},
	},
	models.RiskModeratelySevere: {
		models.LocaleEnglish: {
			"Book a session with a counselor soon",
			"Join our peer support community",
			"Practice daily mindfulness exercises",
		},
		models.LocaleHindi: {
			"जल्द ही किसी काउंसलर के साथ सत्र बुक करें",
			"हमारे पीयर सपोर्ट समुदाय से जुड़ें",
			"रोज़ माइंडफुलनेस अभ्यास करें",
		},
	},
	models.RiskSevere: {
		models.LocaleEnglish: {
			"Book a session with a counselor as soon as possible",
			"Let someone you trust know how you are feeling",
		},
		models.LocaleHindi: {
			"जितनी जल्दी हो सके किसी काउंसलर के साथ सत्र बुक करें",
			"किसी भरोसेमंद व्यक्ति को बताएं कि आप कैसा महसूस कर रहे हैं",
		},
	},
}

var urgentRecommendation = map[models.Locale]string{
	models.LocaleEnglish: "Urgent: Please contact mental health services immediately (Emergency 112, Kashmir Mental Health Helpline 01942506062)",
	models.LocaleHindi:   "ज़रूरी: कृपया तुरंत मानसिक स्वास्थ्य सेवाओं से संपर्क करें (आपातकाल 112, कश्मीर मानसिक स्वास्थ्य हेल्पलाइन 01942506062)",
}

// ScreeningScorer turns a complete set of answers into a result. It has
// no state and is safe for concurrent use.
type ScreeningScorer struct{}

// Lookup returns the named instrument.
func (ScreeningScorer) Lookup(name models.InstrumentName) (*Instrument, error) {
	in, ok := instruments[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, name)
	}
	return in, nil
}

// Score validates responses against the instrument and computes the total,
// risk band, recommendations and escalation flag.
func (s ScreeningScorer) Score(name models.InstrumentName, responses models.ScreeningResponseSet, locale models.Locale) (*models.ScreeningResult, error) {
	in, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !locale.IsSupported() {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidLocale, locale)
	}
	if err := validateResponses(in, responses); err != nil {
		return nil, err
	}

	total := 0
	for _, value := range responses {
		total += value
	}

	risk := in.RiskFor(total)
	needHelp := risk == in.MostSevere()
	if in.SelfHarmItem > 0 && responses[in.SelfHarmItem] > 0 {
		needHelp = true
	}

	recs := append([]string{}, recommendations[risk][locale]...)
	if needHelp {
		recs = append(recs, urgentRecommendation[locale])
	}

	return &models.ScreeningResult{
		Instrument:        in.Name,
		TotalScore:        total,
		MaxScore:          in.MaxScore(),
		RiskLevel:         risk,
		Recommendations:   recs,
		NeedImmediateHelp: needHelp,
	}, nil
}

func validateResponses(in *Instrument, responses models.ScreeningResponseSet) error {
	var missing []int
	for id := 1; id <= in.QuestionCount(); id++ {
		value, ok := responses[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if value < 0 || value > maxItemValue {
			return fmt.Errorf("%w: question %d has value %d, want 0-%d", ErrIncompleteResponseSet, id, value, maxItemValue)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing questions %v", ErrIncompleteResponseSet, in.Name, missing)
	}

	if len(responses) != in.QuestionCount() {
		var unknown []int
		for id := range responses {
			if id < 1 || id > in.QuestionCount() {
				unknown = append(unknown, id)
			}
		}
		sort.Ints(unknown)
		return fmt.Errorf("%w: %s has no questions %v", ErrIncompleteResponseSet, in.Name, unknown)
	}

	return nil
}

// ScreeningService is the application wrapper around the scorer.
type ScreeningService struct {
	scorer    ScreeningScorer
	analytics *AnalyticsService
	logger    *zap.Logger
}

func NewScreeningService(analytics *AnalyticsService, logger *zap.Logger) *ScreeningService {
	return &ScreeningService{
		analytics: analytics,
		logger:    logger,
	}
}

// Submit scores a submission and records the band in the aggregate counters.
func (s *ScreeningService) Submit(ctx context.Context, name models.InstrumentName, req models.ScreeningRequest, locale models.Locale) (*models.ScreeningResult, error) {
	result, err := s.scorer.Score(name, req.Responses, locale)
	if err != nil {
		s.logger.Debug("Screening rejected",
			zap.String("instrument", string(name)),
			zap.Int("answers", len(req.Responses)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Screening scored",
		zap.String("instrument", string(result.Instrument)),
		zap.String("risk_level", string(result.RiskLevel)),
		zap.Bool("need_immediate_help", result.NeedImmediateHelp))

	s.analytics.RecordScreening(ctx, result)

	return result, nil
}

// Instruments lists every instrument in the given locale.
func (s *ScreeningService) Instruments(locale models.Locale) []models.InstrumentSummary {
	summaries := make([]models.InstrumentSummary, 0, len(instrumentOrder))
	for _, name := range instrumentOrder {
		summaries = append(summaries, instruments[name].Summary(locale))
	}
	return summaries
}

// Instrument returns the localised questionnaire.
func (s *ScreeningService) Instrument(name models.InstrumentName, locale models.Locale) (*models.InstrumentView, error) {
	in, err := s.scorer.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &models.InstrumentView{
		InstrumentSummary: in.Summary(locale),
		Locale:            locale,
		Questions:         in.Questions(locale),
	}, nil
}
