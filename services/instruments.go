package services

import (
	"mitra-support-backend/models"
)

type localized map[models.Locale]string

// band is the upper bound (inclusive) of a risk level.
type band struct {
	level models.RiskLevel
	max   int
}

// Instrument is a fixed screening questionnaire.
type Instrument struct {
	Name        models.InstrumentName
	Title       localized
	Description localized
	Duration    string
	Prompts     []localized
	// SelfHarmItem is the 1-based question id whose nonzero answer always
	// requires immediate help; 0 means the instrument has none.
	SelfHarmItem int
	Bands        []band
}

// likertLabels are shared by every question of every instrument.
var likertLabels = map[models.Locale][4]string{
	models.LocaleEnglish: {"Not at all", "Several days", "More than half the days", "Nearly every day"},
	models.LocaleHindi:   {"बिल्कुल नहीं", "कुछ दिन", "आधे से ज़्यादा दिन", "लगभग हर दिन"},
}

const maxItemValue = 3

var phq9 = &Instrument{
	Name: models.InstrumentPHQ9,
	Title: localized{
		models.LocaleEnglish: "PHQ-9 Depression Screening",
		models.LocaleHindi:   "PHQ-9 अवसाद जांच",
	},
	Description: localized{
		models.LocaleEnglish: "A standardized screening tool for depression symptoms",
		models.LocaleHindi:   "अवसाद के लक्षणों की जांच के लिए एक मानक प्रश्नावली",
	},
	Duration: "3-5 minutes",
	Prompts: []localized{
		{models.LocaleEnglish: "Little interest or pleasure in doing things", models.LocaleHindi: "काम करने में कम रुचि या आनंद"},
		{models.LocaleEnglish: "Feeling down, depressed, or hopeless", models.LocaleHindi: "उदास, निराश या हताश महसूस करना"},
		{models.LocaleEnglish: "Trouble falling or staying asleep, or sleeping too much", models.LocaleHindi: "नींद आने या बने रहने में परेशानी, या बहुत ज़्यादा सोना"},
		{models.LocaleEnglish: "Feeling tired or having little energy", models.LocaleHindi: "थकान या ऊर्जा की कमी महसूस करना"},
		{models.LocaleEnglish: "Poor appetite or overeating", models.LocaleHindi: "भूख कम लगना या ज़्यादा खाना"},
		{models.LocaleEnglish: "Feeling bad about yourself or that you are a failure or have let yourself or your family down", models.LocaleHindi: "अपने बारे में बुरा महसूस करना, या लगना कि आप असफल हैं या आपने खुद को या परिवार को निराश किया है"},
		{models.LocaleEnglish: "Trouble concentrating on things, such as reading the newspaper or watching television", models.LocaleHindi: "चीज़ों पर ध्यान लगाने में परेशानी, जैसे अखबार पढ़ना या टीवी देखना"},
		{models.LocaleEnglish: "Moving or speaking so slowly that other people could have noticed, or the opposite - being so fidgety or restless that you have been moving around a lot more than usual", models.LocaleHindi: "इतना धीरे चलना या बोलना कि दूसरों ने ध्यान दिया हो, या इसके उलट इतना बेचैन रहना कि आप सामान्य से ज़्यादा इधर-उधर घूमते रहे हों"},
		{models.LocaleEnglish: "Thoughts that you would be better off dead, or of hurting yourself in some way", models.LocaleHindi: "ऐसे विचार कि आपका मर जाना बेहतर होगा, या किसी तरह खुद को नुकसान पहुंचाने के विचार"},
	},
	SelfHarmItem: 9,
	Bands: []band{
		{models.RiskMinimal, 4},
		{models.RiskMild, 9},
		{models.RiskModerate, 14},
		{models.RiskModeratelySevere, 19},
		{models.RiskSevere, 27},
	},
}

var gad7 = &Instrument{
	Name: models.InstrumentGAD7,
	Title: localized{
		models.LocaleEnglish: "GAD-7 Anxiety Screening",
		models.LocaleHindi:   "GAD-7 चिंता जांच",
	},
	Description: localized{
		models.LocaleEnglish: "Assessment for generalized anxiety disorder",
		models.LocaleHindi:   "सामान्यीकृत चिंता विकार का आकलन",
	},
	Duration: "2-4 minutes",
	Prompts: []localized{
		{models.LocaleEnglish: "Feeling nervous, anxious or on edge", models.LocaleHindi: "घबराहट, चिंता या बेचैनी महसूस करना"},
		{models.LocaleEnglish: "Not being able to stop or control worrying", models.LocaleHindi: "चिंता को रोक या काबू न कर पाना"},
		{models.LocaleEnglish: "Worrying too much about different things", models.LocaleHindi: "अलग-अलग बातों को लेकर बहुत ज़्यादा चिंता करना"},
		{models.LocaleEnglish: "Trouble relaxing", models.LocaleHindi: "आराम करने में परेशानी"},
		{models.LocaleEnglish: "Being so restless that it is hard to sit still", models.LocaleHindi: "इतना बेचैन रहना कि शांत बैठना मुश्किल हो"},
		{models.LocaleEnglish: "Becoming easily annoyed or irritable", models.LocaleHindi: "आसानी से नाराज़ या चिड़चिड़ा हो जाना"},
		{models.LocaleEnglish: "Feeling afraid as if something awful might happen", models.LocaleHindi: "डर लगना जैसे कुछ बहुत बुरा होने वाला है"},
	},
	Bands: []band{
		{models.RiskMinimal, 4},
		{models.RiskMild, 9},
		{models.RiskModerate, 14},
		{models.RiskSevere, 21},
	},
}

var instruments = map[models.InstrumentName]*Instrument{
	models.InstrumentPHQ9: phq9,
	models.InstrumentGAD7: gad7,
}

// instrumentOrder fixes the listing order.
var instrumentOrder = []models.InstrumentName{models.InstrumentPHQ9, models.InstrumentGAD7}

// QuestionCount is the number of items in the instrument.
func (in *Instrument) QuestionCount() int {
	return len(in.Prompts)
}

// MaxScore is the highest possible total.
func (in *Instrument) MaxScore() int {
	return maxItemValue * in.QuestionCount()
}

// RiskFor maps a total score onto the instrument's bands.
func (in *Instrument) RiskFor(total int) models.RiskLevel {
	for _, b := range in.Bands {
		if total <= b.max {
			return b.level
		}
	}
	return in.Bands[len(in.Bands)-1].level
}

// MostSevere is the top band of the instrument.
func (in *Instrument) MostSevere() models.RiskLevel {
	return in.Bands[len(in.Bands)-1].level
}

// Questions returns the localised question list; ids are 1-based.
func (in *Instrument) Questions(locale models.Locale) []models.Question {
	labels := likertLabels[locale]
	questions := make([]models.Question, 0, len(in.Prompts))
	for i, prompt := range in.Prompts {
		options := make([]models.Option, 0, len(labels))
		for value, label := range labels {
			options = append(options, models.Option{Value: value, Label: label})
		}
		questions = append(questions, models.Question{
			ID:      i + 1,
			Prompt:  prompt[locale],
			Options: options,
		})
	}
	return questions
}

// Summary returns the listing view of the instrument.
func (in *Instrument) Summary(locale models.Locale) models.InstrumentSummary {
	return models.InstrumentSummary{
		Name:          in.Name,
		Title:         in.Title[locale],
		Description:   in.Description[locale],
		Duration:      in.Duration,
		QuestionCount: in.QuestionCount(),
	}
}
