package models

// Locale selects which lexicon and response variant is used.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleHindi   Locale = "hi"
)

// SupportedLocales lists locales in preference order.
var SupportedLocales = []Locale{LocaleEnglish, LocaleHindi}

// IsSupported reports whether l has a lexicon and response bundle.
func (l Locale) IsSupported() bool {
	for _, s := range SupportedLocales {
		if l == s {
			return true
		}
	}
	return false
}

// TopicCategory is the single support topic a chat message is mapped to.
type TopicCategory string

const (
	CategoryUrgent        TopicCategory = "urgent"
	CategoryAnxiety       TopicCategory = "anxiety"
	CategoryStress        TopicCategory = "stress"
	CategoryDepression    TopicCategory = "depression"
	CategorySleep         TopicCategory = "sleep"
	CategoryLoneliness    TopicCategory = "loneliness"
	CategoryAcademic      TopicCategory = "academic"
	CategoryRelationships TopicCategory = "relationships"
	CategoryMotivation    TopicCategory = "motivation"
	CategoryGreeting      TopicCategory = "greeting"
	CategoryThanks        TopicCategory = "thanks"
	CategoryPositive      TopicCategory = "positive"
	CategoryDefault       TopicCategory = "default"
)

// Severity drives how a classified reply is presented.
type Severity string

const (
	SeverityUrgent   Severity = "urgent"
	SeverityResource Severity = "resource"
	SeverityNormal   Severity = "normal"
)

// SeverityFor derives the severity tag of a category.
func SeverityFor(category TopicCategory) Severity {
	switch category {
	case CategoryUrgent:
		return SeverityUrgent
	case CategoryAnxiety, CategoryStress, CategoryDepression, CategorySleep,
		CategoryLoneliness, CategoryAcademic, CategoryRelationships, CategoryMotivation:
		return SeverityResource
	default:
		return SeverityNormal
	}
}

// Sentiment is a coarse polarity estimate of the user's message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ReplySource records whether a chat reply came from this service or the
// optional remote service.
type ReplySource string

const (
	SourceLocal  ReplySource = "local"
	SourceRemote ReplySource = "remote"
)

// Classification is the output of the topic classifier.
type Classification struct {
	Category     TopicCategory `json:"category"`
	Severity     Severity      `json:"severity"`
	ResponseText string        `json:"response_text"`
	Locale       Locale        `json:"locale"`
	Matched      []string      `json:"matched,omitempty"`
	FollowUps    []string      `json:"follow_up_questions,omitempty"`
}

// ChatRequest is the body of POST /api/chat/send and of a websocket frame.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Lang      string `json:"lang,omitempty"`
}

// ChatResponse is what the chat UI renders.
type ChatResponse struct {
	SessionID      string        `json:"session_id"`
	Response       string        `json:"response"`
	Type           Severity      `json:"type"`
	Category       TopicCategory `json:"category"`
	Locale         Locale        `json:"locale"`
	Source         ReplySource   `json:"source"`
	CrisisDetected bool          `json:"crisis_detected"`
	CrisisKeywords []string      `json:"crisis_keywords,omitempty"`
	FollowUps      []string      `json:"follow_up_questions,omitempty"`
	Sentiment      Sentiment     `json:"sentiment"`
	Actions        []Action      `json:"actions,omitempty"`
}

// Action is a UI affordance attached to a reply, e.g. a helpline to call.
type Action struct {
	Type    string                 `json:"type"`
	Label   string                 `json:"label"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// CategoryInfo describes one row of the classifier priority table.
type CategoryInfo struct {
	Category TopicCategory `json:"category"`
	Priority int           `json:"priority"`
	Severity Severity      `json:"severity"`
}

// AllCategories enumerates every topic category.
var AllCategories = []TopicCategory{
	CategoryUrgent,
	CategoryAnxiety,
	CategoryStress,
	CategoryDepression,
	CategorySleep,
	CategoryLoneliness,
	CategoryAcademic,
	CategoryRelationships,
	CategoryMotivation,
	CategoryGreeting,
	CategoryThanks,
	CategoryPositive,
	CategoryDefault,
}
