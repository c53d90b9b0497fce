package utils

import (
	"errors"
	"fmt"

	"mitra-support-backend/content"
	"mitra-support-backend/models"
)

var ErrInvalidLocale = errors.New("invalid locale")

// categoryPriority is the order categories are tried in; the first match
// wins. urgent must stay first so a topical keyword never hides a crisis
// phrase. default is the catch-all and must stay last.
var categoryPriority = []models.TopicCategory{
	models.CategoryUrgent,
	models.CategoryAnxiety,
	models.CategoryStress,
	models.CategoryDepression,
	models.CategorySleep,
	models.CategoryLoneliness,
	models.CategoryAcademic,
	models.CategoryRelationships,
	models.CategoryMotivation,
	models.CategoryGreeting,
	models.CategoryThanks,
	models.CategoryPositive,
	models.CategoryDefault,
}

// CategoryPriority returns a copy of the evaluation order.
func CategoryPriority() []models.TopicCategory {
	out := make([]models.TopicCategory, len(categoryPriority))
	copy(out, categoryPriority)
	return out
}

// matcher reports the phrases of its category found in normalized text.
type matcher func(text string, locale models.Locale) []string

type rule struct {
	category models.TopicCategory
	match    matcher
}

// TopicClassifier maps a chat message to a crisis flag or a support topic
// and the canned reply for it. It holds only read-only tables and is safe
// for concurrent use.
type TopicClassifier struct {
	library *content.Library
	rules   []rule
}

// NewTopicClassifier builds the rule table. The library must pass
// Validate, which every library from content.Parse or content.Default does.
func NewTopicClassifier(library *content.Library) (*TopicClassifier, error) {
	if library == nil {
		return nil, errors.New("topic classifier: nil content library")
	}
	if err := library.Validate(); err != nil {
		return nil, fmt.Errorf("topic classifier: %w", err)
	}

	tc := &TopicClassifier{library: library}

	crisis := crisisPhrases(library)
	topical := make(map[models.Locale]map[models.TopicCategory][]string, len(models.SupportedLocales))
	for _, locale := range models.SupportedLocales {
		topical[locale] = make(map[models.TopicCategory][]string)
		for _, category := range categoryPriority {
			topical[locale][category] = normalizeAll(library.Phrases(category, locale))
		}
	}

	for _, category := range categoryPriority {
		category := category
		var m matcher
		switch category {
		case models.CategoryUrgent:
			// Crisis phrases from every locale apply whatever the active locale is.
			m = func(text string, _ models.Locale) []string {
				return containsAny(text, crisis)
			}
		case models.CategoryDefault:
			m = func(string, models.Locale) []string {
				return []string{}
			}
		default:
			m = func(text string, locale models.Locale) []string {
				return containsAny(text, topical[locale][category])
			}
		}
		tc.rules = append(tc.rules, rule{category: category, match: m})
	}

	return tc, nil
}

// Classify returns the first category in priority order whose lexicon
// occurs in text, with its severity and the reply in the given locale.
func (tc *TopicClassifier) Classify(text string, locale models.Locale) (models.Classification, error) {
	if !locale.IsSupported() {
		return models.Classification{}, fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}

	normalized := Normalize(text)

	for _, r := range tc.rules {
		matched := r.match(normalized, locale)
		if matched == nil {
			continue
		}

		resp, ok := tc.library.Response(r.category, locale)
		if !ok {
			// NewTopicClassifier validated every pair.
			panic(fmt.Sprintf("no response for %s/%s", r.category, locale))
		}

		return models.Classification{
			Category:     r.category,
			Severity:     models.SeverityFor(r.category),
			ResponseText: resp.Text,
			Locale:       locale,
			Matched:      matched,
			FollowUps:    resp.FollowUps,
		}, nil
	}

	panic("default rule did not match")
}

// Priorities describes the evaluation order for auditing.
func (tc *TopicClassifier) Priorities() []models.CategoryInfo {
	infos := make([]models.CategoryInfo, 0, len(tc.rules))
	for i, r := range tc.rules {
		infos = append(infos, models.CategoryInfo{
			Category: r.category,
			Priority: i + 1,
			Severity: models.SeverityFor(r.category),
		})
	}
	return infos
}

func crisisPhrases(library *content.Library) []string {
	seen := make(map[string]bool)
	var phrases []string
	for _, locale := range models.SupportedLocales {
		for _, phrase := range normalizeAll(library.Phrases(models.CategoryUrgent, locale)) {
			if !seen[phrase] {
				seen[phrase] = true
				phrases = append(phrases, phrase)
			}
		}
	}
	return phrases
}

func normalizeAll(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if n := Normalize(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}
