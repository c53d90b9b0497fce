// Package content holds the static keyword lexicons and canned replies used
// by the chat classifier. The YAML sources are embedded into the binary and
// parsed once per process.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"mitra-support-backend/models"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

//go:embed responses.yaml
var responsesYAML []byte

var (
	ErrMissingResponse = errors.New("missing response")
	ErrMissingLexicon  = errors.New("missing lexicon")
)

// Response is one canned reply.
type Response struct {
	Text      string          `yaml:"text"`
	FollowUps []string        `yaml:"follow_ups"`
	Severity  models.Severity `yaml:"-"`
}

// Library is the immutable lexicon and response bundle. Callers must not
// modify the maps or slices it returns.
type Library struct {
	lexicon      map[models.Locale]map[models.TopicCategory][]string
	responses    map[models.TopicCategory]map[models.Locale]Response
	quickReplies map[models.Locale][]string
}

type responsesFile struct {
	Responses    map[models.TopicCategory]map[models.Locale]Response `yaml:"responses"`
	QuickReplies map[models.Locale][]string                          `yaml:"quick_replies"`
}

// Default returns the library parsed from the embedded sources.
var Default = sync.OnceValues(Load)

// Load parses the embedded sources.
func Load() (*Library, error) {
	return Parse(lexiconYAML, responsesYAML)
}

// Parse builds a library from raw YAML and checks that every category has
// phrases and replies for every supported locale.
func Parse(lexiconData, responsesData []byte) (*Library, error) {
	lib := &Library{}

	if err := yaml.Unmarshal(lexiconData, &lib.lexicon); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}

	var rf responsesFile
	if err := yaml.Unmarshal(responsesData, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse responses: %w", err)
	}
	lib.responses = rf.Responses
	lib.quickReplies = rf.QuickReplies

	if err := lib.Validate(); err != nil {
		return nil, err
	}

	for category, byLocale := range lib.responses {
		for locale, resp := range byLocale {
			resp.Severity = models.SeverityFor(category)
			byLocale[locale] = resp
		}
	}

	return lib, nil
}

// Validate checks that every category has phrases and replies in every
// supported locale. Parse calls it; a hand-built Library fails it.
func (l *Library) Validate() error {
	for locale := range l.lexicon {
		if !locale.IsSupported() {
			return fmt.Errorf("lexicon has unsupported locale %q", locale)
		}
	}

	for _, locale := range models.SupportedLocales {
		phrases := l.lexicon[locale]
		for category := range phrases {
			if category == models.CategoryDefault || !isKnown(category) {
				return fmt.Errorf("lexicon %s: unexpected category %q", locale, category)
			}
		}
		for _, category := range models.AllCategories {
			if category == models.CategoryDefault {
				continue
			}
			if len(phrases[category]) == 0 {
				return fmt.Errorf("%w: %s/%s", ErrMissingLexicon, category, locale)
			}
		}
	}

	for category := range l.responses {
		if !isKnown(category) {
			return fmt.Errorf("responses: unknown category %q", category)
		}
	}
	for _, category := range models.AllCategories {
		for _, locale := range models.SupportedLocales {
			if l.responses[category][locale].Text == "" {
				return fmt.Errorf("%w: %s/%s", ErrMissingResponse, category, locale)
			}
		}
	}

	return nil
}

func isKnown(category models.TopicCategory) bool {
	for _, c := range models.AllCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Phrases returns the lexicon of a category in one locale.
func (l *Library) Phrases(category models.TopicCategory, locale models.Locale) []string {
	return l.lexicon[locale][category]
}

// Response returns the canned reply for a category in one locale.
func (l *Library) Response(category models.TopicCategory, locale models.Locale) (Response, bool) {
	resp, ok := l.responses[category][locale]
	return resp, ok
}

// QuickReplies returns suggested openers for the chat UI.
func (l *Library) QuickReplies(locale models.Locale) []string {
	return l.quickReplies[locale]
}
