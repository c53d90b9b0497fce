package utils

import (
	"fmt"
	"strings"

	"mitra-support-backend/models"

	"golang.org/x/text/language"
)

var localeMatcher = newLocaleMatcher()

func newLocaleMatcher() language.Matcher {
	tags := make([]language.Tag, 0, len(models.SupportedLocales))
	for _, l := range models.SupportedLocales {
		tags = append(tags, language.Make(string(l)))
	}
	return language.NewMatcher(tags)
}

// ParseLocale validates an explicit locale choice. Region and script
// subtags are ignored, so "hi-IN" selects Hindi.
func ParseLocale(raw string) (models.Locale, error) {
	raw = strings.TrimSpace(raw)
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, raw)
	}
	base, _ := tag.Base()
	locale := models.Locale(base.String())
	if !locale.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, raw)
	}
	return locale, nil
}

// MatchAcceptLanguage picks the best supported locale for an
// Accept-Language header, or fallback when nothing matches.
func MatchAcceptLanguage(header string, fallback models.Locale) models.Locale {
	if strings.TrimSpace(header) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return models.SupportedLocales[index]
}
