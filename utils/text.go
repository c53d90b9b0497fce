package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares text for case-insensitive substring matching. Hindi
// input often mixes precomposed and decomposed nukta forms, so both sides of
// a comparison go through NFC before folding.
func Normalize(text string) string {
	folder := cases.Fold()
	return folder.String(norm.NFC.String(strings.TrimSpace(text)))
}

func containsAny(text string, phrases []string) []string {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			matched = append(matched, phrase)
		}
	}
	return matched
}
