package utils

import (
	"mitra-support-backend/models"
)

var (
	positiveWords = normalizeAll([]string{
		"good", "better", "happy", "great", "fine", "okay", "well",
		"अच्छा", "बेहतर", "खुश", "ठीक",
	})
	negativeWords = normalizeAll([]string{
		"bad", "worse", "terrible", "awful", "horrible", "sad", "angry",
		"बुरा", "खराब", "उदास", "गुस्सा", "दुखी",
	})
)

// AnalyzeSentiment compares counts of positive and negative cue words.
func AnalyzeSentiment(text string) models.Sentiment {
	normalized := Normalize(text)
	positive := len(containsAny(normalized, positiveWords))
	negative := len(containsAny(normalized, negativeWords))

	switch {
	case negative > positive:
		return models.SentimentNegative
	case positive > negative:
		return models.SentimentPositive
	default:
		return models.SentimentNeutral
	}
}
