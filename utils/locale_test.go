package utils

import (
	"testing"

	"mitra-support-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want models.Locale
	}{
		{"en", models.LocaleEnglish},
		{"EN", models.LocaleEnglish},
		{" hi ", models.LocaleHindi},
		{"hi-IN", models.LocaleHindi},
		{"en-GB", models.LocaleEnglish},
	}
	for _, tt := range tests {
		got, err := ParseLocale(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	for _, raw := range []string{"fr", "ur", "", "not a tag!"} {
		_, err := ParseLocale(raw)
		assert.ErrorIs(t, err, ErrInvalidLocale, raw)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	assert.Equal(t, models.LocaleHindi, MatchAcceptLanguage("hi-IN,hi;q=0.9,en;q=0.8", models.LocaleEnglish))
	assert.Equal(t, models.LocaleEnglish, MatchAcceptLanguage("en-US,en;q=0.9", models.LocaleHindi))
	assert.Equal(t, models.LocaleHindi, MatchAcceptLanguage("", models.LocaleHindi))
	assert.Equal(t, models.LocaleHindi, MatchAcceptLanguage("ja", models.LocaleHindi))
	assert.Equal(t, models.LocaleEnglish, MatchAcceptLanguage(";;;", models.LocaleEnglish))
}
