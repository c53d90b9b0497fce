package middleware

import (
	"mitra-support-backend/models"
	"mitra-support-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	localeKey      = "locale"
	localeErrorKey = "locale_error"
)

// Locale resolves the request locale from the lang query parameter, then
// Accept-Language, then defaultLocale. An unsupported query lang is kept as
// an error for ResolveLocale, since a lang field in the body still wins.
func Locale(defaultLocale models.Locale) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := utils.MatchAcceptLanguage(c.GetHeader("Accept-Language"), defaultLocale)

		if q, ok := c.GetQuery("lang"); ok {
			parsed, err := utils.ParseLocale(q)
			if err != nil {
				c.Set(localeErrorKey, err)
			} else {
				locale = parsed
			}
		}

		c.Set(localeKey, locale)
		c.Next()
	}
}

// GetLocale returns the locale stored by Locale, or English when the
// middleware did not run. It ignores an invalid query lang; handlers that
// honour ?lang= use ResolveLocale.
func GetLocale(c *gin.Context) models.Locale {
	if v, ok := c.Get(localeKey); ok {
		if l, ok := v.(models.Locale); ok {
			return l
		}
	}
	return models.LocaleEnglish
}

// ResolveLocale applies a lang field from the request body on top of the
// locale chosen by the middleware. Without one, an unsupported query lang
// is an error.
func ResolveLocale(c *gin.Context, bodyLang string) (models.Locale, error) {
	if bodyLang != "" {
		return utils.ParseLocale(bodyLang)
	}
	if v, ok := c.Get(localeErrorKey); ok {
		if err, ok := v.(error); ok {
			return "", err
		}
	}
	return GetLocale(c), nil
}
