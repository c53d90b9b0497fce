package controllers

import (
	"errors"
	"net/http"

	"mitra-support-backend/models"
	"mitra-support-backend/services"
	"mitra-support-backend/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, utils.ErrInvalidLocale),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrMessageTooLong),
		errors.Is(err, services.ErrIncompleteResponseSet):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownInstrument):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Internal errors are recorded on the
// context for the request logger and not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	if errors.Is(err, utils.ErrInvalidLocale) {
		body["supported"] = models.SupportedLocales
	}
	c.JSON(status, body)
}
