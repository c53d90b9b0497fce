package controllers

import (
	"errors"
	"net/http"
	"strings"

	"mitra-support-backend/middleware"
	"mitra-support-backend/models"
	"mitra-support-backend/services"

	"github.com/gin-gonic/gin"
)

type ScreeningController struct {
	screeningService *services.ScreeningService
}

func NewScreeningController(screeningService *services.ScreeningService) *ScreeningController {
	return &ScreeningController{
		screeningService: screeningService,
	}
}

// ListInstruments returns every available questionnaire.
func (sc *ScreeningController) ListInstruments(c *gin.Context) {
	locale, err := middleware.ResolveLocale(c, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"instruments": sc.screeningService.Instruments(locale),
		"locale":      locale,
	})
}

// GetInstrument returns one questionnaire with its questions.
func (sc *ScreeningController) GetInstrument(c *gin.Context) {
	locale, err := middleware.ResolveLocale(c, "")
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := sc.screeningService.Instrument(instrumentParam(c), locale)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit scores a completed questionnaire.
func (sc *ScreeningController) Submit(c *gin.Context) {
	var req models.ScreeningRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, services.ErrIncompleteResponseSet) {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	locale, err := middleware.ResolveLocale(c, req.Lang)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := sc.screeningService.Submit(c.Request.Context(), instrumentParam(c), req, locale)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func instrumentParam(c *gin.Context) models.InstrumentName {
	return models.InstrumentName(strings.ToLower(c.Param("type")))
}
