package controllers

import (
	"context"
	"net/http"
	"time"

	"mitra-support-backend/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetAnalytics returns aggregate usage counters for the admin dashboard.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	snapshot, err := ac.analyticsService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Health reports service status and whether the counter store answers.
func (ac *AnalyticsController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code, database := "ok", http.StatusOK, "ok"
	if err := ac.analyticsService.HealthCheck(ctx); err != nil {
		_ = c.Error(err)
		status, code, database = "degraded", http.StatusServiceUnavailable, "unavailable"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}
