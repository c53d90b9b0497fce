package routes

import (
	"net/http"

	"mitra-support-backend/config"
	"mitra-support-backend/content"
	"mitra-support-backend/controllers"
	"mitra-support-backend/middleware"
	"mitra-support-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the middleware chain and every route.
func NewRouter(cfg *config.Config, store services.CounterStore, library *content.Library, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		return nil, err
	}

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Security.AllowedOrigins))
	router.Use(middleware.BodyLimit(maxBodyBytes))
	router.Use(middleware.Locale(cfg.DefaultLocale))

	if err := SetupRoutes(router, cfg, store, library, logger); err != nil {
		return nil, err
	}
	return router, nil
}

// maxBodyBytes fits a maximum-length Hindi message with JSON overhead.
const maxBodyBytes = 64 << 10

func SetupRoutes(router *gin.Engine, cfg *config.Config, store services.CounterStore, library *content.Library, logger *zap.Logger) error {
	// Initialize services
	analyticsService := services.NewAnalyticsService(store, logger)
	remoteService := services.NewRemoteService(cfg.Remote.URL, cfg.Remote.Timeout)
	chatbotService, err := services.NewChatbotService(library, remoteService, analyticsService, logger)
	if err != nil {
		return err
	}
	screeningService := services.NewScreeningService(analyticsService, logger)

	// Initialize controllers
	chatbotController := controllers.NewChatbotController(chatbotService)
	wsController := controllers.NewWebSocketController(chatbotService, cfg.Security.AllowedOrigins, logger)
	screeningController := controllers.NewScreeningController(screeningService)
	analyticsController := controllers.NewAnalyticsController(analyticsService)

	router.GET("/health", analyticsController.Health)

	api := router.Group("/api")
	{
		chat := api.Group("/chat")
		chat.POST("/send", chatbotController.HandleChat)
		chat.GET("/ws", wsController.HandleWebSocket)
		chat.GET("/categories", chatbotController.GetCategories)

		screening := api.Group("/screening")
		screening.GET("/instruments", screeningController.ListInstruments)
		screening.GET("/instruments/:type", screeningController.GetInstrument)
		screening.POST("/:type", screeningController.Submit)

		// TODO: put the admin group behind authentication once the dashboard has logins.
		admin := api.Group("/admin")
		admin.GET("/analytics", analyticsController.GetAnalytics)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
	return nil
}
