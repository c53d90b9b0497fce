package controllers

import (
	"net/http"

	"mitra-support-backend/middleware"
	"mitra-support-backend/models"
	"mitra-support-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxFrameBytes fits a maximum-length Hindi message with JSON overhead.
const maxFrameBytes = 16 << 10

type WebSocketController struct {
	chatbotService *services.ChatbotService
	upgrader       websocket.Upgrader
	logger         *zap.Logger
}

func NewWebSocketController(chatbotService *services.ChatbotService, allowedOrigins []string, logger *zap.Logger) *WebSocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebSocketController{
		chatbotService: chatbotService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin.
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		logger: logger,
	}
}

// HandleWebSocket runs a chat session over one connection. Each frame is a
// ChatRequest; the session id from the first reply is reused for the rest
// of the connection.
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := wc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wc.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	sessionID := c.Query("session_id")

	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				wc.logger.Warn("WebSocket read failed", zap.Error(err))
			}
			return
		}

		if req.SessionID == "" {
			req.SessionID = sessionID
		}

		locale, err := middleware.ResolveLocale(c, req.Lang)
		if err != nil {
			if err := conn.WriteJSON(gin.H{"error": err.Error()}); err != nil {
				return
			}
			continue
		}

		response, err := wc.chatbotService.ProcessMessage(c.Request.Context(), req, locale)
		if err != nil {
			msg := "Failed to process message"
			if statusFor(err) != http.StatusInternalServerError {
				msg = err.Error()
			}
			if err := conn.WriteJSON(gin.H{"error": msg}); err != nil {
				return
			}
			continue
		}

		sessionID = response.SessionID
		if err := conn.WriteJSON(response); err != nil {
			wc.logger.Warn("WebSocket write failed", zap.Error(err))
			return
		}
	}
}
