package controllers

import (
	"net/http"

	"mitra-support-backend/middleware"
	"mitra-support-backend/models"
	"mitra-support-backend/services"

	"github.com/gin-gonic/gin"
)

type ChatbotController struct {
	chatbotService *services.ChatbotService
}

func NewChatbotController(chatbotService *services.ChatbotService) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
	}
}

// HandleChat processes chat messages
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
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

	response, err := cc.chatbotService.ProcessMessage(c.Request.Context(), req, locale)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCategories returns the classification order and the quick replies
// for the request locale.
func (cc *ChatbotController) GetCategories(c *gin.Context) {
	locale, err := middleware.ResolveLocale(c, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"categories":    cc.chatbotService.Categories(),
		"quick_replies": cc.chatbotService.QuickReplies(locale),
		"locale":        locale,
	})
}
