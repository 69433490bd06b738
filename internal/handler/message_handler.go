package handler

import (
	"errors"
	"net/http"

	"github.com/hasan-mia/the-x-tribune-server/internal/middleware"
	"github.com/hasan-mia/the-x-tribune-server/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler backs the dashboard messaging view.
type MessageHandler struct {
	service service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(s service.MessageService) *MessageHandler {
	return &MessageHandler{service: s}
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req struct {
		RecipientID int    `json:"recipient_id" binding:"required"`
		Body        string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sender := middleware.CurrentUser(c)
	msg, err := h.service.Send(c.Request.Context(), sender.ID, req.RecipientID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

func (h *MessageHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	msgs, err := h.service.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// RegisterMessageRoutes registers messaging routes behind authentication.
func (h *MessageHandler) RegisterMessageRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	msgGroup := rg.Group("/messages", authMW)
	{
		msgGroup.POST("", h.Send)
		msgGroup.GET("", h.List)
		msgGroup.POST("/:id/read", h.MarkRead)
	}
}
