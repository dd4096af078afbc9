package messaging

import (
	"net/http"
	"strconv"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type startConversationReq struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *Handler) StartConversation(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req startConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.service.StartOrGetConversation(c.Request.Context(), userID, req.UserID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conv)
}

type sendMessageReq struct {
	Content string `json:"content"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetUint("user_id")

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), uint(conversationID), userID, req.Content)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) OpenConversation(c *gin.Context) {
	userID := c.GetUint("user_id")

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	conv, msgs, err := h.service.OpenConversation(c.Request.Context(), uint(conversationID), userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv, "messages": msgs})
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetUint("user_id")

	summaries, totalUnread, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summaries, "total_unread": totalUnread})
}
