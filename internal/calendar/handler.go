package calendar

import (
	"net/http"
	"strconv"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func (h *Handler) AddEntry(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req EntryCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ce, err := h.service.AddEntry(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ce)
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), userID, uint(id)); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// Feed returns the aggregated calendar feed for the authenticated user.
func (h *Handler) Feed(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	entries, err := h.service.ComputeFeed(c.Request.Context(), userID, role)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// EventsJSON serves the widget blocks. An optional user query parameter
// views another user's commitments.
func (h *Handler) EventsJSON(c *gin.Context) {
	userID := c.GetUint("user_id")
	if v := c.Query("user"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID = uint(id)
		}
	}

	blocks, err := h.service.EventsJSON(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, blocks)
}
