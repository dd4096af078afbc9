package availability

import (
	"net/http"
	"strconv"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

type replaceReq struct {
	Entries []EntryInput `json:"entries"`
}

func (h *Handler) Replace(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req replaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.service.Replace(c.Request.Context(), userID, req.Entries)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability replaced", "saved": saved})
}

type createReq struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Note      string `json:"note"`
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), userID, req.Date, req.StartTime, req.EndTime, req.Note)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": a.ID})
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetUint("user_id")

	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id), userID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability deleted"})
}

// AvailabilityJSON serves the background blocks consumed by the calendar
// widget. An optional user query parameter views another user's windows.
func (h *Handler) AvailabilityJSON(c *gin.Context) {
	userID := c.GetUint("user_id")
	if v := c.Query("user"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			userID = uint(id)
		}
	}

	blocks, err := h.service.FeedJSON(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, blocks)
}
