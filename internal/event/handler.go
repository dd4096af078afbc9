package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/middleware"
	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

func actorFrom(c *gin.Context) Actor {
	return Actor{
		UserID: c.GetUint("user_id"),
		Role:   c.GetString("role"),
		IP:     middleware.GetIPFromContext(c),
	}
}

// ===========================
// Events
// ===========================

func (h *Handler) CreateEvent(c *gin.Context) {
	var req EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := h.service.CreateEvent(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := h.service.UpdateEvent(c.Request.Context(), actorFrom(c), eventID, req)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), actorFrom(c), eventID); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (h *Handler) GetEvent(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ev, err := h.service.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *Handler) ListPublished(c *gin.Context) {
	var filter ListFilter

	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			cid := uint(id)
			filter.CategoryID = &cid
		}
	}
	if v := c.Query("date"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			filter.Date = &d
		}
	}
	filter.City = c.Query("city")
	filter.Search = c.Query("search")

	events, err := h.service.ListPublished(c.Request.Context(), filter)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

func (h *Handler) ListMyEvents(c *gin.Context) {
	events, err := h.service.ListMyEvents(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// ===========================
// Applications
// ===========================

type applyReq struct {
	TalentType string `json:"talent_type" binding:"required"`
	Message    string `json:"message"`
}

func (h *Handler) Apply(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req applyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.service.Apply(c.Request.Context(), actorFrom(c), eventID, req.TalentType, req.Message)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, app)
}

type withdrawReq struct {
	TalentType string `json:"talent_type" binding:"required"`
}

func (h *Handler) Withdraw(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req withdrawReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), actorFrom(c), eventID, req.TalentType); err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application withdrawn"})
}

type decideReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) Decide(c *gin.Context) {
	applicationID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	var req decideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.service.Decide(c.Request.Context(), actorFrom(c), applicationID, req.Status)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *Handler) ListEventApplications(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	apps, err := h.service.ListEventApplications(c.Request.Context(), actorFrom(c), eventID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": apps})
}

func (h *Handler) ListMyApplications(c *gin.Context) {
	apps, err := h.service.ListMyApplications(c.Request.Context(), actorFrom(c))
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": apps})
}

// ===========================
// Reference data
// ===========================

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *Handler) ListVenues(c *gin.Context) {
	venues, err := h.service.ListVenues(c.Request.Context())
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": venues})
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}
