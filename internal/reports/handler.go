package reports

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gigstage/gigstage-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// RosterExport streams the application roster for an event. Format is
// csv or excel, default csv.
func (h *Handler) RosterExport(c *gin.Context) {
	userID := c.GetUint("user_id")

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.service.RosterExport(c.Request.Context(), userID, uint(eventID), format)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// CalendarExport streams the caller's aggregated calendar feed as PDF.
func (h *Handler) CalendarExport(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	username := ""
	if u, ok := c.Get("user"); ok {
		if user, ok := u.(*auth.User); ok {
			username = user.Username
		}
	}

	data, filename, contentType, err := h.service.CalendarExport(c.Request.Context(), userID, username, role)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
