package profile

import (
	"net/http"

	"github.com/gigstage/gigstage-backend/internal/apperr"
	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// My Profile
// ===============================

func (h *Handler) GetMyProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	p, err := h.service.EnsureProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateBioReq struct {
	Bio string `json:"bio"`
}

func (h *Handler) UpdateBio(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req updateBioReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateBio(c.Request.Context(), userID, req.Bio)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ===============================
// Notification Settings
// ===============================

type updateSettingsReq struct {
	EmailNotifications *bool `json:"email_notifications"`
	ApplicationUpdates *bool `json:"application_updates"`
	ShowProfile        *bool `json:"show_profile"`
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateSettings(c.Request.Context(), userID, SettingsInput{
		EmailNotifications: req.EmailNotifications,
		ApplicationUpdates: req.ApplicationUpdates,
		ShowProfile:        req.ShowProfile,
	})
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ===============================
// User Directory
// ===============================

func (h *Handler) Directory(c *gin.Context) {
	search := c.Query("search")
	role := c.Query("role")

	entries, err := h.service.Directory(c.Request.Context(), search, role)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
