package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim/backend/internal/middleware"
	"reclaim/backend/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

type preferencesRequest struct {
	Goal        string `json:"goal"`
	Skill       string `json:"skill"`
	Inspiration string `json:"inspiration"`
	Distraction string `json:"distraction"`
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	user, apiErr := h.profileService.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	user, apiErr := h.profileService.UpdatePreferences(c.Request.Context(), userID, service.PreferencesInput{
		Goal:        req.Goal,
		Skill:       req.Skill,
		Inspiration: req.Inspiration,
		Distraction: req.Distraction,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
