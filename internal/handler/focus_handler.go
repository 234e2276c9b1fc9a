package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim/backend/internal/middleware"
	"reclaim/backend/internal/service"
)

type FocusHandler struct {
	focusService *service.FocusService
}

type endFocusRequest struct {
	SessionID string `json:"sessionId"`
}

func NewFocusHandler(focusService *service.FocusService) *FocusHandler {
	return &FocusHandler{focusService: focusService}
}

func (h *FocusHandler) Start(c *gin.Context) {
	userID := middleware.UserID(c)
	session, apiErr := h.focusService.Start(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *FocusHandler) End(c *gin.Context) {
	var req endFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	session, apiErr := h.focusService.End(c.Request.Context(), userID, req.SessionID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *FocusHandler) Today(c *gin.Context) {
	userID := middleware.UserID(c)
	today, apiErr := h.focusService.Today(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, today)
}
