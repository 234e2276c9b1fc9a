package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reclaim/backend/internal/middleware"
	"reclaim/backend/internal/model"
	"reclaim/backend/internal/service"
)

type UsageHandler struct {
	usageService *service.UsageService
}

type submitUsageRequest struct {
	Date string                  `json:"date"`
	Apps []service.AppUsageInput `json:"apps"`
}

func NewUsageHandler(usageService *service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

func (h *UsageHandler) Submit(c *gin.Context) {
	var req submitUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	if req.Date == "" {
		req.Date = time.Now().UTC().Format(model.DateLayout)
	}

	userID := middleware.UserID(c)
	usageLog, apiErr := h.usageService.Submit(c.Request.Context(), userID, req.Date, req.Apps)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usage": usageLog})
}

func (h *UsageHandler) Dashboard(c *gin.Context) {
	userID := middleware.UserID(c)
	summary, apiErr := h.usageService.TodaySummary(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *UsageHandler) Report(c *gin.Context) {
	userID := middleware.UserID(c)
	report, apiErr := h.usageService.WeeklyReport(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, report)
}
