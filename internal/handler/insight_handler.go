package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reclaim/backend/internal/middleware"
	"reclaim/backend/internal/service"
)

type InsightHandler struct {
	insightService *service.InsightService
}

func NewInsightHandler(insightService *service.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

func (h *InsightHandler) Generate(c *gin.Context) {
	userID := middleware.UserID(c)
	data, apiErr := h.insightService.Generate(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": data})
}

func (h *InsightHandler) Latest(c *gin.Context) {
	userID := middleware.UserID(c)
	record, apiErr := h.insightService.Latest(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": record})
}
