package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// StatsHandler handles portfolio statistics requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Get)
}

// Get returns portfolio statistics over all closed trades
// GET /api/v1/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.statsService.Get()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, stats)
}
