package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trade-journal/internal/marketdata/yahoo"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

const dateLayout = "2006-01-02"

// ChartHandler handles price-history requests
type ChartHandler struct {
	chartService *service.ChartService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(chartService *service.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// RegisterRoutes registers chart routes
func (h *ChartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/charts/:ticker", h.Get)
}

// Get returns daily candles for a ticker
// GET /api/v1/charts/:ticker?start=2026-01-01&end=2026-06-30
func (h *ChartHandler) Get(c *gin.Context) {
	ticker := c.Param("ticker")

	end := time.Now()
	start := end.AddDate(-1, 0, 0)

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			response.BadRequest(c, "invalid start date, expected YYYY-MM-DD")
			return
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			response.BadRequest(c, "invalid end date, expected YYYY-MM-DD")
			return
		}
		end = parsed
	}

	candles, err := h.chartService.GetHistory(c.Request.Context(), ticker, start, end)
	if err != nil {
		if errors.Is(err, yahoo.ErrNoData) {
			response.NotFound(c, "no data available for this ticker")
			return
		}
		response.BadGateway(c, err.Error())
		return
	}
	response.Success(c, candles)
}
