package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// TradeHandler handles journal CRUD requests
type TradeHandler struct {
	journalService *service.JournalService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(journalService *service.JournalService) *TradeHandler {
	return &TradeHandler{journalService: journalService}
}

// RegisterRoutes registers trade routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	trades := rg.Group("/trades")
	{
		trades.GET("", h.List)
		trades.POST("", h.Create)
		trades.GET("/:id", h.Get)
		trades.PUT("/:id", h.Update)
		trades.DELETE("/:id", h.Delete)
	}
}

// List returns the full journal ordered by entry date
// GET /api/v1/trades
func (h *TradeHandler) List(c *gin.Context) {
	trades, err := h.journalService.ListTrades()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, trades)
}

// Create stores a new trade
// POST /api/v1/trades
func (h *TradeHandler) Create(c *gin.Context) {
	var req service.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.journalService.CreateTrade(&req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, trade)
}

// Get returns a single trade
// GET /api/v1/trades/:id
func (h *TradeHandler) Get(c *gin.Context) {
	id, ok := h.tradeID(c)
	if !ok {
		return
	}

	trade, err := h.journalService.GetTrade(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, trade)
}

// Update replaces every raw field of a trade
// PUT /api/v1/trades/:id
func (h *TradeHandler) Update(c *gin.Context) {
	id, ok := h.tradeID(c)
	if !ok {
		return
	}

	var req service.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.journalService.UpdateTrade(id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, trade)
}

// Delete removes a trade
// DELETE /api/v1/trades/:id
func (h *TradeHandler) Delete(c *gin.Context) {
	id, ok := h.tradeID(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteTrade(id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "trade deleted"})
}

func (h *TradeHandler) tradeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid trade id")
		return 0, false
	}
	return uint(id), true
}

func (h *TradeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTradeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidTradeInput):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}
