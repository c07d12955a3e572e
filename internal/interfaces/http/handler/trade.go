package handler

import (
	"context"
	"net/http"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// TradeHandler handles purchase and sale entry
type TradeHandler struct {
	BaseHandler
	svc *trade.Service
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(svc *trade.Service) *TradeHandler {
	return &TradeHandler{svc: svc}
}

// RegisterRoutes mounts /purchases and /sales
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/purchases", h.ListPurchases)
	rg.POST("/purchases", h.CreatePurchase)
	rg.GET("/sales", h.ListSales)
	rg.POST("/sales", h.CreateSale)
}

type createFunc func(context.Context, refdata.Caller, trade.CreateTransactionRequest) (*trade.TransactionResponse, error)

type listFunc func(context.Context, refdata.Caller) ([]trade.TransactionResponse, error)

// CreatePurchase godoc
// @Summary  Record a vehicle purchase
// @Tags     trade
// @Param    request body trade.CreateTransactionRequest true "Purchase"
// @Success  201 {object} map[string]any
// @Failure  400,401,403,404,500 {object} dto.ErrorResponse
// @Router   /purchases [post]
func (h *TradeHandler) CreatePurchase(c *gin.Context) {
	h.create(c, h.svc.CreatePurchase, "purchase", "Purchase recorded successfully")
}

// CreateSale godoc
// @Summary  Record a vehicle sale
// @Tags     trade
// @Router   /sales [post]
func (h *TradeHandler) CreateSale(c *gin.Context) {
	h.create(c, h.svc.CreateSale, "sale", "Sale recorded successfully")
}

// ListPurchases godoc
// @Summary  List the company's purchases, newest first
// @Tags     trade
// @Router   /purchases [get]
func (h *TradeHandler) ListPurchases(c *gin.Context) {
	h.list(c, h.svc.ListPurchases, "purchases")
}

// ListSales godoc
// @Summary  List the company's sales, newest first
// @Tags     trade
// @Router   /sales [get]
func (h *TradeHandler) ListSales(c *gin.Context) {
	h.list(c, h.svc.ListSales, "sales")
}

func (h *TradeHandler) create(c *gin.Context, fn createFunc, prop, message string) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	var req trade.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidJSON(c)
		return
	}

	resp, err := fn(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message, prop: resp})
}

func (h *TradeHandler) list(c *gin.Context, fn listFunc, prop string) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	items, err := fn(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{prop: items})
}
