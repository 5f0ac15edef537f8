package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"posapi/internal/models"
	"posapi/internal/services"
)

// TradeHandler handles sale registration and lookup.
type TradeHandler struct {
	tradeService services.TradeRegistrar
	auditService services.AuditServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeRegistrar, auditService services.AuditServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, auditService: auditService}
}

// TradeLineRequest is one line of a sale as sent by a terminal.
type TradeLineRequest struct {
	ProductID uint `json:"prd_id" binding:"required,gt=0"`
	// Qty defaults to 1 when omitted.
	Qty *int64 `json:"qty" binding:"omitempty,gte=1,lte=2147483647"`
	// Price is accepted on the wire only to be rejected by the registrar.
	Price *int64 `json:"prd_price,omitempty" swaggerignore:"true"`
}

// CreateTradeRequest represents the request payload for registering a sale.
type CreateTradeRequest struct {
	EmployeeCode string             `json:"emp_cd" binding:"required,max=10"`
	StoreCode    string             `json:"store_cd" binding:"required,max=5"`
	PosNo        string             `json:"pos_no" binding:"required,max=3"`
	TradeLines   []TradeLineRequest `json:"trade_lines" binding:"required,min=1,dive"`
}

// TradeResponse is returned after a successful registration.
type TradeResponse struct {
	Success    bool   `json:"success"`
	TradeID    uint   `json:"trade_id"`
	TotalExTax int64  `json:"total_amt_ex_tax"`
	TotalTax   int64  `json:"total_tax"`
	TotalAmt   int64  `json:"total_amt"`
	Message    string `json:"message"`
}

// TradeDetailResponse is a stored trade with its lines.
type TradeDetailResponse struct {
	Trade      models.Trade       `json:"trade"`
	TradeLines []models.TradeLine `json:"trade_lines"`
}

// CreateTrade registers a sale.
// @Summary     Register a trade
// @Description Price every line from the product master, compute tax and store the trade atomically
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       request body CreateTradeRequest true "Trade header and lines"
// @Success     201 {object} TradeResponse "Trade registered"
// @Failure     400 {object} respond.ErrorResponse "Invalid input or unknown product"
// @Failure     409 {object} respond.ErrorResponse "Integrity conflict"
// @Failure     503 {object} respond.ErrorResponse "Storage unavailable"
// @Router      /trades [post]
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	input := services.RegisterTradeInput{
		EmployeeCode: req.EmployeeCode,
		StoreCode:    req.StoreCode,
		PosNo:        req.PosNo,
		Lines:        make([]services.TradeLineInput, 0, len(req.TradeLines)),
	}
	for _, l := range req.TradeLines {
		qty := int64(1)
		if l.Qty != nil {
			qty = *l.Qty
		}
		input.Lines = append(input.Lines, services.TradeLineInput{ProductID: l.ProductID, Qty: qty, Price: l.Price})
	}

	receipt, err := h.tradeService.RegisterTrade(c.Request.Context(), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), req.EmployeeCode, "REGISTER_TRADE", "trade", receipt.TradeID, c.ClientIP(),
		map[string]interface{}{
			"store_cd":   req.StoreCode,
			"pos_no":     req.PosNo,
			"line_count": len(input.Lines),
			"total_amt":  receipt.TotalAmt,
		})

	c.JSON(http.StatusCreated, TradeResponse{
		Success:    true,
		TradeID:    receipt.TradeID,
		TotalExTax: receipt.TotalExTax,
		TotalTax:   receipt.TotalTax,
		TotalAmt:   receipt.TotalAmt,
		Message:    "Trade registered",
	})
}

// GetTrade returns a stored trade.
// @Summary     Get a trade
// @Tags        trades
// @Produce     json
// @Param       id path int true "Trade ID"
// @Success     200 {object} TradeDetailResponse
// @Failure     400 {object} respond.ErrorResponse "Invalid id"
// @Failure     404 {object} respond.ErrorResponse "Trade not found"
// @Router      /trades/{id} [get]
func (h *TradeHandler) GetTrade(c *gin.Context) {
	tradeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	trade, err := h.tradeService.FetchTrade(c.Request.Context(), tradeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lines := trade.Lines
	if lines == nil {
		lines = []models.TradeLine{}
	}
	header := *trade
	header.Lines = nil

	c.JSON(http.StatusOK, TradeDetailResponse{Trade: header, TradeLines: lines})
}
