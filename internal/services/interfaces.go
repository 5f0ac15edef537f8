package services

import (
	"context"

	"posapi/internal/models"
	"posapi/internal/pagination"
)

// ProductCatalog is the read-only view of the product master used by the core.
type ProductCatalog interface {
	// FindByIDs returns the products that exist among ids, keyed by id.
	// Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error)
	// FindByCode returns the product with the given code or a NOT_FOUND error.
	FindByCode(ctx context.Context, code string) (*models.Product, error)
}

// ProductLister pages through the product master.
type ProductLister interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
}

// TradeStore is the durable storage for trades.
type TradeStore interface {
	BeginTransaction(ctx context.Context) (TradeTx, error)
	// GetTrade returns the trade header with its lines ordered by dtl_id,
	// or a NOT_FOUND error.
	GetTrade(ctx context.Context, tradeID uint) (*models.Trade, error)
}

// TradeTx is a unit of work scoped to one registration. Nothing written
// through it is visible to other sessions before Commit.
type TradeTx interface {
	// InsertTrade stores the header (without lines) and returns its trd_id.
	InsertTrade(ctx context.Context, header *models.Trade) (uint, error)
	InsertTradeLines(ctx context.Context, tradeID uint, lines []models.TradeLine) error
	Commit() error
	Rollback() error
}

// TradeLineInput is one line as submitted by a terminal.
type TradeLineInput struct {
	ProductID uint  `validate:"gt=0"`
	Qty       int64 `validate:"gte=1,lte=2147483647"`
	// Price must be nil: the terminal is not a trusted price source.
	Price *int64
}

// RegisterTradeInput is the header and lines of a sale to register.
type RegisterTradeInput struct {
	EmployeeCode string           `validate:"required,max=10"`
	StoreCode    string           `validate:"required,max=5"`
	PosNo        string           `validate:"required,max=3"`
	Lines        []TradeLineInput `validate:"required,min=1,dive"`
}

// TradeReceipt is the outcome of a successful registration.
type TradeReceipt struct {
	TradeID    uint  `json:"trade_id"`
	TotalExTax int64 `json:"total_amt_ex_tax"`
	TotalTax   int64 `json:"total_tax"`
	TotalAmt   int64 `json:"total_amt"`
}

// TradeRegistrar registers sales and reads them back.
type TradeRegistrar interface {
	RegisterTrade(ctx context.Context, input RegisterTradeInput) (*TradeReceipt, error)
	FetchTrade(ctx context.Context, tradeID uint) (*models.Trade, error)
}

// ProductServicer defines the contract for product lookups.
type ProductServicer interface {
	GetProductByCode(ctx context.Context, code string) (*models.Product, error)
	ListProducts(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
}

// Stats summarizes stored sales for the admin endpoint.
type Stats struct {
	TotalSales        int64 `json:"total_sales"`
	TotalProducts     int64 `json:"total_products"`
	TotalTransactions int64 `json:"total_transactions"`
}

// StatsServicer defines the contract for sales statistics.
type StatsServicer interface {
	GetStats(ctx context.Context) (*Stats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, actor, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
