package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "posapi/internal/errors"
	"posapi/internal/logger"
	"posapi/internal/models"
	"posapi/internal/tax"
	appvalidator "posapi/internal/validator"
)

// tradeService registers sales against the product master.
type tradeService struct {
	catalog  ProductCatalog
	store    TradeStore
	validate *validator.Validate
	timeout  time.Duration
	now      func() time.Time
}

// TradeOption customizes the registrar built by NewTradeService.
type TradeOption func(*tradeService)

// WithStoreTimeout bounds product resolution and persistence of a single
// registration. A deadline hit is reported as STORAGE_UNAVAILABLE.
func WithStoreTimeout(d time.Duration) TradeOption {
	return func(s *tradeService) { s.timeout = d }
}

// WithClock replaces the clock that stamps occurred_at.
func WithClock(now func() time.Time) TradeOption {
	return func(s *tradeService) { s.now = now }
}

// NewTradeService creates a new TradeRegistrar.
func NewTradeService(catalog ProductCatalog, store TradeStore, opts ...TradeOption) TradeRegistrar {
	s := &tradeService{
		catalog:  catalog,
		store:    store,
		validate: appvalidator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterTrade validates the sale, prices every line from the current
// product master, and stores header and lines in one transaction.
func (s *tradeService) RegisterTrade(ctx context.Context, input RegisterTradeInput) (*TradeReceipt, error) {
	log := logger.From(ctx).With(
		"emp_cd", input.EmployeeCode,
		"store_cd", input.StoreCode,
		"pos_no", input.PosNo,
		"line_count", len(input.Lines),
	)

	// No storage access happens before the input is known to be well formed.
	if err := s.validateInput(input); err != nil {
		log.Warnw("trade rejected", "code", apperrors.CodeOf(err), "reason", err.Error())
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	productIDs := distinctProductIDs(input.Lines)
	products, err := s.catalog.FindByIDs(ctx, productIDs)
	if err != nil {
		err = storageFailure(err, "resolve products")
		log.Errorw("product resolution failed", "product_ids", productIDs, "code", apperrors.CodeOf(err), "cause", causeOf(err))
		return nil, err
	}

	if missing := missingProductIDs(productIDs, products); len(missing) > 0 {
		log.Warnw("trade rejected", "code", apperrors.CodeUnknownProduct, "missing_ids", missing)
		return nil, apperrors.UnknownProduct(missing)
	}

	trade, err := s.buildTrade(input, products)
	if err != nil {
		log.Warnw("trade rejected", "code", apperrors.CodeOf(err), "reason", err.Error(), "cause", causeOf(err))
		return nil, err
	}

	if err := s.persist(ctx, trade); err != nil {
		log.Errorw("trade not persisted", "code", apperrors.CodeOf(err), "cause", causeOf(err))
		return nil, err
	}

	log.Infow("trade registered",
		"trd_id", trade.ID,
		"total_ex_tax", trade.TotalExTax,
		"total_tax", trade.TotalTax,
		"total_amt", trade.TotalAmt,
	)

	return &TradeReceipt{
		TradeID:    trade.ID,
		TotalExTax: trade.TotalExTax,
		TotalTax:   trade.TotalTax,
		TotalAmt:   trade.TotalAmt,
	}, nil
}

// FetchTrade returns a stored trade with its lines ordered by dtl_id.
func (s *tradeService) FetchTrade(ctx context.Context, tradeID uint) (*models.Trade, error) {
	if tradeID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "trade id must be positive")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	trade, err := s.store.GetTrade(ctx, tradeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.From(ctx).Warnw("trade not found", "trd_id", tradeID)
			return nil, err
		}
		err = storageFailure(err, "fetch trade")
		logger.From(ctx).Errorw("trade fetch failed", "trd_id", tradeID, "code", apperrors.CodeOf(err), "cause", causeOf(err))
		return nil, err
	}
	return trade, nil
}

func (s *tradeService) validateInput(input RegisterTradeInput) error {
	if err := s.validate.Struct(input); err != nil {
		fields, summary := appvalidator.Describe(err)
		return apperrors.WithDetails(
			apperrors.WithMessage(apperrors.ErrValidation, summary),
			map[string]any{"fields": fields},
		)
	}

	for i, line := range input.Lines {
		if line.Price != nil {
			field := fmt.Sprintf("Lines[%d].Price", i)
			return apperrors.WithDetails(
				apperrors.WithMessage(apperrors.ErrValidation, field+" must not be supplied; prices come from the product master"),
				map[string]any{"fields": []appvalidator.FieldError{{Field: field, Rule: "absent"}}},
			)
		}
	}
	return nil
}

// buildTrade snapshots each referenced product into its line, in submission
// order, and derives the line and trade amounts.
func (s *tradeService) buildTrade(input RegisterTradeInput, products map[uint]models.Product) (*models.Trade, error) {
	trade := &models.Trade{
		OccurredAt:   s.now(),
		EmployeeCode: input.EmployeeCode,
		StoreCode:    input.StoreCode,
		PosNo:        input.PosNo,
		Lines:        make([]models.TradeLine, 0, len(input.Lines)),
	}
	amounts := make([]tax.LineAmounts, 0, len(input.Lines))

	for i, in := range input.Lines {
		product := products[in.ProductID]
		if err := s.validate.Struct(product); err != nil {
			return nil, unusableProduct(i+1, product, err)
		}

		a, err := tax.ComputeLineAmounts(product.Price, in.Qty, product.TaxCode)
		if err != nil {
			return nil, lineFailure(i+1, product, err)
		}

		trade.Lines = append(trade.Lines, models.TradeLine{
			LineNo:       uint(i + 1),
			ProductID:    product.ID,
			ProductCode:  product.Code,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			TaxCode:      product.TaxCode,
			Qty:          in.Qty,
			LineExTax:    a.ExTax,
			LineTax:      a.Tax,
			LineAmount:   a.Incl,
		})
		amounts = append(amounts, a)
	}

	totals, err := tax.ComputeTradeTotals(amounts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrValidation, "trade total exceeds the representable range"), err)
	}
	trade.TotalExTax = totals.ExTax
	trade.TotalTax = totals.Tax
	trade.TotalAmt = totals.Amount

	return trade, nil
}

// persist writes header and lines in one transaction. Any failure rolls the
// transaction back before the error is returned.
func (s *tradeService) persist(ctx context.Context, trade *models.Trade) error {
	tx, err := s.store.BeginTransaction(ctx)
	if err != nil {
		return storageFailure(err, "begin transaction")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.From(ctx).Warnw("rollback failed", "trd_id", trade.ID, "cause", causeOf(rbErr))
		}
	}()

	tradeID, err := tx.InsertTrade(ctx, trade)
	if err != nil {
		return storageFailure(err, "insert trade")
	}
	trade.ID = tradeID
	for i := range trade.Lines {
		trade.Lines[i].TradeID = tradeID
	}

	if err := tx.InsertTradeLines(ctx, tradeID, trade.Lines); err != nil {
		return storageFailure(err, fmt.Sprintf("insert lines of trade %d", tradeID))
	}

	if err := tx.Commit(); err != nil {
		return storageFailure(err, fmt.Sprintf("commit trade %d", tradeID))
	}
	committed = true
	return nil
}

func lineFailure(lineNo int, product models.Product, err error) error {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeAmountOverflow:
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("line %d: amount exceeds the representable range", lineNo)), err)
	default:
		// The catalog row itself is unusable (unknown tax category, negative price).
		return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrIntegrityConflict,
			fmt.Sprintf("line %d: product %d cannot be priced", lineNo, product.ID)), err)
	}
}

// unusableProduct reports a catalog row that violates the product master
// rules. The row is the data at fault, not the request.
func unusableProduct(lineNo int, product models.Product, err error) error {
	fields, summary := appvalidator.Describe(err)
	return apperrors.Wrap(
		apperrors.WithDetails(
			apperrors.WithMessage(apperrors.ErrIntegrityConflict,
				fmt.Sprintf("line %d: product %d cannot be priced", lineNo, product.ID)),
			map[string]any{"prd_id": product.ID, "fields": fields},
		),
		errors.New(summary),
	)
}

// storageFailure keeps errors that already speak the error vocabulary and
// reports anything else coming out of a storage port as STORAGE_UNAVAILABLE.
func storageFailure(err error, op string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrStorageUnavailable, fmt.Errorf("%s: %w", op, err))
}

func causeOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Internal != nil {
		return appErr.Internal.Error()
	}
	return err.Error()
}

// distinctProductIDs returns the referenced ids in first-seen order.
func distinctProductIDs(lines []TradeLineInput) []uint {
	seen := make(map[uint]struct{}, len(lines))
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

func missingProductIDs(requested []uint, found map[uint]models.Product) []uint {
	var missing []uint
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
