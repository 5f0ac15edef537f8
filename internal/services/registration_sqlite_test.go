package services_test

import (
	"context"
	"testing"

	"gorm.io/gorm"

	apperrors "posapi/internal/errors"
	"posapi/internal/models"
	"posapi/internal/repository"
	"posapi/internal/services"
	"posapi/internal/testutil"
)

func newSQLiteRegistrar(t *testing.T) (services.TradeRegistrar, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := services.NewTradeService(
		repository.NewProductRepository(db),
		repository.NewTradeRepository(db),
	)
	return svc, func() { testutil.TeardownTestDB(t, db) }
}

func TestRegisterTrade_SQLite(t *testing.T) {
	t.Run("totals_and_persisted_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewTradeService(repository.NewProductRepository(db), repository.NewTradeRepository(db))

		tea := testutil.CreateTestProduct(t, db, 100, models.TaxCodeStandard)
		bento := testutil.CreateTestProduct(t, db, 200, models.TaxCodeStandard)
		stamp := testutil.CreateTestProduct(t, db, 84, models.TaxCodeExempt)

		receipt, err := svc.RegisterTrade(context.Background(), services.RegisterTradeInput{
			EmployeeCode: "E001", StoreCode: "S001", PosNo: "01",
			Lines: []services.TradeLineInput{
				{ProductID: tea.ID, Qty: 2},
				{ProductID: bento.ID, Qty: 2},
			},
		})
		testutil.AssertNoError(t, err)

		if receipt.TotalExTax != 600 || receipt.TotalTax != 60 || receipt.TotalAmt != 660 {
			t.Errorf("unexpected totals %+v", receipt)
		}
		if n := testutil.CountRows(t, db, &models.TradeLine{}); n != 2 {
			t.Errorf("expected 2 stored lines, got %d", n)
		}

		exempt, err := svc.RegisterTrade(context.Background(), services.RegisterTradeInput{
			EmployeeCode: "E001", StoreCode: "S001", PosNo: "01",
			Lines: []services.TradeLineInput{{ProductID: stamp.ID, Qty: 3}},
		})
		testutil.AssertNoError(t, err)
		if exempt.TotalTax != 0 || exempt.TotalAmt != 252 {
			t.Errorf("unexpected exempt totals %+v", exempt)
		}
		if exempt.TradeID <= receipt.TradeID {
			t.Errorf("expected increasing trade ids, got %d then %d", receipt.TradeID, exempt.TradeID)
		}
	})

	t.Run("snapshot_survives_price_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewTradeService(repository.NewProductRepository(db), repository.NewTradeRepository(db))

		product := testutil.CreateTestProduct(t, db, 150, models.TaxCodeReduced)

		receipt, err := svc.RegisterTrade(context.Background(), services.RegisterTradeInput{
			EmployeeCode: "E002", StoreCode: "S002", PosNo: "02",
			Lines: []services.TradeLineInput{{ProductID: product.ID, Qty: 1}},
		})
		testutil.AssertNoError(t, err)

		testutil.UpdateTestProductPrice(t, db, product.ID, 999)

		trade, err := svc.FetchTrade(context.Background(), receipt.TradeID)
		testutil.AssertNoError(t, err)
		if len(trade.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(trade.Lines))
		}
		line := trade.Lines[0]
		if line.ProductPrice != 150 || line.LineTax != 12 || line.LineAmount != 162 {
			t.Errorf("line should keep the registration-time price: %+v", line)
		}
		if trade.TotalAmt != 162 || trade.TotalTax != 12 {
			t.Errorf("unexpected stored totals %+v", trade)
		}
	})

	t.Run("lines_returned_in_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewTradeService(repository.NewProductRepository(db), repository.NewTradeRepository(db))

		a := testutil.CreateTestProduct(t, db, 10, models.TaxCodeStandard)
		b := testutil.CreateTestProduct(t, db, 20, models.TaxCodeStandard)

		lines := make([]services.TradeLineInput, 0, 12)
		for i := 0; i < 12; i++ {
			id := a.ID
			if i%2 == 1 {
				id = b.ID
			}
			lines = append(lines, services.TradeLineInput{ProductID: id, Qty: 1})
		}
		receipt, err := svc.RegisterTrade(context.Background(), services.RegisterTradeInput{
			EmployeeCode: "E003", StoreCode: "S003", PosNo: "03", Lines: lines,
		})
		testutil.AssertNoError(t, err)

		trade, err := svc.FetchTrade(context.Background(), receipt.TradeID)
		testutil.AssertNoError(t, err)
		for i, l := range trade.Lines {
			if l.LineNo != uint(i+1) {
				t.Fatalf("line %d has dtl_id %d", i, l.LineNo)
			}
		}
	})

	t.Run("unknown_product_persists_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := services.NewTradeService(repository.NewProductRepository(db), repository.NewTradeRepository(db))

		product := testutil.CreateTestProduct(t, db, 100, models.TaxCodeStandard)

		_, err := svc.RegisterTrade(context.Background(), services.RegisterTradeInput{
			EmployeeCode: "E001", StoreCode: "S001", PosNo: "01",
			Lines: []services.TradeLineInput{
				{ProductID: product.ID, Qty: 1},
				{ProductID: 99999, Qty: 1},
			},
		})
		testutil.AssertAppError(t, err, apperrors.CodeUnknownProduct)

		if n := testutil.CountRows(t, db, &models.Trade{}); n != 0 {
			t.Errorf("expected no trades, got %d", n)
		}
		if n := testutil.CountRows(t, db, &models.TradeLine{}); n != 0 {
			t.Errorf("expected no lines, got %d", n)
		}
	})
}

// vanishingCatalog resolves products normally, then deletes one of them
// before the registrar persists the trade.
type vanishingCatalog struct {
	services.ProductCatalog
	db     *gorm.DB
	victim uint
}

func (c *vanishingCatalog) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	products, err := c.ProductCatalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := c.db.Delete(&models.Product{}, c.victim).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func TestRegisterTrade_SQLiteProductDeletedBeforeCommit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	kept := testutil.CreateTestProduct(t, db, 100, models.TaxCodeStandard)
	gone := testutil.CreateTestProduct(t, db, 200, models.TaxCodeReduced)

	catalog := &vanishingCatalog{ProductCatalog: repository.NewProductRepository(db), db: db, victim: gone.ID}
	svc := services.NewTradeService(catalog, repository.NewTradeRepository(db))

	_, err := svc.RegisterTrade(context.Background(), services.RegisterTradeInput{
		EmployeeCode: "E001", StoreCode: "S001", PosNo: "01",
		Lines: []services.TradeLineInput{
			{ProductID: kept.ID, Qty: 1},
			{ProductID: gone.ID, Qty: 1},
		},
	})
	testutil.AssertAppError(t, err, apperrors.CodeIntegrityConflict)

	if n := testutil.CountRows(t, db, &models.Trade{}); n != 0 {
		t.Errorf("expected no trades, got %d", n)
	}
	if n := testutil.CountRows(t, db, &models.TradeLine{}); n != 0 {
		t.Errorf("expected no lines, got %d", n)
	}
}

func TestFetchTrade_SQLite(t *testing.T) {
	svc, teardown := newSQLiteRegistrar(t)
	defer teardown()

	_, err := svc.FetchTrade(context.Background(), 12345)
	testutil.AssertAppError(t, err, apperrors.CodeNotFound)
}
