package services

import (
	"context"
	"sort"

	apperrors "posapi/internal/errors"
	"posapi/internal/models"
)

// --- fake product catalog ---

type fakeCatalog struct {
	products map[uint]models.Product
	err      error
	calls    int
	lastIDs  []uint
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[uint]models.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	c.calls++
	c.lastIDs = append([]uint(nil), ids...)
	if c.err != nil {
		return nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[uint]models.Product)
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (c *fakeCatalog) FindByCode(ctx context.Context, code string) (*models.Product, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	for _, p := range c.products {
		if p.Code == code {
			p := p
			return &p, nil
		}
	}
	return nil, apperrors.ErrProductNotFound
}

// --- fake trade store ---

type fakeStore struct {
	beginErr  error
	insertErr error
	linesErr  error
	commitErr error

	nextID    uint
	begun     int
	committed []*models.Trade
	rolled    int
	trades    map[uint]*models.Trade
	getErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, trades: make(map[uint]*models.Trade)}
}

func (s *fakeStore) BeginTransaction(ctx context.Context) (TradeTx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.begun++
	return &fakeTx{store: s}, nil
}

func (s *fakeStore) GetTrade(ctx context.Context, tradeID uint) (*models.Trade, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	t, ok := s.trades[tradeID]
	if !ok {
		return nil, apperrors.ErrTradeNotFound
	}
	return t, nil
}

type fakeTx struct {
	store  *fakeStore
	header *models.Trade
	lines  []models.TradeLine
	done   bool
}

func (tx *fakeTx) InsertTrade(ctx context.Context, header *models.Trade) (uint, error) {
	if tx.store.insertErr != nil {
		return 0, tx.store.insertErr
	}
	h := *header
	h.Lines = nil
	h.ID = tx.store.nextID
	tx.store.nextID++
	tx.header = &h
	return h.ID, nil
}

func (tx *fakeTx) InsertTradeLines(ctx context.Context, tradeID uint, lines []models.TradeLine) error {
	if tx.store.linesErr != nil {
		return tx.store.linesErr
	}
	tx.lines = append(tx.lines, lines...)
	return nil
}

func (tx *fakeTx) Commit() error {
	if tx.store.commitErr != nil {
		return tx.store.commitErr
	}
	tx.done = true
	t := *tx.header
	t.Lines = append([]models.TradeLine(nil), tx.lines...)
	sort.Slice(t.Lines, func(i, j int) bool { return t.Lines[i].LineNo < t.Lines[j].LineNo })
	tx.store.committed = append(tx.store.committed, &t)
	tx.store.trades[t.ID] = &t
	return nil
}

func (tx *fakeTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.store.rolled++
	return nil
}

var (
	_ ProductCatalog = (*fakeCatalog)(nil)
	_ TradeStore     = (*fakeStore)(nil)
)
