package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "posapi/internal/errors"
	"posapi/internal/models"
	"posapi/internal/services"
)

const lineBatchSize = 100

// TradeRepository persists trades and their lines.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a TradeRepository.
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// BeginTransaction opens a database transaction bound to ctx. Cancelling
// ctx before Commit rolls the transaction back.
func (r *TradeRepository) BeginTransaction(ctx context.Context) (services.TradeTx, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, classify(tx.Error, "begin transaction")
	}
	return &tradeTx{tx: tx}, nil
}

// GetTrade loads a trade with its lines ordered by dtl_id.
func (r *TradeRepository) GetTrade(ctx context.Context, tradeID uint) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("dtl_id ASC")
		}).
		Where("trd_id = ?", tradeID).
		First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithDetails(
				apperrors.WithMessage(apperrors.ErrTradeNotFound, fmt.Sprintf("Trade %d is not registered", tradeID)),
				map[string]any{"trade_id": tradeID},
			)
		}
		return nil, classify(err, "get trade")
	}
	return &trade, nil
}

type tradeTx struct {
	tx *gorm.DB
}

// InsertTrade stores the header only; lines go through InsertTradeLines.
func (t *tradeTx) InsertTrade(ctx context.Context, header *models.Trade) (uint, error) {
	if err := t.tx.WithContext(ctx).Omit(clause.Associations).Create(header).Error; err != nil {
		return 0, classify(err, "insert trade")
	}
	return header.ID, nil
}

func (t *tradeTx) InsertTradeLines(ctx context.Context, tradeID uint, lines []models.TradeLine) error {
	if len(lines) == 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "trade has no lines")
	}

	rows := make([]models.TradeLine, len(lines))
	for i, l := range lines {
		l.TradeID = tradeID
		rows[i] = l
	}

	if err := t.tx.WithContext(ctx).Omit(clause.Associations).CreateInBatches(rows, lineBatchSize).Error; err != nil {
		return classify(err, fmt.Sprintf("insert lines of trade %d", tradeID))
	}
	return nil
}

func (t *tradeTx) Commit() error {
	return classify(t.tx.Commit().Error, "commit trade")
}

// Rollback is a no-op once the transaction has already finished.
func (t *tradeTx) Rollback() error {
	err := t.tx.Rollback().Error
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return classify(err, "rollback trade")
}

var _ services.TradeStore = (*TradeRepository)(nil)
