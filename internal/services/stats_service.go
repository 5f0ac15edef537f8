package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "posapi/internal/errors"
	"posapi/internal/models"
)

// statsService aggregates sales figures straight from storage.
type statsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB) StatsServicer {
	return &statsService{db: db}
}

func (s *statsService) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if err := db.Model(&models.Trade{}).Count(&stats.TotalTransactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if err := db.Model(&models.Trade{}).Select("COALESCE(SUM(total_amt), 0)").Scan(&stats.TotalSales).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	return &stats, nil
}
