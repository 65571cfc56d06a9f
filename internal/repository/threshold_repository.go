//go:generate mockery --name ThresholdRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"

	"gorm.io/gorm"
)

type ThresholdRepository interface {
	// List は min_points の昇順 (= レベルの順序) で返す
	List(ctx context.Context, db *gorm.DB) ([]model.LevelThreshold, error)
	// ReplaceAll は既存の行を全て消して入れ直す。呼び出し側のトランザクション内で使う。
	ReplaceAll(ctx context.Context, tx *gorm.DB, thresholds []model.LevelThreshold) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}

type gormThresholdRepository struct{}

func NewGormThresholdRepository() ThresholdRepository {
	return &gormThresholdRepository{}
}

func (r *gormThresholdRepository) List(ctx context.Context, db *gorm.DB) ([]model.LevelThreshold, error) {
	logger := middleware.GetLogger(ctx)
	var thresholds []model.LevelThreshold
	if err := db.WithContext(ctx).Order("min_points ASC").Find(&thresholds).Error; err != nil {
		logger.Error("Error listing level thresholds in DB", "error", err)
		return nil, fmt.Errorf("gormThresholdRepository.List: %w", err)
	}
	return thresholds, nil
}

func (r *gormThresholdRepository) ReplaceAll(ctx context.Context, tx *gorm.DB, thresholds []model.LevelThreshold) error {
	logger := middleware.GetLogger(ctx)

	err := tx.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.LevelThreshold{}).Error
	if err != nil {
		logger.Error("Error clearing level thresholds in DB", "error", err)
		return fmt.Errorf("gormThresholdRepository.ReplaceAll: %w", err)
	}

	if len(thresholds) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(&thresholds).Error; err != nil {
		logger.Error("Error inserting level thresholds in DB", "error", err, "count", len(thresholds))
		return fmt.Errorf("gormThresholdRepository.ReplaceAll: %w", err)
	}
	return nil
}

func (r *gormThresholdRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	if err := db.WithContext(ctx).Model(&model.LevelThreshold{}).Count(&count).Error; err != nil {
		logger.Error("Error counting level thresholds in DB", "error", err)
		return 0, fmt.Errorf("gormThresholdRepository.Count: %w", err)
	}
	return count, nil
}
