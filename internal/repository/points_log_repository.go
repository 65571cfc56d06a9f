//go:generate mockery --name PointsLogRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsLogRepository はポイント履歴の追記と集計。更新・削除のメソッドは持たない。
type PointsLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.PointsLogEntry) error
	SumByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit, offset int) ([]model.PointsLogEntry, int64, error)
}

type gormPointsLogRepository struct{}

func NewGormPointsLogRepository() PointsLogRepository {
	return &gormPointsLogRepository{}
}

func (r *gormPointsLogRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.PointsLogEntry) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(entry)
	if result.Error != nil {
		logger.Error("Error appending points log entry in DB",
			"error", result.Error,
			"user_id", entry.UserID.String(),
			"reason", string(entry.Reason),
			"points_change", entry.PointsChange,
		)
		return fmt.Errorf("gormPointsLogRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormPointsLogRepository) SumByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var sum int64
	result := db.WithContext(ctx).Model(&model.PointsLogEntry{}).
		Select("COALESCE(SUM(points_change), 0)").
		Where("user_id = ?", userID).
		Scan(&sum)
	if result.Error != nil {
		logger.Error("Error summing points log in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return 0, fmt.Errorf("gormPointsLogRepository.SumByUser: %w", result.Error)
	}
	return sum, nil
}

// ListByUser は新しい順のページと全件数を返す
func (r *gormPointsLogRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit, offset int) ([]model.PointsLogEntry, int64, error) {
	logger := middleware.GetLogger(ctx)

	var total int64
	if err := db.WithContext(ctx).Model(&model.PointsLogEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		logger.Error("Error counting points log in DB", "error", err, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormPointsLogRepository.ListByUser: %w", err)
	}

	entries := make([]model.PointsLogEntry, 0, limit)
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, entry_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries)
	if result.Error != nil {
		logger.Error("Error listing points log in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, 0, fmt.Errorf("gormPointsLogRepository.ListByUser: %w", result.Error)
	}
	return entries, total, nil
}
