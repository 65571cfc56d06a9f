//go:generate mockery --name CompletionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompletionRepository interface {
	// Find は active に関係なく (user_id, course_id) の行を返す
	Find(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.CourseCompletion, error)
	// Create は一意制約違反のとき model.ErrConflict を返す
	Create(ctx context.Context, tx *gorm.DB, completion *model.CourseCompletion) error
	// Reactivate / Deactivate は状態が実際に切り替わったときだけ true を返す
	Reactivate(ctx context.Context, tx *gorm.DB, completionID uuid.UUID, pointsAwarded int64, at time.Time) (bool, error)
	Deactivate(ctx context.Context, tx *gorm.DB, completionID uuid.UUID, at time.Time) (bool, error)
	ListActiveByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.CourseCompletion, error)
}

type gormCompletionRepository struct{}

func NewGormCompletionRepository() CompletionRepository {
	return &gormCompletionRepository{}
}

func (r *gormCompletionRepository) Find(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.CourseCompletion, error) {
	logger := middleware.GetLogger(ctx)
	var completion model.CourseCompletion
	result := db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&completion)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding completion in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"course_id", courseID.String(),
		)
		return nil, fmt.Errorf("gormCompletionRepository.Find: %w", result.Error)
	}
	return &completion, nil
}

func (r *gormCompletionRepository) Create(ctx context.Context, tx *gorm.DB, completion *model.CourseCompletion) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(completion)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Completion already recorded by a concurrent request",
				"user_id", completion.UserID.String(),
				"course_id", completion.CourseID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating completion in DB",
			"error", result.Error,
			"user_id", completion.UserID.String(),
			"course_id", completion.CourseID.String(),
		)
		return fmt.Errorf("gormCompletionRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCompletionRepository) Reactivate(ctx context.Context, tx *gorm.DB, completionID uuid.UUID, pointsAwarded int64, at time.Time) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.CourseCompletion{}).
		Where("completion_id = ? AND active = ?", completionID, false).
		Updates(map[string]interface{}{
			"active":         true,
			"points_awarded": pointsAwarded,
			"completed_at":   at,
			"uncompleted_at": nil,
		})
	if result.Error != nil {
		logger.Error("Error reactivating completion in DB",
			"error", result.Error,
			"completion_id", completionID.String(),
		)
		return false, fmt.Errorf("gormCompletionRepository.Reactivate: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *gormCompletionRepository) Deactivate(ctx context.Context, tx *gorm.DB, completionID uuid.UUID, at time.Time) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.CourseCompletion{}).
		Where("completion_id = ? AND active = ?", completionID, true).
		Updates(map[string]interface{}{
			"active":         false,
			"uncompleted_at": at,
		})
	if result.Error != nil {
		logger.Error("Error deactivating completion in DB",
			"error", result.Error,
			"completion_id", completionID.String(),
		)
		return false, fmt.Errorf("gormCompletionRepository.Deactivate: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ListActiveByUser は完了中のものを新しい順に返す。論理削除されたコースも履歴として残す。
func (r *gormCompletionRepository) ListActiveByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.CourseCompletion, error) {
	logger := middleware.GetLogger(ctx)
	var completions []*model.CourseCompletion
	result := db.WithContext(ctx).
		Preload("Course", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ? AND active = ?", userID, true).
		Order("completed_at DESC").
		Find(&completions)
	if result.Error != nil {
		logger.Error("Error listing completions in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormCompletionRepository.ListActiveByUser: %w", result.Error)
	}
	return completions, nil
}
