//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	// FindByIDForUpdate はトランザクション内で行ロックを取って読む (SQLiteでは無視される)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.User, error)
	UpdateProgress(ctx context.Context, tx *gorm.DB, user *model.User) error
	ListIDsAfter(ctx context.Context, db *gorm.DB, after uuid.UUID, limit int) ([]uuid.UUID, error)
	SetActive(ctx context.Context, db *gorm.DB, userID uuid.UUID, active bool) error
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			logger.Warn("Duplicate key error on create user",
				"error", result.Error,
				"username", user.Username,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB",
			"error", result.Error,
			"username", user.Username,
		)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	return r.find(ctx, db.WithContext(ctx), userID, "FindByID")
}

func (r *gormUserRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.User, error) {
	return r.find(ctx, tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, "FindByIDForUpdate")
}

func (r *gormUserRepository) find(ctx context.Context, q *gorm.DB, userID uuid.UUID, op string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := q.Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormUserRepository.%s: %w", op, result.Error)
	}
	return &user, nil
}

// UpdateProgress はポイントとレベルの列だけを書き戻す
func (r *gormUserRepository) UpdateProgress(ctx context.Context, tx *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"total_points":   user.TotalPoints,
			"level":          user.Level,
			"level_points":   user.LevelPoints,
			"selected_level": user.SelectedLevel,
		})
	if result.Error != nil {
		logger.Error("Error updating user progress in DB",
			"error", result.Error,
			"user_id", user.UserID.String(),
		)
		return fmt.Errorf("gormUserRepository.UpdateProgress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListIDsAfter は user_id 順に after より後ろのIDを最大 limit 件返す (キーセットページング)
func (r *gormUserRepository) ListIDsAfter(ctx context.Context, db *gorm.DB, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	logger := middleware.GetLogger(ctx)
	var ids []uuid.UUID

	q := db.WithContext(ctx).Model(&model.User{}).Order("user_id ASC").Limit(limit)
	if after != uuid.Nil {
		q = q.Where("user_id > ?", after)
	}
	if err := q.Pluck("user_id", &ids).Error; err != nil {
		logger.Error("Error listing user IDs in DB", "error", err, "after", after.String())
		return nil, fmt.Errorf("gormUserRepository.ListIDsAfter: %w", err)
	}
	return ids, nil
}

func (r *gormUserRepository) SetActive(ctx context.Context, db *gorm.DB, userID uuid.UUID, active bool) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("is_active", active)
	if result.Error != nil {
		logger.Error("Error updating user status in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"active", active,
		)
		return fmt.Errorf("gormUserRepository.SetActive: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
