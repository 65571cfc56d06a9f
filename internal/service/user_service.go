//go:generate mockery --name UserService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"strings"

	"ai_learning_tracker/internal/level"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, username string) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error)
	// DeactivateUser は論理的に無効化する。ポイント履歴が参照するので行は消さない。
	DeactivateUser(ctx context.Context, userID uuid.UUID) error
	// Reconcile は users.total_points とポイント履歴の合計を突き合わせる
	Reconcile(ctx context.Context, userID uuid.UUID) (*model.ReconcileReport, error)
	ListUserIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error)
}

type userService struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	ledger     PointsLedger
	thresholds ThresholdService
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, ledger PointsLedger, thresholds ThresholdService) UserService {
	return &userService{
		db:         db,
		userRepo:   userRepo,
		ledger:     ledger,
		thresholds: thresholds,
	}
}

// CreateUser は最下位レベル・0ポイントでユーザーを作る
func (s *userService) CreateUser(ctx context.Context, username string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "username is required.", "username", model.ErrInvalidInput)
	}

	cfg, err := s.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:      uuid.New(),
		Username:    username,
		TotalPoints: 0,
		Level:       cfg.Lowest(),
		LevelPoints: 0,
		IsActive:    true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("USERNAME_TAKEN", "This username is already in use.", "username", err)
			}
			return model.NewStorageError("UserService.CreateUser", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User created", "user_id", user.UserID, "level", user.Level)
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found.", "", err)
		}
		return nil, model.NewStorageError("UserService.GetProfile", err)
	}

	cfg, err := s.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := level.ProgressFor(user.TotalPoints, cfg)
	if err != nil {
		return nil, err
	}

	return &model.ProfileResponse{
		UserID:            user.UserID,
		Username:          user.Username,
		TotalPoints:       user.TotalPoints,
		Level:             user.Level,
		LevelPoints:       user.LevelPoints,
		DisplayLevel:      user.DisplayLevel(),
		SelectedLevel:     user.SelectedLevel,
		NextLevel:         progress.NextLevel,
		PointsToNextLevel: progress.PointsToNextLevel,
		IsTopLevel:        progress.IsTopLevel,
		IsActive:          user.IsActive,
	}, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	if err := s.userRepo.SetActive(ctx, s.db, userID, false); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("USER_NOT_FOUND", "User not found.", "", err)
		}
		return model.NewStorageError("UserService.DeactivateUser", err)
	}
	logger.Info("User deactivated", "user_id", userID)
	return nil
}

func (s *userService) Reconcile(ctx context.Context, userID uuid.UUID) (*model.ReconcileReport, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found.", "", err)
		}
		return nil, model.NewStorageError("UserService.Reconcile", err)
	}
	ledgerTotal, err := s.ledger.TotalForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &model.ReconcileReport{
		UserID:      userID,
		CachedTotal: user.TotalPoints,
		LedgerTotal: ledgerTotal,
		Consistent:  user.TotalPoints == ledgerTotal,
	}
	if !report.Consistent {
		logger.Error("Total points do not match the points ledger",
			"cached_total", report.CachedTotal,
			"ledger_total", report.LedgerTotal,
		)
	}
	return report, nil
}

func (s *userService) ListUserIDs(ctx context.Context, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	ids, err := s.userRepo.ListIDsAfter(ctx, s.db, after, limit)
	if err != nil {
		return nil, model.NewStorageError("UserService.ListUserIDs", err)
	}
	return ids, nil
}
