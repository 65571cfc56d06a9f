//go:generate mockery --name CompletionService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai_learning_tracker/internal/level"
	"ai_learning_tracker/internal/metrics"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errAlreadyApplied はトランザクションを巻き戻して no-op の結果を返すための内部エラー
var errAlreadyApplied = errors.New("completion state already applied")

// CompletionService はコース完了・取り消しとポイント補正の唯一の入口。
// 完了行・ポイント履歴・ユーザー集計値は1つのトランザクションでまとめて更新する。
type CompletionService interface {
	CompleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.CompletionResult, error)
	UncompleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.CompletionResult, error)
	AdjustPoints(ctx context.Context, userID uuid.UUID, delta int64, note string) (*model.CompletionResult, error)
	ListCompletions(ctx context.Context, userID uuid.UUID) ([]*model.CourseCompletion, error)
}

type completionService struct {
	db             *gorm.DB
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	completionRepo repository.CompletionRepository
	ledger         PointsLedger
	levels         LevelManager
	thresholds     ThresholdService
}

func NewCompletionService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	completionRepo repository.CompletionRepository,
	ledger PointsLedger,
	levels LevelManager,
	thresholds ThresholdService,
) CompletionService {
	return &completionService{
		db:             db,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		completionRepo: completionRepo,
		ledger:         ledger,
		levels:         levels,
		thresholds:     thresholds,
	}
}

func (s *completionService) CompleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.CompletionResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID)

	// 閾値はトランザクションの外で読む (途中で変わっても次の再計算から反映)
	cfg, err := s.thresholds.Current(ctx)
	if err != nil {
		metrics.RecordCompletion(metrics.ActionComplete, metrics.ResultError)
		return nil, err
	}

	var result *model.CompletionResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.lockActiveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		existing, err := s.completionRepo.Find(ctx, tx, userID, courseID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.NewStorageError("CompletionService.CompleteCourse", err)
		}
		if existing != nil && existing.Active {
			result = noopResult(user, courseID)
			return nil
		}

		course, err := s.courseRepo.FindByID(ctx, tx, courseID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("COURSE_NOT_FOUND", "Course not found.", "course_id", err)
			}
			return model.NewStorageError("CompletionService.CompleteCourse", err)
		}

		now := time.Now().UTC()
		if existing == nil {
			err := s.completionRepo.Create(ctx, tx, &model.CourseCompletion{
				CompletionID:  uuid.New(),
				UserID:        userID,
				CourseID:      courseID,
				PointsAwarded: course.Points,
				Active:        true,
				CompletedAt:   now,
			})
			if err != nil {
				if errors.Is(err, model.ErrConflict) {
					return errAlreadyApplied
				}
				return model.NewStorageError("CompletionService.CompleteCourse", err)
			}
		} else {
			switched, err := s.completionRepo.Reactivate(ctx, tx, existing.CompletionID, course.Points, now)
			if err != nil {
				return model.NewStorageError("CompletionService.CompleteCourse", err)
			}
			if !switched {
				return errAlreadyApplied
			}
		}

		result, err = s.applyPoints(ctx, tx, user, cfg, course.Points, model.ReasonCourseCompleted, &courseID, "")
		return err
	})

	if errors.Is(err, errAlreadyApplied) {
		logger.Info("Course already completed by a concurrent request")
		return s.settledNoop(ctx, metrics.ActionComplete, userID, courseID)
	}
	if err != nil {
		metrics.RecordCompletion(metrics.ActionComplete, metrics.ResultError)
		return nil, err
	}

	s.record(metrics.ActionComplete, result, model.ReasonCourseCompleted)
	if result.AlreadyApplied {
		logger.Info("Course already completed, nothing awarded")
	} else {
		logger.Info("Course completed",
			"points_awarded", result.PointsAwarded,
			"new_total_points", result.NewTotalPoints,
			"level_before", result.LevelBefore,
			"level_after", result.LevelAfter,
		)
	}
	return result, nil
}

// UncompleteCourse は完了時に付与したポイントをそのまま差し引く。完了していなければ no-op。
func (s *completionService) UncompleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.CompletionResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "course_id", courseID)

	cfg, err := s.thresholds.Current(ctx)
	if err != nil {
		metrics.RecordCompletion(metrics.ActionUncomplete, metrics.ResultError)
		return nil, err
	}

	var result *model.CompletionResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.lockActiveUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		existing, err := s.completionRepo.Find(ctx, tx, userID, courseID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.NewStorageError("CompletionService.UncompleteCourse", err)
		}
		if existing == nil || !existing.Active {
			result = noopResult(user, courseID)
			return nil
		}

		switched, err := s.completionRepo.Deactivate(ctx, tx, existing.CompletionID, time.Now().UTC())
		if err != nil {
			return model.NewStorageError("CompletionService.UncompleteCourse", err)
		}
		if !switched {
			return errAlreadyApplied
		}

		result, err = s.applyPoints(ctx, tx, user, cfg, -existing.PointsAwarded, model.ReasonCourseUncompleted, &courseID, "")
		return err
	})

	if errors.Is(err, errAlreadyApplied) {
		logger.Info("Course already uncompleted by a concurrent request")
		return s.settledNoop(ctx, metrics.ActionUncomplete, userID, courseID)
	}
	if err != nil {
		metrics.RecordCompletion(metrics.ActionUncomplete, metrics.ResultError)
		return nil, err
	}

	s.record(metrics.ActionUncomplete, result, model.ReasonCourseUncompleted)
	if !result.AlreadyApplied {
		logger.Info("Course uncompleted",
			"points_removed", -result.PointsAwarded,
			"new_total_points", result.NewTotalPoints,
			"level_before", result.LevelBefore,
			"level_after", result.LevelAfter,
		)
	}
	return result, nil
}

// AdjustPoints は管理者によるポイント補正。レベルが下がることもあるが、合計は負にできない。
func (s *completionService) AdjustPoints(ctx context.Context, userID uuid.UUID, delta int64, note string) (*model.CompletionResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if delta == 0 {
		return nil, model.NewAppError("INVALID_ADJUSTMENT", "points_change must not be zero.", "points_change", model.ErrInvalidInput)
	}

	cfg, err := s.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}

	var result *model.CompletionResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "User not found.", "user_id", err)
			}
			return model.NewStorageError("CompletionService.AdjustPoints", err)
		}
		result, err = s.applyPoints(ctx, tx, user, cfg, delta, model.ReasonAdminAdjustment, nil, note)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordLedgerEntry(string(model.ReasonAdminAdjustment))
	s.recordTransition(result)
	logger.Info("Points adjusted by admin",
		"points_change", delta,
		"new_total_points", result.NewTotalPoints,
		"level_after", result.LevelAfter,
	)
	return result, nil
}

func (s *completionService) ListCompletions(ctx context.Context, userID uuid.UUID) ([]*model.CourseCompletion, error) {
	completions, err := s.completionRepo.ListActiveByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewStorageError("CompletionService.ListCompletions", err)
	}
	if completions == nil {
		completions = []*model.CourseCompletion{}
	}
	return completions, nil
}

// applyPoints はポイントを加減し、レベルを再計算し、履歴を追記してユーザーを書き戻す。tx の中で呼ぶ。
func (s *completionService) applyPoints(
	ctx context.Context,
	tx *gorm.DB,
	user *model.User,
	cfg level.Config,
	delta int64,
	reason model.PointsReason,
	courseID *uuid.UUID,
	note string,
) (*model.CompletionResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", user.UserID)

	before := user.TotalPoints
	newTotal := before + delta
	if newTotal < 0 {
		metrics.RecordInvariantViolation()
		logger.Error("Points change would make total points negative, rolling back",
			"total_points", before,
			"points_change", delta,
			"reason", reason,
		)
		return nil, model.NewAppError("INVARIANT_VIOLATION", "Total points cannot become negative.", "",
			fmt.Errorf("%w: total %d + change %d", model.ErrInvariantViolation, before, delta))
	}

	user.TotalPoints = newTotal
	transition, err := s.levels.Recompute(user, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.AppendEntry(ctx, tx, LedgerEntryInput{
		UserID:            user.UserID,
		CourseID:          courseID,
		PointsChange:      delta,
		Reason:            reason,
		Note:              note,
		TotalPointsBefore: before,
		LevelBefore:       transition.Before,
		LevelAfter:        transition.After,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProgress(ctx, tx, user); err != nil {
		return nil, model.NewStorageError("CompletionService.applyPoints", err)
	}

	return &model.CompletionResult{
		UserID:         user.UserID,
		CourseID:       courseID,
		PointsAwarded:  delta,
		NewTotalPoints: user.TotalPoints,
		LevelPoints:    user.LevelPoints,
		LevelBefore:    transition.Before,
		LevelAfter:     transition.After,
		LeveledUp:      transition.Direction == DirectionUp,
	}, nil
}

func (s *completionService) lockActiveUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByIDForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found.", "", err)
		}
		return nil, model.NewStorageError("CompletionService.lockActiveUser", err)
	}
	if !user.IsActive {
		return nil, model.NewAppError("USER_INACTIVE", "This account is deactivated.", "", model.ErrForbidden)
	}
	return user, nil
}

// settledNoop は競合した相手がコミットした後の状態を読み直して no-op として返す
func (s *completionService) settledNoop(ctx context.Context, action string, userID, courseID uuid.UUID) (*model.CompletionResult, error) {
	user, err := s.userRepo.FindByID(ctx, s.db, userID)
	if err != nil {
		metrics.RecordCompletion(action, metrics.ResultError)
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("USER_NOT_FOUND", "User not found.", "", err)
		}
		return nil, model.NewStorageError("CompletionService.settledNoop", err)
	}
	metrics.RecordCompletion(action, metrics.ResultNoop)
	return noopResult(user, courseID), nil
}

func (s *completionService) record(action string, result *model.CompletionResult, reason model.PointsReason) {
	if result.AlreadyApplied {
		metrics.RecordCompletion(action, metrics.ResultNoop)
		return
	}
	metrics.RecordCompletion(action, metrics.ResultApplied)
	metrics.RecordLedgerEntry(string(reason))
	s.recordTransition(result)
}

func (s *completionService) recordTransition(result *model.CompletionResult) {
	if result.LevelBefore == result.LevelAfter {
		return
	}
	if result.LeveledUp {
		metrics.RecordLevelTransition(DirectionUp)
	} else {
		metrics.RecordLevelTransition(DirectionDown)
	}
}

func noopResult(user *model.User, courseID uuid.UUID) *model.CompletionResult {
	return &model.CompletionResult{
		UserID:         user.UserID,
		CourseID:       &courseID,
		PointsAwarded:  0,
		NewTotalPoints: user.TotalPoints,
		LevelPoints:    user.LevelPoints,
		LevelBefore:    user.Level,
		LevelAfter:     user.Level,
		AlreadyApplied: true,
	}
}
