//go:generate mockery --name LevelManager --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"sync/atomic"

	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/level"
	"ai_learning_tracker/internal/metrics"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
	// DirectionReset は以前のレベル名が今の閾値に存在しない場合
	DirectionReset = "reset"
)

// LevelTransition は再計算前後のレベル
type LevelTransition struct {
	Before    string `json:"before"`
	After     string `json:"after"`
	Changed   bool   `json:"changed"`
	Direction string `json:"direction,omitempty"`
}

type RecomputeSummary struct {
	UsersRecomputed int `json:"users_recomputed"`
	UsersChanged    int `json:"users_changed"`
}

type LevelManager interface {
	// Recompute は user の level / level_points を total_points から計算し直す (メモリ上のみ)
	Recompute(user *model.User, cfg level.Config) (LevelTransition, error)
	RecomputeUser(ctx context.Context, userID uuid.UUID) (*LevelTransition, error)
	RecomputeAll(ctx context.Context) (*RecomputeSummary, error)
	SetUserSelectedLevel(ctx context.Context, userID uuid.UUID, requested string) (*model.User, error)
}

type levelManager struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	ledger     PointsLedger
	thresholds ThresholdService
	cfg        *config.LevelsConfig
}

func NewLevelManager(db *gorm.DB, userRepo repository.UserRepository, ledger PointsLedger, thresholds ThresholdService, cfg *config.LevelsConfig) LevelManager {
	return &levelManager{
		db:         db,
		userRepo:   userRepo,
		ledger:     ledger,
		thresholds: thresholds,
		cfg:        cfg,
	}
}

func (m *levelManager) Recompute(user *model.User, cfg level.Config) (LevelTransition, error) {
	name, err := level.LevelForPoints(user.TotalPoints, cfg)
	if err != nil {
		return LevelTransition{}, err
	}
	lp, err := level.LevelPointsFor(user.TotalPoints, name, cfg)
	if err != nil {
		return LevelTransition{}, err
	}

	t := LevelTransition{Before: user.Level, After: name, Changed: user.Level != name}
	if t.Changed {
		t.Direction = direction(cfg, user.Level, name)
	}
	user.Level = name
	user.LevelPoints = lp

	// 選択レベルはポイントのレベルより上のときだけ意味を持つ
	if user.SelectedLevel != nil {
		if cmp, err := cfg.Compare(*user.SelectedLevel, name); err != nil || cmp <= 0 {
			user.SelectedLevel = nil
		}
	}
	return t, nil
}

func direction(cfg level.Config, before, after string) string {
	cmp, err := cfg.Compare(after, before)
	switch {
	case err != nil:
		return DirectionReset
	case cmp > 0:
		return DirectionUp
	default:
		return DirectionDown
	}
}

func (m *levelManager) RecomputeUser(ctx context.Context, userID uuid.UUID) (*LevelTransition, error) {
	cfg, err := m.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}
	t, _, err := m.recomputeOne(ctx, userID, cfg)
	if err != nil {
		return nil, err
	}
	if t.Changed {
		metrics.RecordLevelTransition(t.Direction)
	}
	return &t, nil
}

// recomputeOne は1ユーザーを自分のトランザクションで再計算する。dirty は何か書き戻したかどうか。
func (m *levelManager) recomputeOne(ctx context.Context, userID uuid.UUID, cfg level.Config) (LevelTransition, bool, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var (
		t     LevelTransition
		dirty bool
	)
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := m.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "User not found.", "user_id", err)
			}
			return model.NewStorageError("LevelManager.RecomputeUser", err)
		}

		before := *user
		t, err = m.Recompute(user, cfg)
		if err != nil {
			return err
		}
		dirty = before.Level != user.Level || before.LevelPoints != user.LevelPoints ||
			!sameLevelPtr(before.SelectedLevel, user.SelectedLevel)
		if !dirty {
			return nil
		}
		if err := m.userRepo.UpdateProgress(ctx, tx, user); err != nil {
			return model.NewStorageError("LevelManager.RecomputeUser", err)
		}
		return nil
	})
	if err != nil {
		return LevelTransition{}, false, err
	}
	if t.Changed {
		logger.Info("User level recomputed", "level_before", t.Before, "level_after", t.After, "direction", t.Direction)
	}
	return t, dirty, nil
}

// RecomputeAll は閾値変更後に全ユーザーをバッチで再計算する。
// 各ユーザーは別トランザクションで、並列数は levels.recompute_concurrency まで。
func (m *levelManager) RecomputeAll(ctx context.Context) (*RecomputeSummary, error) {
	logger := middleware.GetLogger(ctx)

	cfg, err := m.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}

	batchSize := m.cfg.RecomputeBatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultRecomputeBatchSize
	}
	concurrency := m.cfg.RecomputeConcurrency
	if concurrency <= 0 {
		concurrency = config.DefaultRecomputeConcurrency
	}

	var recomputed, changed atomic.Int64
	after := uuid.Nil
	for {
		ids, err := m.userRepo.ListIDsAfter(ctx, m.db, after, batchSize)
		if err != nil {
			return nil, model.NewStorageError("LevelManager.RecomputeAll", err)
		}
		if len(ids) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, id := range ids {
			g.Go(func() error {
				t, dirty, err := m.recomputeOne(gctx, id, cfg)
				if err != nil {
					return err
				}
				recomputed.Add(1)
				if dirty {
					changed.Add(1)
				}
				if t.Changed {
					metrics.RecordLevelTransition(t.Direction)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.Error("Recompute batch failed", "error", err, "recomputed", recomputed.Load())
			return nil, err
		}

		after = ids[len(ids)-1]
		if len(ids) < batchSize {
			break
		}
	}

	summary := &RecomputeSummary{
		UsersRecomputed: int(recomputed.Load()),
		UsersChanged:    int(changed.Load()),
	}
	logger.Info("Recomputed all user levels", "users_recomputed", summary.UsersRecomputed, "users_changed", summary.UsersChanged)
	return summary, nil
}

// SetUserSelectedLevel はポイントで到達したレベル以上の表示レベルを選ばせる。
// 到達レベルと同じものを選ぶと選択は解除される。
func (m *levelManager) SetUserSelectedLevel(ctx context.Context, userID uuid.UUID, requested string) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "requested_level", requested)

	cfg, err := m.thresholds.Current(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Rank(requested); !ok {
		return nil, model.NewAppError("UNKNOWN_LEVEL", "The requested level does not exist.", "level", model.ErrInvalidInput)
	}

	var (
		user     *model.User
		appended bool
	)
	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = m.userRepo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("USER_NOT_FOUND", "User not found.", "", err)
			}
			return model.NewStorageError("LevelManager.SetUserSelectedLevel", err)
		}

		displayedBefore := user.DisplayLevel()
		// 閾値が変わっていても、今の設定で到達レベルを判定する
		if _, err := m.Recompute(user, cfg); err != nil {
			return err
		}

		cmp, err := cfg.Compare(requested, user.Level)
		if err != nil {
			return model.NewAppError("UNKNOWN_LEVEL", "The requested level does not exist.", "level", err)
		}
		if cmp < 0 {
			logger.Info("Rejected level downgrade", "qualified_level", user.Level)
			return model.NewAppError("LEVEL_DOWNGRADE_NOT_ALLOWED",
				"You cannot select a level below "+user.Level+", which your points already qualify you for.",
				"level", model.ErrLevelDowngradeNotAllowed)
		}
		if cmp > 0 && !m.cfg.AllowManualUpgrade {
			return model.NewAppError("MANUAL_UPGRADE_DISABLED", "Selecting a higher level is currently disabled.", "level", model.ErrForbidden)
		}

		if cmp == 0 {
			user.SelectedLevel = nil
		} else {
			selected := requested
			user.SelectedLevel = &selected
		}

		if displayedAfter := user.DisplayLevel(); displayedAfter != displayedBefore {
			_, err := m.ledger.AppendEntry(ctx, tx, LedgerEntryInput{
				UserID:            user.UserID,
				PointsChange:      0,
				Reason:            model.ReasonLevelOverride,
				TotalPointsBefore: user.TotalPoints,
				LevelBefore:       displayedBefore,
				LevelAfter:        displayedAfter,
			})
			if err != nil {
				return err
			}
			appended = true
		}

		if err := m.userRepo.UpdateProgress(ctx, tx, user); err != nil {
			return model.NewStorageError("LevelManager.SetUserSelectedLevel", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if appended {
		metrics.RecordLedgerEntry(string(model.ReasonLevelOverride))
	}
	logger.Info("Selected level updated", "display_level", user.DisplayLevel())
	return user, nil
}

func sameLevelPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
