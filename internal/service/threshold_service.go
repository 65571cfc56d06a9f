//go:generate mockery --name ThresholdService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"ai_learning_tracker/internal/cache"
	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/level"
	"ai_learning_tracker/internal/metrics"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"gorm.io/gorm"
)

// ThresholdCache はレベル閾値のキャッシュ。Get は値が無ければ cache.ErrMiss を返す。
type ThresholdCache interface {
	Get(ctx context.Context) ([]level.Threshold, error)
	Set(ctx context.Context, tiers []level.Threshold) error
	Invalidate(ctx context.Context) error
}

type ThresholdService interface {
	// Current は今の閾値のスナップショットを返す
	Current(ctx context.Context) (level.Config, error)
	List(ctx context.Context) ([]model.LevelThreshold, error)
	// Replace は検証してから全件を入れ替える。ユーザーの再計算は呼び出し側で行う。
	Replace(ctx context.Context, inputs []model.LevelThresholdInput) ([]model.LevelThreshold, error)
	EnsureSeeded(ctx context.Context, defaults []config.LevelDefault) error
}

type thresholdService struct {
	db    *gorm.DB
	repo  repository.ThresholdRepository
	cache ThresholdCache // nil ならキャッシュしない
}

func NewThresholdService(db *gorm.DB, repo repository.ThresholdRepository, c ThresholdCache) ThresholdService {
	return &thresholdService{db: db, repo: repo, cache: c}
}

func (s *thresholdService) Current(ctx context.Context) (level.Config, error) {
	logger := middleware.GetLogger(ctx)

	if s.cache != nil {
		tiers, err := s.cache.Get(ctx)
		switch {
		case err == nil:
			cfg, cfgErr := level.NewConfig(tiers)
			if cfgErr == nil {
				metrics.RecordThresholdCache("hit")
				return cfg, nil
			}
			logger.Warn("Cached level thresholds are invalid, reloading from DB", "error", cfgErr)
			metrics.RecordThresholdCache("error")
		case errors.Is(err, cache.ErrMiss):
			metrics.RecordThresholdCache("miss")
		default:
			logger.Warn("Level threshold cache unavailable, reading from DB", "error", err)
			metrics.RecordThresholdCache("error")
		}
	}

	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return level.Config{}, model.NewStorageError("ThresholdService.Current", err)
	}
	cfg, err := level.NewConfig(toThresholds(rows))
	if err != nil {
		logger.Error("Stored level thresholds are invalid", "error", err, "count", len(rows))
		return level.Config{}, model.NewAppError("CONFIGURATION_ERROR", "Level thresholds are not configured correctly.", "", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cfg.Tiers()); err != nil {
			logger.Warn("Failed to cache level thresholds", "error", err)
		}
	}
	return cfg, nil
}

func (s *thresholdService) List(ctx context.Context) ([]model.LevelThreshold, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, model.NewStorageError("ThresholdService.List", err)
	}
	if rows == nil {
		rows = []model.LevelThreshold{}
	}
	return rows, nil
}

func (s *thresholdService) Replace(ctx context.Context, inputs []model.LevelThresholdInput) ([]model.LevelThreshold, error) {
	logger := middleware.GetLogger(ctx)

	tiers := make([]level.Threshold, 0, len(inputs))
	for _, in := range inputs {
		tiers = append(tiers, level.Threshold{Name: in.Name, MinPoints: in.MinPoints})
	}
	// 不正な閾値は保存前に弾く
	if _, err := level.NewConfig(tiers); err != nil {
		logger.Warn("Rejected level threshold update", "error", err)
		return nil, model.NewAppError("INVALID_THRESHOLDS", err.Error(), "levels",
			errors.Join(model.ErrInvalidInput, err))
	}

	rows := make([]model.LevelThreshold, 0, len(tiers))
	for _, t := range tiers {
		rows = append(rows, model.LevelThreshold{Name: t.Name, MinPoints: t.MinPoints})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.ReplaceAll(ctx, tx, rows); err != nil {
			return model.NewStorageError("ThresholdService.Replace", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Warn("Failed to invalidate level threshold cache", "error", err)
		}
	}

	logger.Info("Level thresholds replaced", "levels", len(rows))
	return s.List(ctx)
}

// EnsureSeeded はテーブルが空のときだけ defaults を投入する
func (s *thresholdService) EnsureSeeded(ctx context.Context, defaults []config.LevelDefault) error {
	logger := middleware.GetLogger(ctx)

	count, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return model.NewStorageError("ThresholdService.EnsureSeeded", err)
	}
	if count > 0 {
		return nil
	}

	inputs := make([]model.LevelThresholdInput, 0, len(defaults))
	for _, d := range defaults {
		inputs = append(inputs, model.LevelThresholdInput{Name: d.Name, MinPoints: d.MinPoints})
	}
	if _, err := s.Replace(ctx, inputs); err != nil {
		return err
	}
	logger.Info("Seeded default level thresholds", "levels", len(inputs))
	return nil
}

func toThresholds(rows []model.LevelThreshold) []level.Threshold {
	tiers := make([]level.Threshold, 0, len(rows))
	for _, r := range rows {
		tiers = append(tiers, level.Threshold{Name: r.Name, MinPoints: r.MinPoints})
	}
	return tiers
}
