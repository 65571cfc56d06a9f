//go:generate mockery --name PointsLedger --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// LedgerEntryInput は追記するポイント変化。after は AppendEntry が計算する。
type LedgerEntryInput struct {
	UserID            uuid.UUID
	CourseID          *uuid.UUID
	PointsChange      int64
	Reason            model.PointsReason
	Note              string
	TotalPointsBefore int64
	LevelBefore       string
	LevelAfter        string
}

// PointsLedger はポイント履歴 (監査ログ) の追記と読み取り
type PointsLedger interface {
	// AppendEntry は呼び出し側のトランザクション tx の中で1件追記する
	AppendEntry(ctx context.Context, tx *gorm.DB, in LedgerEntryInput) (*model.PointsLogEntry, error)
	TotalForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointsLogEntry, int64, error)
}

type pointsLedger struct {
	db   *gorm.DB
	repo repository.PointsLogRepository
}

func NewPointsLedger(db *gorm.DB, repo repository.PointsLogRepository) PointsLedger {
	return &pointsLedger{db: db, repo: repo}
}

func (l *pointsLedger) AppendEntry(ctx context.Context, tx *gorm.DB, in LedgerEntryInput) (*model.PointsLogEntry, error) {
	logger := middleware.GetLogger(ctx).With("user_id", in.UserID, "reason", in.Reason)

	if !in.Reason.Valid() {
		return nil, model.NewAppError("INVALID_REASON", fmt.Sprintf("unknown points reason %q", in.Reason), "reason", model.ErrInvalidInput)
	}

	after := in.TotalPointsBefore + in.PointsChange
	if after < 0 {
		logger.Error("Points ledger entry would make total points negative",
			"total_points_before", in.TotalPointsBefore,
			"points_change", in.PointsChange,
		)
		return nil, model.NewAppError("INVARIANT_VIOLATION", "Total points cannot become negative.", "",
			fmt.Errorf("%w: total %d + change %d", model.ErrInvariantViolation, in.TotalPointsBefore, in.PointsChange))
	}

	entry := &model.PointsLogEntry{
		UserID:            in.UserID,
		CourseID:          in.CourseID,
		PointsChange:      in.PointsChange,
		Reason:            in.Reason,
		Note:              in.Note,
		TotalPointsBefore: in.TotalPointsBefore,
		TotalPointsAfter:  after,
		LevelBefore:       in.LevelBefore,
		LevelAfter:        in.LevelAfter,
	}
	if err := l.repo.Create(ctx, tx, entry); err != nil {
		return nil, model.NewStorageError("PointsLedger.AppendEntry", err)
	}

	logger.Debug("Points ledger entry appended", "entry_id", entry.EntryID, "points_change", entry.PointsChange)
	return entry, nil
}

func (l *pointsLedger) TotalForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	total, err := l.repo.SumByUser(ctx, l.db, userID)
	if err != nil {
		return 0, model.NewStorageError("PointsLedger.TotalForUser", err)
	}
	return total, nil
}

// History は新しい順のページ。limit は 1..MaxHistoryLimit に丸める。
func (l *pointsLedger) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.PointsLogEntry, int64, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := l.repo.ListByUser(ctx, l.db, userID, limit, offset)
	if err != nil {
		return nil, 0, model.NewStorageError("PointsLedger.History", err)
	}
	return entries, total, nil
}
