// internal/model/completion.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseCompletion は「ユーザーがコースを完了した」という関係。
// (user_id, course_id) は一意で、未完了に戻した場合は Active=false にして行を残す。
type CourseCompletion struct {
	CompletionID  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"completion_id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_course" json:"user_id"`
	CourseID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_completion_user_course" json:"course_id"`
	PointsAwarded int64      `gorm:"not null" json:"points_awarded"` // 完了時点のコースポイント。取り消し時はこの値を戻す
	Active        bool       `gorm:"not null;index" json:"active"`
	CompletedAt   time.Time  `gorm:"not null" json:"completed_at"`
	UncompletedAt *time.Time `json:"uncompleted_at,omitempty"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`

	// 関連 (Preload用)。外部キー制約はマイグレーションで作らない
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID;-:migration" json:"course,omitempty"`
}

func (CourseCompletion) TableName() string {
	return "course_completions"
}

// CompletionResult は完了・未完了操作の結果
type CompletionResult struct {
	UserID         uuid.UUID  `json:"user_id"`
	CourseID       *uuid.UUID `json:"course_id,omitempty"`
	PointsAwarded  int64      `json:"points_awarded"` // 取り消しの場合は負数
	NewTotalPoints int64      `json:"new_total_points"`
	LevelPoints    int64      `json:"level_points"`
	LevelBefore    string     `json:"level_before"`
	LevelAfter     string     `json:"level_after"`
	LeveledUp      bool       `json:"leveled_up"`
	AlreadyApplied bool       `json:"already_applied"` // 冪等な no-op だった場合 true
}

// AdjustPointsRequest は管理者によるポイント補正
type AdjustPointsRequest struct {
	PointsChange int64  `json:"points_change" validate:"required"`
	Note         string `json:"note" validate:"required,max=255"`
}

// ReconcileReport はユーザーの集計値と履歴合計の照合結果
type ReconcileReport struct {
	UserID      uuid.UUID `json:"user_id"`
	CachedTotal int64     `json:"cached_total"`
	LedgerTotal int64     `json:"ledger_total"`
	Consistent  bool      `json:"consistent"`
}
