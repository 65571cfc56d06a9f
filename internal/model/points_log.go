package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PointsReason string

const (
	ReasonCourseCompleted   PointsReason = "course_completed"
	ReasonCourseUncompleted PointsReason = "course_uncompleted"
	ReasonLevelOverride     PointsReason = "level_override"
	ReasonAdminAdjustment   PointsReason = "admin_adjustment"
)

func (r PointsReason) Valid() bool {
	switch r {
	case ReasonCourseCompleted, ReasonCourseUncompleted, ReasonLevelOverride, ReasonAdminAdjustment:
		return true
	}
	return false
}

// PointsLogEntry はポイント増減の監査ログ。追記のみで、更新・削除はしない。
// ユーザーの total_points はこのテーブルの points_change の合計と一致する。
type PointsLogEntry struct {
	EntryID           uint64       `gorm:"primaryKey;autoIncrement" json:"entry_id"`
	UserID            uuid.UUID    `gorm:"type:uuid;not null;index:idx_points_log_user_created,priority:1" json:"user_id"`
	CourseID          *uuid.UUID   `gorm:"type:uuid;index" json:"course_id,omitempty"` // コース以外の増減では NULL
	PointsChange      int64        `gorm:"not null" json:"points_change"`
	Reason            PointsReason `gorm:"type:varchar(32);not null" json:"reason"`
	Note              string       `gorm:"type:varchar(255)" json:"note,omitempty"`
	TotalPointsBefore int64        `gorm:"not null" json:"total_points_before"`
	TotalPointsAfter  int64        `gorm:"not null" json:"total_points_after"`
	LevelBefore       string       `gorm:"type:varchar(64);not null" json:"level_before"`
	LevelAfter        string       `gorm:"type:varchar(64);not null" json:"level_after"`
	CreatedAt         time.Time    `gorm:"index:idx_points_log_user_created,priority:2" json:"created_at"`
}

func (PointsLogEntry) TableName() string {
	return "points_log_entries"
}

// BeforeUpdate はGORM経由の更新を拒否する
func (PointsLogEntry) BeforeUpdate(tx *gorm.DB) error {
	return ErrAppendOnly
}

// BeforeDelete はGORM経由の削除を拒否する
func (PointsLogEntry) BeforeDelete(tx *gorm.DB) error {
	return ErrAppendOnly
}

// PointsHistoryResponse はポイント履歴のページ
type PointsHistoryResponse struct {
	Entries []PointsLogEntry `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
