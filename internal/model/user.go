package model

import (
	"time"

	"github.com/google/uuid"
)

// User は学習者。ポイントとレベルの集計値を持つ。
// 論理的な状態 (IsActive) のみで管理し、物理削除はしない。
type User struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username      string    `gorm:"not null;uniqueIndex" json:"username"`
	TotalPoints   int64     `gorm:"not null;default:0" json:"total_points"`
	Level         string    `gorm:"type:varchar(64);not null" json:"level"` // ポイントから算出したレベル
	LevelPoints   int64     `gorm:"not null;default:0" json:"level_points"` // 現レベルに入ってからのポイント
	SelectedLevel *string   `gorm:"type:varchar(64)" json:"selected_level,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// DisplayLevel は画面に表示するレベル (ユーザーが選んだ上位レベルがあればそちら)
func (u *User) DisplayLevel() string {
	if u.SelectedLevel != nil && *u.SelectedLevel != "" {
		return *u.SelectedLevel
	}
	return u.Level
}

type ContextKey string

const (
	UserIDKey   ContextKey = "userID"
	UserRoleKey ContextKey = "userRole"
)

const RoleAdmin = "admin"

// CreateUserRequest は管理者によるユーザー作成リクエスト
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
}

// SelectLevelRequest は表示レベル変更リクエスト
type SelectLevelRequest struct {
	Level string `json:"level" validate:"required,max=64"`
}

// ProfileResponse は /me のレスポンス
type ProfileResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	Username          string    `json:"username"`
	TotalPoints       int64     `json:"total_points"`
	Level             string    `json:"level"`
	LevelPoints       int64     `json:"level_points"`
	DisplayLevel      string    `json:"display_level"`
	SelectedLevel     *string   `json:"selected_level,omitempty"`
	NextLevel         string    `json:"next_level,omitempty"`
	PointsToNextLevel int64     `json:"points_to_next_level"`
	IsTopLevel        bool      `json:"is_top_level"`
	IsActive          bool      `json:"is_active"`
}
