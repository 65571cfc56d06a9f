package model

import "time"

// LevelThreshold は管理者が編集するレベル閾値。min_points の昇順がレベルの順序になる。
type LevelThreshold struct {
	Name      string    `gorm:"type:varchar(64);primaryKey" json:"name"`
	MinPoints int64     `gorm:"not null;uniqueIndex" json:"min_points"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LevelThreshold) TableName() string {
	return "level_thresholds"
}

type LevelThresholdInput struct {
	Name      string `json:"name" validate:"required,max=64"`
	MinPoints int64  `json:"min_points" validate:"gte=0"`
}

// ReplaceThresholdsRequest は閾値の全置き換えリクエスト。配列の順序がレベルの順序。
type ReplaceThresholdsRequest struct {
	Levels []LevelThresholdInput `json:"levels" validate:"required,min=1,dive"`
}

type ReplaceThresholdsResponse struct {
	Levels          []LevelThreshold `json:"levels"`
	UsersRecomputed int              `json:"users_recomputed"`
	UsersChanged    int              `json:"users_changed"`
}
