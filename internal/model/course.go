// internal/model/course.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course はコースとその報酬ポイント。管理者側が所有し、ポイント計算からは読み取りのみ。
type Course struct {
	CourseID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"course_id"`
	Title     string         `gorm:"not null" json:"title"`
	Points    int64          `gorm:"not null;default:0;check:chk_courses_points,points >= 0" json:"points"`
	Source    string         `json:"source,omitempty"`
	URL       string         `json:"url,omitempty"`
	LevelTag  string         `gorm:"type:varchar(64)" json:"level_tag,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Course) TableName() string {
	return "courses"
}

// コース作成リクエストDTO
type CreateCourseRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Points   int64  `json:"points" validate:"gte=0"`
	Source   string `json:"source" validate:"omitempty,max=100"`
	URL      string `json:"url" validate:"omitempty,url"`
	LevelTag string `json:"level_tag" validate:"omitempty,max=64"`
}
