//go:generate mockery --name CourseService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseService は管理者用の最小限のコースカタログ
type CourseService interface {
	CreateCourse(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
}

type courseService struct {
	db         *gorm.DB
	courseRepo repository.CourseRepository
}

func NewCourseService(db *gorm.DB, courseRepo repository.CourseRepository) CourseService {
	return &courseService{db: db, courseRepo: courseRepo}
}

func (s *courseService) CreateCourse(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	if req.Title == "" {
		return nil, model.NewAppError("VALIDATION_ERROR", "title is required.", "title", model.ErrInvalidInput)
	}
	if req.Points < 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "points must be zero or greater.", "points", model.ErrInvalidInput)
	}

	course := &model.Course{
		CourseID: uuid.New(),
		Title:    req.Title,
		Points:   req.Points,
		Source:   req.Source,
		URL:      req.URL,
		LevelTag: req.LevelTag,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.courseRepo.Create(ctx, tx, course); err != nil {
			return model.NewStorageError("CourseService.CreateCourse", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Course created", "course_id", course.CourseID, "points", course.Points)
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("COURSE_NOT_FOUND", "Course not found.", "course_id", err)
		}
		return nil, model.NewStorageError("CourseService.GetCourse", err)
	}
	return course, nil
}
