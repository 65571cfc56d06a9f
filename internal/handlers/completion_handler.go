// internal/handlers/completion_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service"
	"ai_learning_tracker/internal/webutil"
)

type CompletionHandler struct {
	completions service.CompletionService
	courses     service.CourseService
}

func NewCompletionHandler(completions service.CompletionService, courses service.CourseService) *CompletionHandler {
	return &CompletionHandler{completions: completions, courses: courses}
}

// PostCompletion はログイン中のユーザーのコースを完了にする。既に完了していれば 200 で no-op。
func (h *CompletionHandler) PostCompletion(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostCompletion"))

	userID, ok := requestUser(w, r, logger)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "course_id", logger)
	if !ok {
		return
	}

	result, err := h.completions.CompleteCourse(r.Context(), userID, courseID)
	if err != nil {
		logger.Warn("Error completing course in service", slog.Any("error", err), slog.String("course_id", courseID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyApplied {
		status = http.StatusOK
	}
	webutil.RespondWithJSON(w, status, result, logger)
}

// DeleteCompletion は完了を取り消す。未完了なら no-op。
func (h *CompletionHandler) DeleteCompletion(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteCompletion"))

	userID, ok := requestUser(w, r, logger)
	if !ok {
		return
	}
	courseID, ok := uuidParam(w, r, "course_id", logger)
	if !ok {
		return
	}

	result, err := h.completions.UncompleteCourse(r.Context(), userID, courseID)
	if err != nil {
		logger.Warn("Error uncompleting course in service", slog.Any("error", err), slog.String("course_id", courseID.String()))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// GetMyCompletions は完了中のコース一覧
func (h *CompletionHandler) GetMyCompletions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetMyCompletions"))

	userID, ok := requestUser(w, r, logger)
	if !ok {
		return
	}

	completions, err := h.completions.ListCompletions(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if completions == nil {
		completions = []*model.CourseCompletion{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, completions, logger)
}

func (h *CompletionHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetCourse"))

	courseID, ok := uuidParam(w, r, "course_id", logger)
	if !ok {
		return
	}
	course, err := h.courses.GetCourse(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}
