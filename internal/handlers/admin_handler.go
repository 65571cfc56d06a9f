// internal/handlers/admin_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service"
	"ai_learning_tracker/internal/webutil"
)

// AdminHandler は role=admin のみが呼べる操作
type AdminHandler struct {
	thresholds  service.ThresholdService
	levels      service.LevelManager
	users       service.UserService
	completions service.CompletionService
	courses     service.CourseService
}

func NewAdminHandler(
	thresholds service.ThresholdService,
	levels service.LevelManager,
	users service.UserService,
	completions service.CompletionService,
	courses service.CourseService,
) *AdminHandler {
	return &AdminHandler{
		thresholds:  thresholds,
		levels:      levels,
		users:       users,
		completions: completions,
		courses:     courses,
	}
}

// PutLevels は閾値を置き換え、全ユーザーのレベルを再計算する
func (h *AdminHandler) PutLevels(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PutLevels"))

	var req model.ReplaceThresholdsRequest
	if err := webutil.DecodeAndValidate(r, &req, logger); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	levels, err := h.thresholds.Replace(r.Context(), req.Levels)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	summary, err := h.levels.RecomputeAll(r.Context())
	if err != nil {
		// 閾値は保存済み。再計算は POST /admin/users/{id}/recompute か次の操作で追いつく。
		logger.Error("Thresholds replaced but recompute failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Level thresholds updated",
		slog.Int("levels", len(levels)),
		slog.Int("users_recomputed", summary.UsersRecomputed),
		slog.Int("users_changed", summary.UsersChanged),
	)
	webutil.RespondWithJSON(w, http.StatusOK, model.ReplaceThresholdsResponse{
		Levels:          levels,
		UsersRecomputed: summary.UsersRecomputed,
		UsersChanged:    summary.UsersChanged,
	}, logger)
}

func (h *AdminHandler) PostUser(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostUser"))

	var req model.CreateUserRequest
	if err := webutil.DecodeAndValidate(r, &req, logger); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	user, err := h.users.CreateUser(r.Context(), req.Username)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, user, logger)
}

func (h *AdminHandler) PostDeactivate(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostDeactivate"))

	userID, ok := uuidParam(w, r, "user_id", logger)
	if !ok {
		return
	}
	if err := h.users.DeactivateUser(r.Context(), userID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) PostAdjustment(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostAdjustment"))

	userID, ok := uuidParam(w, r, "user_id", logger)
	if !ok {
		return
	}
	var req model.AdjustPointsRequest
	if err := webutil.DecodeAndValidate(r, &req, logger); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	result, err := h.completions.AdjustPoints(r.Context(), userID, req.PointsChange, req.Note)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *AdminHandler) PostRecompute(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostRecompute"))

	userID, ok := uuidParam(w, r, "user_id", logger)
	if !ok {
		return
	}
	transition, err := h.levels.RecomputeUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, transition, logger)
}

func (h *AdminHandler) GetReconcile(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetReconcile"))

	userID, ok := uuidParam(w, r, "user_id", logger)
	if !ok {
		return
	}
	report, err := h.users.Reconcile(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}

func (h *AdminHandler) PostCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostCourse"))

	var req model.CreateCourseRequest
	if err := webutil.DecodeAndValidate(r, &req, logger); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	course, err := h.courses.CreateCourse(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}
