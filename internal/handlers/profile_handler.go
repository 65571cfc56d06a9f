// internal/handlers/profile_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service"
	"ai_learning_tracker/internal/webutil"
)

// ProfileHandler はログイン中のユーザー自身のポイントとレベル
type ProfileHandler struct {
	users      service.UserService
	levels     service.LevelManager
	ledger     service.PointsLedger
	thresholds service.ThresholdService
}

func NewProfileHandler(users service.UserService, levels service.LevelManager, ledger service.PointsLedger, thresholds service.ThresholdService) *ProfileHandler {
	return &ProfileHandler{users: users, levels: levels, ledger: ledger, thresholds: thresholds}
}

func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetMe"))

	userID, ok := requestUser(w, r, logger)
	if !ok {
		return
	}
	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// PutMyLevel は表示レベルを選ぶ。ポイントで到達したレベルより下は 422。
func (h *ProfileHandler) PutMyLevel(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PutMyLevel"))

	userID, ok := requestUser(w, r, logger)
	if !ok {
		return
	}

	var req model.SelectLevelRequest
	if err := webutil.DecodeAndValidate(r, &req, logger); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if _, err := h.levels.SetUserSelectedLevel(r.Context(), userID, req.Level); err != nil {
		logger.Warn("Error selecting level in service", slog.Any("error", err), slog.String("level", req.Level))
		webutil.HandleError(w, logger, err)
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, profile, logger)
}

// GetMyPoints はポイント履歴を新しい順に返す (?limit=&offset=)
func (h *ProfileHandler) GetMyPoints(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetMyPoints"))

	userID, ok := requestUser(w, r, logger)
	if !ok {
		return
	}
	limit, err := intQuery(r, "limit", service.DefaultHistoryLimit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	offset, err := intQuery(r, "offset", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	entries, total, err := h.ledger.History(r.Context(), userID, limit, offset)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if entries == nil {
		entries = []model.PointsLogEntry{}
	}
	if limit > service.MaxHistoryLimit {
		limit = service.MaxHistoryLimit
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.PointsHistoryResponse{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, logger)
}

// GetLevels は現在のレベル閾値 (誰でも参照可)
func (h *ProfileHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetLevels"))

	levels, err := h.thresholds.List(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, levels, logger)
}
