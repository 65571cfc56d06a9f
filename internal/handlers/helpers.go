package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// requestUser は認証ミドルウェアが入れたユーザーIDを取り出す。失敗時はレスポンスを書いて false。
func requestUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authentication is required.", "", model.ErrUnauthorized))
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam は URL パラメータ name を UUID として読む
func uuidParam(w http.ResponseWriter, r *http.Request, name string, logger *slog.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid ID format in URL", slog.String(name, raw), slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", name+" must be a UUID.", name, model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}

// intQuery はクエリパラメータを整数で読む。無ければ def。
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, model.NewAppError("INVALID_QUERY_PARAM", name+" must be a non-negative integer.", name, model.ErrInvalidInput)
	}
	return n, nil
}
