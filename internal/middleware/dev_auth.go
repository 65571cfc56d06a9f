// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/webutil"

	"github.com/google/uuid"
)

// DevAuthMiddleware は開発時用。X-User-ID と X-User-Role ヘッダーをそのまま信用する。
// ユーザーの存在チェックは行わない。
func DevAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] Missing X-User-ID header.", "", model.ErrUnauthorized))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Invalid X-User-ID format", "value", userIDStr)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] Invalid X-User-ID format.", "", model.ErrUnauthorized))
			return
		}

		role := r.Header.Get("X-User-Role")
		logger.Debug("[DEV AUTH] Identity set from headers (no validation)", "user_id", userID.String(), "role", role)

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), userID, role)))
	})
}
