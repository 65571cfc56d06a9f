package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証する。
// sub をユーザーID、role をロールとしてコンテキストに入れる。
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized))
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header must be 'Bearer {token}'.", "", model.ErrUnauthorized))
				return
			}

			claims := &model.JWTCustomClaims{}
			// 署名と有効期限 (exp) を検証する
			token, err := jwt.ParseWithClaims(headerParts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.Auth.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("JWT auth failed: Invalid token", "error", err, "expired", errors.Is(err, jwt.ErrTokenExpired))
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "The token is invalid or expired.", "", model.ErrUnauthorized))
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("JWT auth failed: Invalid subject (sub) format", "subject", claims.Subject, "error", err)
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "The token does not identify a user.", "", model.ErrUnauthorized))
				return
			}

			ctx := withIdentity(r.Context(), userID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin は role=admin 以外を 403 で弾く
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())
		if role, _ := r.Context().Value(model.UserRoleKey).(string); role != model.RoleAdmin {
			logger.Warn("Admin route rejected", "role", role)
			webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "Administrator role is required.", "", model.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withIdentity(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, model.UserIDKey, userID)
	ctx = context.WithValue(ctx, model.UserRoleKey, role)
	// 以降のログにユーザーIDを付ける
	return WithLogger(ctx, GetLogger(ctx).With("auth_user_id", userID.String()))
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアを通っていない
		return uuid.Nil, model.NewAppError("INTERNAL_SERVER_ERROR", "Could not read the user from the request context.", "", model.ErrInternalServer)
	}
	return value, nil
}
