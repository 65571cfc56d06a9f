package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject, role string, expiresAt time.Time) string {
	t.Helper()
	claims := model.JWTCustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{Enabled: true, JWTSecret: testSecret}}
	userID := uuid.New()
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		wantRole       string
	}{
		{name: "正常系: 有効なトークン", header: "Bearer " + signToken(t, testSecret, userID.String(), "admin", future), expectedStatus: http.StatusOK, wantRole: "admin"},
		{name: "異常系: ヘッダーなし", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "異常系: Bearer 以外", header: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "異常系: 期限切れ", header: "Bearer " + signToken(t, testSecret, userID.String(), "", time.Now().Add(-time.Minute)), expectedStatus: http.StatusUnauthorized},
		{name: "異常系: 署名鍵が違う", header: "Bearer " + signToken(t, "other", userID.String(), "", future), expectedStatus: http.StatusUnauthorized},
		{name: "異常系: sub が UUID でない", header: "Bearer " + signToken(t, testSecret, "alice", "", future), expectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID uuid.UUID
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var err error
				gotID, err = middleware.GetUserIDFromContext(r.Context())
				require.NoError(t, err)
				gotRole, _ = r.Context().Value(model.UserRoleKey).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			middleware.JWTAuthMiddleware(cfg)(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, gotID)
				assert.Equal(t, tc.wantRole, gotRole)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := middleware.DevAuthMiddleware(middleware.RequireAdmin(ok))

	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{name: "正常系: admin", role: model.RoleAdmin, expectedStatus: http.StatusOK},
		{name: "異常系: ロールなし", role: "", expectedStatus: http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/levels", nil)
			req.Header.Set("X-User-ID", uuid.NewString())
			req.Header.Set("X-User-Role", tc.role)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}
