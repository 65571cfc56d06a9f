// helpers_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai_learning_tracker/internal/handlers"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testServices はハンドラが使うサービスのモック一式
type testServices struct {
	completions *mocks.CompletionService
	courses     *mocks.CourseService
	levels      *mocks.LevelManager
	ledger      *mocks.PointsLedger
	thresholds  *mocks.ThresholdService
	users       *mocks.UserService
}

func newTestServices(t *testing.T) *testServices {
	return &testServices{
		completions: mocks.NewCompletionService(t),
		courses:     mocks.NewCourseService(t),
		levels:      mocks.NewLevelManager(t),
		ledger:      mocks.NewPointsLedger(t),
		thresholds:  mocks.NewThresholdService(t),
		users:       mocks.NewUserService(t),
	}
}

// newTestRouter は開発用ヘッダー認証で全ルートを組み立てる
func newTestRouter(s *testServices) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithLogger(r.Context(), logger)))
		})
	})
	handlers.RegisterRoutes(r, middleware.DevAuthMiddleware,
		handlers.NewCompletionHandler(s.completions, s.courses),
		handlers.NewProfileHandler(s.users, s.levels, s.ledger, s.thresholds),
		handlers.NewAdminHandler(s.thresholds, s.levels, s.users, s.completions, s.courses),
	)
	return r
}

// identity はリクエストに付けるユーザー。nil ならヘッダーなし。
type identity struct {
	userID uuid.UUID
	role   string
}

func createRequest(t *testing.T, method, path string, body interface{}, who *identity) *http.Request {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who != nil {
		req.Header.Set("X-User-ID", who.userID.String())
		if who.role != "" {
			req.Header.Set("X-User-Role", who.role)
		}
	}
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp.Error
}

// anyCtx はハンドラが渡すリクエストコンテキスト
var anyCtx = mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
