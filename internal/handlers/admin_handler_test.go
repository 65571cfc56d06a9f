// internal/handlers/admin_handler_test.go
package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_RequiresAdmin(t *testing.T) {
	s := newTestServices(t)
	rr := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodPost, "/api/v1/admin/users",
		model.CreateUserRequest{Username: "bob"}, &identity{userID: uuid.New(), role: "learner"}))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rr).Code)
}

func TestAdminHandler_PutLevels(t *testing.T) {
	admin := &identity{userID: uuid.New(), role: model.RoleAdmin}
	inputs := []model.LevelThresholdInput{{Name: "Beginner", MinPoints: 0}, {Name: "Learner", MinPoints: 100}}
	stored := []model.LevelThreshold{{Name: "Beginner", MinPoints: 0}, {Name: "Learner", MinPoints: 100}}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(s *testServices)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 置き換えて再計算",
			body: model.ReplaceThresholdsRequest{Levels: inputs},
			setupMock: func(s *testServices) {
				s.thresholds.On("Replace", anyCtx, inputs).Return(stored, nil).Once()
				s.levels.On("RecomputeAll", anyCtx).Return(&service.RecomputeSummary{UsersRecomputed: 7, UsersChanged: 3}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: 単調増加でない",
			body: model.ReplaceThresholdsRequest{Levels: []model.LevelThresholdInput{{Name: "A", MinPoints: 0}, {Name: "B", MinPoints: 0}}},
			setupMock: func(s *testServices) {
				cause := fmt.Errorf("%w: thresholds must be strictly increasing", model.ErrConfiguration)
				s.thresholds.On("Replace", anyCtx, mock.Anything).
					Return(nil, model.NewAppError("INVALID_THRESHOLDS", cause.Error(), "levels", errors.Join(model.ErrInvalidInput, cause))).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_THRESHOLDS",
		},
		{
			name:           "異常系: levels が空",
			body:           model.ReplaceThresholdsRequest{Levels: []model.LevelThresholdInput{}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name: "異常系: 再計算の失敗",
			body: model.ReplaceThresholdsRequest{Levels: inputs},
			setupMock: func(s *testServices) {
				s.thresholds.On("Replace", anyCtx, inputs).Return(stored, nil).Once()
				s.levels.On("RecomputeAll", anyCtx).Return(nil, model.NewStorageError("LevelManager.RecomputeAll", errors.New("db down"))).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "STORAGE_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServices(t)
			if tc.setupMock != nil {
				tc.setupMock(s)
			}
			rr := httptest.NewRecorder()
			newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodPut, "/api/v1/admin/levels", tc.body, admin))

			assert.Equal(t, tc.expectedStatus, rr.Code, rr.Body.String())
			if tc.expectedCode != "" {
				assert.Equal(t, tc.expectedCode, decodeError(t, rr).Code)
				return
			}
			var got model.ReplaceThresholdsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Len(t, got.Levels, 2)
			assert.Equal(t, 7, got.UsersRecomputed)
			assert.Equal(t, 3, got.UsersChanged)
		})
	}
}

func TestAdminHandler_Users(t *testing.T) {
	admin := &identity{userID: uuid.New(), role: model.RoleAdmin}
	target := uuid.New()

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		setupMock      func(s *testServices)
		expectedStatus int
	}{
		{
			name:   "正常系: ユーザー作成",
			method: http.MethodPost,
			path:   "/api/v1/admin/users",
			body:   model.CreateUserRequest{Username: "carol"},
			setupMock: func(s *testServices) {
				s.users.On("CreateUser", anyCtx, "carol").Return(&model.User{UserID: target, Username: "carol", Level: "Beginner"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "異常系: ユーザー名の重複",
			method: http.MethodPost,
			path:   "/api/v1/admin/users",
			body:   model.CreateUserRequest{Username: "carol"},
			setupMock: func(s *testServices) {
				s.users.On("CreateUser", anyCtx, "carol").
					Return(nil, model.NewAppError("USERNAME_TAKEN", "taken", "username", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "正常系: 無効化",
			method: http.MethodPost,
			path:   "/api/v1/admin/users/" + target.String() + "/deactivate",
			setupMock: func(s *testServices) {
				s.users.On("DeactivateUser", anyCtx, target).Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "正常系: ポイント補正",
			method: http.MethodPost,
			path:   "/api/v1/admin/users/" + target.String() + "/adjustments",
			body:   model.AdjustPointsRequest{PointsChange: -40, Note: "duplicate import"},
			setupMock: func(s *testServices) {
				s.completions.On("AdjustPoints", anyCtx, target, int64(-40), "duplicate import").
					Return(&model.CompletionResult{UserID: target, PointsAwarded: -40, NewTotalPoints: 60}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "異常系: 補正で負になる",
			method: http.MethodPost,
			path:   "/api/v1/admin/users/" + target.String() + "/adjustments",
			body:   model.AdjustPointsRequest{PointsChange: -400, Note: "typo"},
			setupMock: func(s *testServices) {
				s.completions.On("AdjustPoints", anyCtx, target, int64(-400), "typo").
					Return(nil, model.NewAppError("INVARIANT_VIOLATION", "negative", "", model.ErrInvariantViolation)).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "異常系: 補正の note なし",
			method:         http.MethodPost,
			path:           "/api/v1/admin/users/" + target.String() + "/adjustments",
			body:           model.AdjustPointsRequest{PointsChange: 10},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "正常系: 1ユーザー再計算",
			method: http.MethodPost,
			path:   "/api/v1/admin/users/" + target.String() + "/recompute",
			setupMock: func(s *testServices) {
				s.levels.On("RecomputeUser", anyCtx, target).
					Return(&service.LevelTransition{Before: "Beginner", After: "Learner", Changed: true, Direction: service.DirectionUp}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "正常系: 照合",
			method: http.MethodGet,
			path:   "/api/v1/admin/users/" + target.String() + "/reconcile",
			setupMock: func(s *testServices) {
				s.users.On("Reconcile", anyCtx, target).
					Return(&model.ReconcileReport{UserID: target, CachedTotal: 90, LedgerTotal: 120}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: 不正な user_id",
			method:         http.MethodGet,
			path:           "/api/v1/admin/users/xyz/reconcile",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServices(t)
			if tc.setupMock != nil {
				tc.setupMock(s)
			}
			rr := httptest.NewRecorder()
			newTestRouter(s).ServeHTTP(rr, createRequest(t, tc.method, tc.path, tc.body, admin))
			assert.Equal(t, tc.expectedStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestAdminHandler_PostCourse(t *testing.T) {
	admin := &identity{userID: uuid.New(), role: model.RoleAdmin}
	req := model.CreateCourseRequest{Title: "Fine-tuning", Points: 300, URL: "https://example.com/ft"}

	s := newTestServices(t)
	s.courses.On("CreateCourse", anyCtx, &req).Return(&model.Course{CourseID: uuid.New(), Title: req.Title, Points: req.Points}, nil).Once()

	rr := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodPost, "/api/v1/admin/courses", req, admin))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	t.Run("異常系: 負のポイント", func(t *testing.T) {
		s := newTestServices(t)
		rr := httptest.NewRecorder()
		newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodPost, "/api/v1/admin/courses",
			model.CreateCourseRequest{Title: "x", Points: -5}, admin))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "points", decodeError(t, rr).Field)
	})
}
