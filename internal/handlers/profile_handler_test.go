// internal/handlers/profile_handler_test.go
package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHandler_GetMe(t *testing.T) {
	userID := uuid.New()
	s := newTestServices(t)
	s.users.On("GetProfile", anyCtx, userID).Return(&model.ProfileResponse{
		UserID: userID, Username: "alice", TotalPoints: 350, Level: "Learner", LevelPoints: 150,
		DisplayLevel: "Learner", NextLevel: "Intermediate", PointsToNextLevel: 150,
	}, nil).Once()

	rr := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodGet, "/api/v1/me", nil, &identity{userID: userID}))

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(150), got.LevelPoints)
	assert.Equal(t, "Intermediate", got.NextLevel)
}

func TestProfileHandler_PutMyLevel(t *testing.T) {
	userID := uuid.New()
	who := &identity{userID: userID}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(s *testServices)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 上位レベルを選択",
			body: model.SelectLevelRequest{Level: "Expert"},
			setupMock: func(s *testServices) {
				selected := "Expert"
				s.levels.On("SetUserSelectedLevel", anyCtx, userID, "Expert").
					Return(&model.User{UserID: userID, Level: "Learner", SelectedLevel: &selected}, nil).Once()
				s.users.On("GetProfile", anyCtx, userID).
					Return(&model.ProfileResponse{UserID: userID, Level: "Learner", DisplayLevel: "Expert", SelectedLevel: &selected}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "異常系: 降格は 422",
			body: model.SelectLevelRequest{Level: "Beginner"},
			setupMock: func(s *testServices) {
				s.levels.On("SetUserSelectedLevel", anyCtx, userID, "Beginner").
					Return(nil, model.NewAppError("LEVEL_DOWNGRADE_NOT_ALLOWED", "no", "level", model.ErrLevelDowngradeNotAllowed)).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "LEVEL_DOWNGRADE_NOT_ALLOWED",
		},
		{
			name:           "異常系: level が空",
			body:           model.SelectLevelRequest{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 未知のフィールド",
			body:           `{"level":"Expert","points":9999}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_BODY",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServices(t)
			if tc.setupMock != nil {
				tc.setupMock(s)
			}
			rr := httptest.NewRecorder()
			newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodPut, "/api/v1/me/level", tc.body, who))

			assert.Equal(t, tc.expectedStatus, rr.Code, rr.Body.String())
			if tc.expectedCode != "" {
				assert.Equal(t, tc.expectedCode, decodeError(t, rr).Code)
				return
			}
			var got model.ProfileResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, "Expert", got.DisplayLevel)
		})
	}
}

func TestProfileHandler_GetMyPoints(t *testing.T) {
	userID := uuid.New()
	who := &identity{userID: userID}

	tests := []struct {
		name           string
		query          string
		setupMock      func(s *testServices)
		expectedStatus int
		expectedLimit  int
	}{
		{
			name: "正常系: 既定のページ",
			setupMock: func(s *testServices) {
				s.ledger.On("History", anyCtx, userID, service.DefaultHistoryLimit, 0).
					Return([]model.PointsLogEntry{{EntryID: 2, PointsChange: -100}, {EntryID: 1, PointsChange: 250}}, int64(2), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedLimit:  service.DefaultHistoryLimit,
		},
		{
			name:  "正常系: 上限で丸める",
			query: "?limit=5000&offset=10",
			setupMock: func(s *testServices) {
				s.ledger.On("History", anyCtx, userID, 5000, 10).Return(nil, int64(2), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedLimit:  service.MaxHistoryLimit,
		},
		{
			name:           "異常系: 数値でない limit",
			query:          "?limit=ten",
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
			newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodGet, "/api/v1/me/points"+tc.query, nil, who))

			require.Equal(t, tc.expectedStatus, rr.Code, rr.Body.String())
			if tc.expectedStatus != http.StatusOK {
				return
			}
			var got model.PointsHistoryResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tc.expectedLimit, got.Limit)
			assert.Equal(t, int64(2), got.Total)
			assert.NotNil(t, got.Entries)
		})
	}
}

func TestProfileHandler_GetLevels(t *testing.T) {
	s := newTestServices(t)
	s.thresholds.On("List", anyCtx).Return([]model.LevelThreshold{
		{Name: "Beginner", MinPoints: 0},
		{Name: "Learner", MinPoints: 200},
	}, nil).Once()

	// 認証なしで参照できる
	rr := httptest.NewRecorder()
	newTestRouter(s).ServeHTTP(rr, createRequest(t, http.MethodGet, "/api/v1/levels", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []model.LevelThreshold
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(200), got[1].MinPoints)
}
