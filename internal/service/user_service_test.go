package service

import (
	"errors"
	"testing"

	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"
	"ai_learning_tracker/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_userService_CreateUser(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)

	tests := []struct {
		name     string
		username string
		wantCode string
		wantErr  error
	}{
		{name: "正常系: 作成", username: "  alice  "},
		{name: "異常系: 重複", username: "alice", wantCode: "USERNAME_TAKEN", wantErr: model.ErrConflict},
		{name: "異常系: 空", username: "   ", wantCode: "VALIDATION_ERROR", wantErr: model.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := env.users.CreateUser(ctx, tt.username)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantCode, appErr.Detail.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, "Beginner", user.Level)
			assert.Zero(t, user.TotalPoints)
			assert.True(t, user.IsActive)
		})
	}
}

func Test_userService_GetProfile(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)
	user := env.createUser(t, "profile")

	tests := []struct {
		name       string
		points     int64
		selected   string
		wantLevel  string
		wantLP     int64
		wantNext   string
		wantToNext int64
		wantTop    bool
		wantShown  string
	}{
		{name: "正常系: 初期状態", wantLevel: "Beginner", wantNext: "Learner", wantToNext: 200, wantShown: "Beginner"},
		{name: "正常系: 途中", points: 250, wantLevel: "Learner", wantLP: 50, wantNext: "Intermediate", wantToNext: 250, wantShown: "Learner"},
		{name: "正常系: 選択レベルを表示", selected: "Expert", wantLevel: "Learner", wantLP: 50, wantNext: "Intermediate", wantToNext: 250, wantShown: "Expert"},
		{name: "正常系: 最上位", points: 900, wantLevel: "Expert", wantLP: 150, wantTop: true, wantShown: "Expert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.points > 0 {
				_, err := env.completions.AdjustPoints(ctx, user.UserID, tt.points, "step")
				require.NoError(t, err)
			}
			if tt.selected != "" {
				_, err := env.levels.SetUserSelectedLevel(ctx, user.UserID, tt.selected)
				require.NoError(t, err)
			}

			p, err := env.users.GetProfile(ctx, user.UserID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, p.Level)
			assert.Equal(t, tt.wantLP, p.LevelPoints)
			assert.Equal(t, tt.wantNext, p.NextLevel)
			assert.Equal(t, tt.wantToNext, p.PointsToNextLevel)
			assert.Equal(t, tt.wantTop, p.IsTopLevel)
			assert.Equal(t, tt.wantShown, p.DisplayLevel)
		})
	}

	t.Run("異常系: 存在しないユーザー", func(t *testing.T) {
		_, err := env.users.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_userService_DeactivateUser(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)
	user := env.createUser(t, "leaving")

	require.NoError(t, env.users.DeactivateUser(ctx, user.UserID))
	assert.False(t, env.reloadUser(t, user.UserID).IsActive)

	err := env.users.DeactivateUser(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_userService_Reconcile(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)
	user := env.createUser(t, "audit")
	course := env.createCourse(t, "Go", 120)
	_, err := env.completions.CompleteCourse(ctx, user.UserID, course.CourseID)
	require.NoError(t, err)

	report, err := env.users.Reconcile(ctx, user.UserID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, int64(120), report.CachedTotal)
	assert.Equal(t, int64(120), report.LedgerTotal)

	// 集計値だけを書き換えると不一致になる
	require.NoError(t, env.db.Model(&model.User{}).Where("user_id = ?", user.UserID).Update("total_points", 90).Error)
	report, err = env.users.Reconcile(ctx, user.UserID)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.Equal(t, int64(90), report.CachedTotal)
	assert.Equal(t, int64(120), report.LedgerTotal)
}

func Test_userService_StorageErrors(t *testing.T) {
	ctx := testContext()
	db := setupTestDB(t)
	thresholds := NewThresholdService(db, repository.NewGormThresholdRepository(), nil)
	_, err := thresholds.Replace(ctx, defaultLevelInputs())
	require.NoError(t, err)
	userID := uuid.New()

	t.Run("異常系: 検索の失敗", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("FindByID", ctx, db, userID).Return(nil, errors.New("connection reset")).Once()
		svc := NewUserService(db, repo, NewPointsLedger(db, repository.NewGormPointsLogRepository()), thresholds)

		_, err := svc.GetProfile(ctx, userID)
		assert.ErrorIs(t, err, model.ErrStorage)
	})

	t.Run("異常系: ID一覧の失敗", func(t *testing.T) {
		repo := mocks.NewUserRepository(t)
		repo.On("ListIDsAfter", ctx, db, uuid.Nil, 10).Return(nil, errors.New("timeout")).Once()
		svc := NewUserService(db, repo, NewPointsLedger(db, repository.NewGormPointsLogRepository()), thresholds)

		_, err := svc.ListUserIDs(ctx, uuid.Nil, 10)
		assert.ErrorIs(t, err, model.ErrStorage)
	})
}
