package service

import (
	"testing"

	"ai_learning_tracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func Test_levelManager_Recompute(t *testing.T) {
	cfg := mustLevelConfig(t, defaultLevelInputs())
	m := &levelManager{}

	tests := []struct {
		name         string
		user         model.User
		wantLevel    string
		wantLP       int64
		wantChanged  bool
		wantDir      string
		wantSelected *string
	}{
		{
			name:      "正常系: 変化なし",
			user:      model.User{TotalPoints: 150, Level: "Beginner"},
			wantLevel: "Beginner", wantLP: 150,
		},
		{
			name:      "正常系: 昇格と繰り越し",
			user:      model.User{TotalPoints: 600, Level: "Learner"},
			wantLevel: "Intermediate", wantLP: 100, wantChanged: true, wantDir: DirectionUp,
		},
		{
			name:      "正常系: ポイント減少で降格",
			user:      model.User{TotalPoints: 199, Level: "Learner"},
			wantLevel: "Beginner", wantLP: 199, wantChanged: true, wantDir: DirectionDown,
		},
		{
			name:      "正常系: 旧レベル名が存在しない",
			user:      model.User{TotalPoints: 250, Level: "Novice"},
			wantLevel: "Learner", wantLP: 50, wantChanged: true, wantDir: DirectionReset,
		},
		{
			name:         "正常系: 上位の選択レベルは残る",
			user:         model.User{TotalPoints: 250, Level: "Learner", SelectedLevel: strPtr("Expert")},
			wantLevel:    "Learner", wantLP: 50,
			wantSelected: strPtr("Expert"),
		},
		{
			name:      "正常系: 追いついた選択レベルは解除",
			user:      model.User{TotalPoints: 520, Level: "Learner", SelectedLevel: strPtr("Intermediate")},
			wantLevel: "Intermediate", wantLP: 20, wantChanged: true, wantDir: DirectionUp,
		},
		{
			name:      "正常系: 存在しない選択レベルは解除",
			user:      model.User{TotalPoints: 0, Level: "Beginner", SelectedLevel: strPtr("Guru")},
			wantLevel: "Beginner", wantLP: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			tr, err := m.Recompute(&u, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, u.Level)
			assert.Equal(t, tt.wantLP, u.LevelPoints)
			assert.Equal(t, tt.wantChanged, tr.Changed)
			assert.Equal(t, tt.wantDir, tr.Direction)
			assert.Equal(t, tt.user.Level, tr.Before)
			assert.Equal(t, tt.wantLevel, tr.After)
			assert.Equal(t, tt.wantSelected, u.SelectedLevel)
		})
	}
}

func Test_levelManager_SetUserSelectedLevel(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name          string
		allowUpgrade  bool
		startPoints   int64
		requested     string
		wantErr       error
		wantSelected  *string
		wantOverrides int64
	}{
		{name: "正常系: 上位レベルを選択", allowUpgrade: true, startPoints: 600, requested: "Expert", wantSelected: strPtr("Expert"), wantOverrides: 1},
		{name: "正常系: 到達済みレベルを選ぶと解除のみ", allowUpgrade: true, startPoints: 600, requested: "Intermediate", wantSelected: nil, wantOverrides: 0},
		{name: "異常系: ポイントより下のレベル", allowUpgrade: true, startPoints: 600, requested: "Beginner", wantErr: model.ErrLevelDowngradeNotAllowed},
		{name: "異常系: 存在しないレベル", allowUpgrade: true, startPoints: 600, requested: "Guru", wantErr: model.ErrInvalidInput},
		{name: "異常系: 手動昇格が無効", allowUpgrade: false, startPoints: 600, requested: "Expert", wantErr: model.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.levelsCfg.AllowManualUpgrade = tt.allowUpgrade
			user := env.createUser(t, "selector")
			_, err := env.completions.AdjustPoints(ctx, user.UserID, tt.startPoints, "seed")
			require.NoError(t, err)
			before := env.reloadUser(t, user.UserID)
			entriesBefore := env.ledgerCount(t, user.UserID)

			got, err := env.levels.SetUserSelectedLevel(ctx, user.UserID, tt.requested)
			after := env.reloadUser(t, user.UserID)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				// 状態は変わらない
				assert.Equal(t, before.Level, after.Level)
				assert.Equal(t, before.SelectedLevel, after.SelectedLevel)
				assert.Equal(t, entriesBefore, env.ledgerCount(t, user.UserID))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSelected, got.SelectedLevel)
			assert.Equal(t, tt.wantSelected, after.SelectedLevel)
			assert.Equal(t, "Intermediate", after.Level)
			assert.Equal(t, entriesBefore+tt.wantOverrides, env.ledgerCount(t, user.UserID))
		})
	}
}

func Test_levelManager_SelectedLevelOverrideEntry(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)
	user := env.createUser(t, "override")

	_, err := env.levels.SetUserSelectedLevel(ctx, user.UserID, "Learner")
	require.NoError(t, err)

	entries, _, err := env.ledger.History(ctx, user.UserID, 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ReasonLevelOverride, entries[0].Reason)
	assert.Equal(t, int64(0), entries[0].PointsChange)
	assert.Equal(t, "Beginner", entries[0].LevelBefore)
	assert.Equal(t, "Learner", entries[0].LevelAfter)

	// ポイントが追いつくと選択は自動で解除される
	course := env.createCourse(t, "big", 250)
	_, err = env.completions.CompleteCourse(ctx, user.UserID, course.CourseID)
	require.NoError(t, err)
	assert.Nil(t, env.reloadUser(t, user.UserID).SelectedLevel)

	total, err := env.ledger.TotalForUser(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), total)
}

func Test_levelManager_RecomputeAll(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)

	points := []int64{0, 90, 150, 300, 700}
	ids := make([]uuid.UUID, 0, len(points))
	for i, p := range points {
		u := env.createUser(t, "user"+string(rune('a'+i)))
		if p > 0 {
			_, err := env.completions.AdjustPoints(ctx, u.UserID, p, "seed")
			require.NoError(t, err)
		}
		ids = append(ids, u.UserID)
	}

	_, err := env.thresholds.Replace(ctx, []model.LevelThresholdInput{
		{Name: "Beginner", MinPoints: 0},
		{Name: "Learner", MinPoints: 100},
		{Name: "Intermediate", MinPoints: 250},
		{Name: "Expert", MinPoints: 600},
	})
	require.NoError(t, err)

	summary, err := env.levels.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(points), summary.UsersRecomputed)
	// 0 と 90 のユーザーはどちらの閾値でも Beginner のまま
	assert.Equal(t, 3, summary.UsersChanged)

	want := []struct {
		level string
		lp    int64
	}{
		{"Beginner", 0},
		{"Beginner", 90},
		{"Learner", 50},
		{"Intermediate", 50},
		{"Expert", 100},
	}
	for i, id := range ids {
		u := env.reloadUser(t, id)
		assert.Equal(t, want[i].level, u.Level, "user %d", i)
		assert.Equal(t, want[i].lp, u.LevelPoints, "user %d", i)
	}

	// 再実行しても何も変わらない
	summary, err = env.levels.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.UsersChanged)
}

func Test_levelManager_RecomputeUser(t *testing.T) {
	ctx := testContext()
	env := newTestEnv(t)

	t.Run("異常系: 存在しないユーザー", func(t *testing.T) {
		_, err := env.levels.RecomputeUser(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: ずれたレベルを直す", func(t *testing.T) {
		user := env.createUser(t, "drift")
		require.NoError(t, env.db.Model(&model.User{}).Where("user_id = ?", user.UserID).
			Updates(map[string]interface{}{"total_points": 520}).Error)

		tr, err := env.levels.RecomputeUser(ctx, user.UserID)
		require.NoError(t, err)
		assert.True(t, tr.Changed)
		assert.Equal(t, DirectionUp, tr.Direction)
		assert.Equal(t, "Intermediate", env.reloadUser(t, user.UserID).Level)
	})
}
