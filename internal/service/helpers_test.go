package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/level"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/model"
	"ai_learning_tracker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに一時ファイルの SQLite を作る。
// 書き込みトランザクションを直列化するため接続は1本。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker_test.db")
	db, err := gorm.Open(sqlite.Open(repository.SQLiteDSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open sqlite for testing")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

func testContext() context.Context {
	return middleware.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func defaultLevelInputs() []model.LevelThresholdInput {
	return []model.LevelThresholdInput{
		{Name: "Beginner", MinPoints: 0},
		{Name: "Learner", MinPoints: 200},
		{Name: "Intermediate", MinPoints: 500},
		{Name: "Expert", MinPoints: 1000},
	}
}

// testEnv は実リポジトリと SQLite で組み立てたサービス一式
type testEnv struct {
	db          *gorm.DB
	levelsCfg   *config.LevelsConfig
	userRepo    repository.UserRepository
	courseRepo  repository.CourseRepository
	complRepo   repository.CompletionRepository
	logRepo     repository.PointsLogRepository
	ledger      PointsLedger
	thresholds  ThresholdService
	levels      LevelManager
	completions CompletionService
	users       UserService
	courses     CourseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLedgerRepo(t, repository.NewGormPointsLogRepository())
}

// newTestEnvWithLedgerRepo はポイント履歴リポジトリだけ差し替える (障害注入用)
func newTestEnvWithLedgerRepo(t *testing.T, logRepo repository.PointsLogRepository) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	env := &testEnv{
		db: db,
		levelsCfg: &config.LevelsConfig{
			AllowManualUpgrade:   true,
			RecomputeConcurrency: 3,
			RecomputeBatchSize:   2,
		},
		userRepo:   repository.NewGormUserRepository(),
		courseRepo: repository.NewGormCourseRepository(),
		complRepo:  repository.NewGormCompletionRepository(),
		logRepo:    logRepo,
	}
	env.ledger = NewPointsLedger(db, env.logRepo)
	env.thresholds = NewThresholdService(db, repository.NewGormThresholdRepository(), nil)
	env.levels = NewLevelManager(db, env.userRepo, env.ledger, env.thresholds, env.levelsCfg)
	env.completions = NewCompletionService(db, env.userRepo, env.courseRepo, env.complRepo, env.ledger, env.levels, env.thresholds)
	env.users = NewUserService(db, env.userRepo, env.ledger, env.thresholds)
	env.courses = NewCourseService(db, env.courseRepo)

	_, err := env.thresholds.Replace(testContext(), defaultLevelInputs())
	require.NoError(t, err)
	return env
}

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := e.users.CreateUser(testContext(), name)
	require.NoError(t, err)
	return u
}

func (e *testEnv) createCourse(t *testing.T, title string, points int64) *model.Course {
	t.Helper()
	c, err := e.courses.CreateCourse(testContext(), &model.CreateCourseRequest{Title: title, Points: points})
	require.NoError(t, err)
	return c
}

func (e *testEnv) reloadUser(t *testing.T, userID uuid.UUID) *model.User {
	t.Helper()
	var u model.User
	require.NoError(t, e.db.Where("user_id = ?", userID).First(&u).Error)
	return &u
}

func (e *testEnv) ledgerCount(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.PointsLogEntry{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func mustLevelConfig(t *testing.T, inputs []model.LevelThresholdInput) level.Config {
	t.Helper()
	tiers := make([]level.Threshold, 0, len(inputs))
	for _, in := range inputs {
		tiers = append(tiers, level.Threshold{Name: in.Name, MinPoints: in.MinPoints})
	}
	cfg, err := level.NewConfig(tiers)
	require.NoError(t, err)
	return cfg
}
