// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "ai-learning-tracker"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort           = ":8080"
	DefaultDatabaseDriver       = "postgres"
	DefaultLogLevel             = "info"
	DefaultThresholdTTL         = 10 * time.Minute
	DefaultRecomputeConcurrency = 4
	DefaultRecomputeBatchSize   = 200
	DefaultAllowManualUpgrade   = true
)

// DefaultLevels は level_thresholds が空のときに投入する初期レベル
func DefaultLevels() []LevelDefault {
	return []LevelDefault{
		{Name: "Beginner", MinPoints: 0},
		{Name: "Learner", MinPoints: 200},
		{Name: "Intermediate", MinPoints: 500},
		{Name: "Expert", MinPoints: 1000},
	}
}
