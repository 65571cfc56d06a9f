// internal/config/config.go
package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	// Driver は "postgres" か "sqlite"
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

type RedisConfig struct {
	// Addr が空ならキャッシュは使わない
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	ThresholdTTL time.Duration `mapstructure:"threshold_ttl"`
}

type LevelDefault struct {
	Name      string `mapstructure:"name"`
	MinPoints int64  `mapstructure:"min_points"`
}

type LevelsConfig struct {
	AllowManualUpgrade   bool           `mapstructure:"allow_manual_upgrade"`
	RecomputeConcurrency int            `mapstructure:"recompute_concurrency"`
	RecomputeBatchSize   int            `mapstructure:"recompute_batch_size"`
	Defaults             []LevelDefault `mapstructure:"defaults"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Levels   LevelsConfig   `mapstructure:"levels"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// APP_DATABASE_URL のように接頭辞付きの環境変数で上書きできる
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("database.url", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found. Using defaults and environment variables.")
		} else {
			slog.Error("Error reading config file", slog.Any("error", err))
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		slog.Error("Error unmarshalling config", slog.Any("error", err))
		return err
	}

	applyDefaults(&Cfg)

	if !viper.IsSet("auth.enabled") {
		slog.Info("Auth enabled flag not set, defaulting to true (enabled)")
		Cfg.Auth.Enabled = true
	}
	if !viper.IsSet("levels.allow_manual_upgrade") {
		Cfg.Levels.AllowManualUpgrade = DefaultAllowManualUpgrade
	}

	slog.Info("Config loaded successfully",
		slog.String("server_port", Cfg.Server.Port),
		slog.String("database_driver", Cfg.Database.Driver),
		slog.Bool("auth_enabled", Cfg.Auth.Enabled),
		slog.Bool("redis_cache", Cfg.Redis.Addr != ""),
		slog.Int("default_levels", len(Cfg.Levels.Defaults)),
	)
	return nil
}

// applyDefaults は未設定の項目にデフォルト値を入れる
func applyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = DefaultServerPort
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDatabaseDriver
	}
	if c.Database.URL == "" {
		slog.Warn("Database URL is not set in config.")
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Redis.ThresholdTTL <= 0 {
		c.Redis.ThresholdTTL = DefaultThresholdTTL
	}
	if c.Levels.RecomputeConcurrency <= 0 {
		c.Levels.RecomputeConcurrency = DefaultRecomputeConcurrency
	}
	if c.Levels.RecomputeBatchSize <= 0 {
		c.Levels.RecomputeBatchSize = DefaultRecomputeBatchSize
	}
	if len(c.Levels.Defaults) == 0 {
		c.Levels.Defaults = DefaultLevels()
	}
}
