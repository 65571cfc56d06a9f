// cmd/reconcile/main.go
//
// users.total_points とポイント履歴の合計を全ユーザー分突き合わせる。
// 不一致が1件でもあれば終了コード 2 で終わる。
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"ai_learning_tracker/internal/config"
	"ai_learning_tracker/internal/middleware"
	"ai_learning_tracker/internal/repository"
	"ai_learning_tracker/internal/service"

	"github.com/google/uuid"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	pageSize := flag.Int("page-size", 500, "users per page")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := config.LoadConfig(*configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := middleware.NewAppLogger(os.Stderr, config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ledger := service.NewPointsLedger(db, repository.NewGormPointsLogRepository())
	thresholds := service.NewThresholdService(db, repository.NewGormThresholdRepository(), nil)
	users := service.NewUserService(db, repository.NewGormUserRepository(), ledger, thresholds)

	ctx := middleware.WithLogger(context.Background(), logger)
	checked, mismatched, err := reconcileAll(ctx, users, *pageSize)
	if err != nil {
		slog.Error("Reconcile aborted", slog.Any("error", err), slog.Int("checked", checked))
		os.Exit(1)
	}

	fmt.Printf("checked=%d mismatched=%d\n", checked, mismatched)
	if mismatched > 0 {
		os.Exit(2)
	}
}

// reconcileAll はユーザーIDをページングしながら1人ずつ照合する
func reconcileAll(ctx context.Context, users service.UserService, pageSize int) (checked, mismatched int, err error) {
	after := uuid.Nil
	for {
		ids, err := users.ListUserIDs(ctx, after, pageSize)
		if err != nil {
			return checked, mismatched, err
		}
		for _, id := range ids {
			report, err := users.Reconcile(ctx, id)
			if err != nil {
				return checked, mismatched, err
			}
			checked++
			if !report.Consistent {
				mismatched++
				fmt.Printf("MISMATCH user_id=%s cached=%d ledger=%d\n", report.UserID, report.CachedTotal, report.LedgerTotal)
			}
		}
		if len(ids) < pageSize {
			return checked, mismatched, nil
		}
		after = ids[len(ids)-1]
	}
}
