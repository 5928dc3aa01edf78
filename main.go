package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/flipcards/internal/bot"
	"github.com/example/flipcards/internal/config"
	"github.com/example/flipcards/internal/curriculum"
	"github.com/example/flipcards/internal/database"
	"github.com/example/flipcards/internal/excel"
	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/internal/progress"
	"github.com/example/flipcards/internal/scheduler"
)

func main() {
	cfg := config.Load()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	// Cancel on SIGINT / SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	catalog, err := curriculum.Load()
	if err != nil {
		appLog.Fatal("Failed to load curriculum", "error", err)
	}

	if cfg.CurriculumImportPath != "" {
		importCfg := excel.DefaultImportConfig()
		importCfg.FilePath = cfg.CurriculumImportPath
		result, err := excel.ImportWords(importCfg, catalog)
		if err != nil {
			appLog.Fatal("Failed to import words", "path", cfg.CurriculumImportPath, "error", err)
		}
		for _, rowErr := range result.Errors {
			appLog.Warn("Skipped import row", "reason", rowErr)
		}
		appLog.Info("Imported words",
			"path", cfg.CurriculumImportPath,
			"rows", result.TotalProcessed,
			"created", result.Created,
			"skipped", result.Skipped,
			"errors", len(result.Errors),
		)
	}

	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "path", cfg.DatabasePath, "error", err)
	}
	defer db.Close()

	store := database.NewStore(database.NewSQLiteKV(db), appLog.With("component", "store"))
	svc := progress.NewService(catalog, store, nil, appLog.With("component", "progress"))

	botCfg := bot.DefaultConfig()
	botCfg.Locale = cfg.Locale
	b, err := bot.New(cfg.TelegramToken, cfg.LearnerChatID, svc, catalog, botCfg, appLog.With("component", "bot"))
	if err != nil {
		appLog.Fatal("Failed to create bot", "error", err)
	}
	if err := b.Connect(); err != nil {
		appLog.Fatal("Failed to connect to Telegram", "error", err)
	}

	if cfg.SchedulerEnabled {
		sched := scheduler.New(svc, b, scheduler.Config{
			CheckInterval: cfg.ReviewCheckInterval,
			StartHour:     cfg.NotificationStart,
			EndHour:       cfg.NotificationEnd,
		}, appLog.With("component", "scheduler"))
		if err := sched.Start(); err != nil {
			appLog.Fatal("Failed to start scheduler", "error", err)
		}
		defer sched.Stop()
	}

	appLog.Info("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil {
		appLog.Error("Bot error", "error", err)
	}
	appLog.Info("Bot stopped successfully")
}
