package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/flipcards/internal/scheduler"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath         string
	TelegramToken        string
	LearnerChatID        int64
	LogMode              string
	Locale               string
	SchedulerEnabled     bool
	ReviewCheckInterval  time.Duration
	NotificationStart    int // first hour of the day reminders may be sent
	NotificationEnd      int // last hour of the day reminders may be sent
	CurriculumImportPath string
}

// Load reads an optional .env file and then the environment, falling back to
// defaults for anything unset or unparsable
func Load() *Config {
	// A missing .env file is fine, the environment may be set directly
	_ = godotenv.Load()

	return &Config{
		DatabasePath:         getEnv("DB_PATH", "data/flipcards.db"),
		TelegramToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		LearnerChatID:        getEnvInt64("LEARNER_CHAT_ID", 0),
		LogMode:              getEnv("LOG_MODE", "dev"),
		Locale:               getEnv("LOCALE", "en"),
		SchedulerEnabled:     getEnv("ENABLE_SCHEDULER", "true") != "false",
		ReviewCheckInterval:  time.Duration(getEnvInt("REVIEW_CHECK_INTERVAL", int(scheduler.DefaultCheckInterval/time.Minute))) * time.Minute,
		NotificationStart:    getEnvHour("NOTIFICATION_START_HOUR", scheduler.DefaultNotificationStartHour),
		NotificationEnd:      getEnvHour("NOTIFICATION_END_HOUR", scheduler.DefaultNotificationEndHour),
		CurriculumImportPath: getEnv("CURRICULUM_IMPORT_PATH", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvHour(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v < 0 || v > 23 {
		return defaultValue
	}
	return v
}
