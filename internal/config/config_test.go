package config

import (
	"testing"
	"time"

	"github.com/example/flipcards/internal/scheduler"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_PATH", "LEARNER_CHAT_ID", "REVIEW_CHECK_INTERVAL", "NOTIFICATION_START_HOUR", "NOTIFICATION_END_HOUR", "ENABLE_SCHEDULER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DatabasePath != "data/flipcards.db" {
		t.Errorf("DatabasePath = %q, want default", cfg.DatabasePath)
	}
	if cfg.LearnerChatID != 0 {
		t.Errorf("LearnerChatID = %d, want 0", cfg.LearnerChatID)
	}
	if cfg.ReviewCheckInterval != time.Hour {
		t.Errorf("ReviewCheckInterval = %v, want 1h", cfg.ReviewCheckInterval)
	}
	if !cfg.SchedulerEnabled {
		t.Error("scheduler should be enabled by default")
	}
	if cfg.NotificationStart != scheduler.DefaultNotificationStartHour || cfg.NotificationEnd != scheduler.DefaultNotificationEndHour {
		t.Errorf("notification hours = %d-%d, want scheduler defaults", cfg.NotificationStart, cfg.NotificationEnd)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEARNER_CHAT_ID", "123456")
	t.Setenv("REVIEW_CHECK_INTERVAL", "15")
	t.Setenv("ENABLE_SCHEDULER", "false")

	cfg := Load()
	if cfg.LearnerChatID != 123456 {
		t.Errorf("LearnerChatID = %d, want 123456", cfg.LearnerChatID)
	}
	if cfg.ReviewCheckInterval != 15*time.Minute {
		t.Errorf("ReviewCheckInterval = %v, want 15m", cfg.ReviewCheckInterval)
	}
	if cfg.SchedulerEnabled {
		t.Error("scheduler should be disabled")
	}
}

func TestGetEnvHourRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "7", 7},
		{"too large", "24", 9},
		{"negative", "-1", 9},
		{"garbage", "noon", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_HOUR", tt.value)
			if got := getEnvHour("TEST_HOUR", 9); got != tt.want {
				t.Errorf("getEnvHour() = %d, want %d", got, tt.want)
			}
		})
	}
}
