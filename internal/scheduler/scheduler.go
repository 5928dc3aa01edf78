package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/pkg/models"
	"github.com/go-co-op/gocron"
)

// Default notification settings
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 21
	DefaultCheckInterval         = time.Hour
	maxReminderLessons           = 5
)

// ReviewSource reports lessons that are due for review
type ReviewSource interface {
	DueReviews(ctx context.Context, now time.Time, max int) ([]models.DueReview, error)
}

// Notifier interface for sending notifications
type Notifier interface {
	SendReviewReminder(due []models.DueReview) error
}

// Config controls when reminders are checked and sent
type Config struct {
	CheckInterval time.Duration
	StartHour     int // first hour of the day reminders may be sent
	EndHour       int // last hour of the day reminders may be sent
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	reviews   ReviewSource
	notifier  Notifier
	config    Config
	log       *logger.Logger
	now       func() time.Time

	// due lessons of the last reminder, so an unchanged list is not resent
	lastSent string
}

// New creates a new scheduler instance
func New(reviews ReviewSource, notifier Notifier, config Config, log *logger.Logger) *Scheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultCheckInterval
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		reviews:   reviews,
		notifier:  notifier,
		config:    config,
		log:       log,
		now:       time.Now,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.config.CheckInterval).Do(s.checkAndSendReminders); err != nil {
		return fmt.Errorf("failed to schedule review reminders: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.log.Info("Review reminders scheduled", "interval", s.config.CheckInterval)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminders() {
	if _, err := s.RunCheck(context.Background()); err != nil {
		s.log.Error("Review reminder check failed", "error", err)
	}
}

// RunCheck sends a reminder when lessons are due and the current hour is in
// the notification window. It reports whether a reminder was sent.
func (s *Scheduler) RunCheck(ctx context.Context) (bool, error) {
	now := s.now()
	if !s.inNotificationHours(now.Hour()) {
		s.log.Debug("Outside notification hours, skipping reminders",
			"hour", now.Hour(), "start", s.config.StartHour, "end", s.config.EndHour)
		return false, nil
	}

	due, err := s.reviews.DueReviews(ctx, now, maxReminderLessons)
	if err != nil {
		return false, fmt.Errorf("failed to get due reviews: %w", err)
	}
	if len(due) == 0 {
		s.lastSent = ""
		return false, nil
	}

	key := dueKey(due)
	if key == s.lastSent {
		return false, nil
	}
	if err := s.notifier.SendReviewReminder(due); err != nil {
		return false, fmt.Errorf("failed to send review reminder: %w", err)
	}
	s.lastSent = key
	s.log.Info("Review reminder sent", "lessons", len(due))
	return true, nil
}

// inNotificationHours handles windows that wrap past midnight, e.g. 22-6
func (s *Scheduler) inNotificationHours(hour int) bool {
	start, end := s.config.StartHour, s.config.EndHour
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}

func dueKey(due []models.DueReview) string {
	ids := make([]string, len(due))
	for i, d := range due {
		ids[i] = d.LessonID
	}
	return strings.Join(ids, ",")
}
