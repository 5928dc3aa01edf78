package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/pkg/models"
)

type fakeReviews struct {
	due []models.DueReview
	err error
}

func (f *fakeReviews) DueReviews(_ context.Context, _ time.Time, max int) ([]models.DueReview, error) {
	if len(f.due) > max {
		return f.due[:max], f.err
	}
	return f.due, f.err
}

type fakeNotifier struct {
	sent [][]models.DueReview
}

func (f *fakeNotifier) SendReviewReminder(due []models.DueReview) error {
	f.sent = append(f.sent, due)
	return nil
}

func newTestScheduler(reviews ReviewSource, notifier Notifier, hour int) *Scheduler {
	s := New(reviews, notifier, Config{StartHour: 8, EndHour: 21}, logger.NewNop())
	s.now = func() time.Time { return time.Date(2024, 6, 1, hour, 30, 0, 0, time.UTC) }
	return s
}

func TestRunCheck(t *testing.T) {
	ctx := context.Background()
	due := []models.DueReview{{LessonID: "P1-AA-BEG", Urgency: 100}}

	tests := []struct {
		name     string
		hour     int
		reviews  *fakeReviews
		wantSent bool
		wantErr  bool
	}{
		{name: "due in window", hour: 10, reviews: &fakeReviews{due: due}, wantSent: true},
		{name: "nothing due", hour: 10, reviews: &fakeReviews{}},
		{name: "before window", hour: 6, reviews: &fakeReviews{due: due}},
		{name: "last hour of window", hour: 21, reviews: &fakeReviews{due: due}, wantSent: true},
		{name: "source error", hour: 10, reviews: &fakeReviews{err: errors.New("disk")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			s := newTestScheduler(tt.reviews, notifier, tt.hour)

			sent, err := s.RunCheck(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RunCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
			if sent != tt.wantSent || len(notifier.sent) != boolToInt(tt.wantSent) {
				t.Errorf("sent = %v (%d reminders), want %v", sent, len(notifier.sent), tt.wantSent)
			}
		})
	}
}

func TestRunCheckSkipsUnchangedList(t *testing.T) {
	ctx := context.Background()
	reviews := &fakeReviews{due: []models.DueReview{{LessonID: "P1-AA-BEG"}}}
	notifier := &fakeNotifier{}
	s := newTestScheduler(reviews, notifier, 12)

	s.RunCheck(ctx)
	s.RunCheck(ctx)
	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d reminders for an unchanged list, want 1", len(notifier.sent))
	}

	reviews.due = append(reviews.due, models.DueReview{LessonID: "P1-EE-BEG"})
	s.RunCheck(ctx)
	if len(notifier.sent) != 2 {
		t.Errorf("sent %d reminders after the list changed, want 2", len(notifier.sent))
	}
}

func TestInNotificationHours(t *testing.T) {
	overnight := &Scheduler{config: Config{StartHour: 22, EndHour: 6}}
	for hour, want := range map[int]bool{23: true, 2: true, 6: true, 12: false, 21: false} {
		if got := overnight.inNotificationHours(hour); got != want {
			t.Errorf("inNotificationHours(%d) = %v, want %v", hour, got, want)
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
