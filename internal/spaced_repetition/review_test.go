package spaced_repetition

import (
	"testing"
	"time"

	"github.com/example/flipcards/pkg/models"
)

var now = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) time.Time {
	return now.Add(-time.Duration(d * float64(day)))
}

func TestReviewInterval(t *testing.T) {
	s := NewSchedule()
	tests := map[int]int{-3: 1, 0: 1, 1: 3, 2: 7, 3: 14, 4: 30, 5: 30, 100: 30}
	for count, want := range tests {
		if got := s.ReviewInterval(count); got != want {
			t.Errorf("ReviewInterval(%d) = %d, want %d", count, got, want)
		}
	}
}

func TestReviewIntervalEmptyTable(t *testing.T) {
	tests := []struct {
		name     string
		schedule *Schedule
	}{
		{name: "zero value", schedule: &Schedule{}},
		{name: "empty table", schedule: &Schedule{Intervals: []int{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schedule.ReviewInterval(0); got != 1 {
				t.Errorf("ReviewInterval(0) = %d, want 1", got)
			}
			if got := tt.schedule.ReviewInterval(9); got != 30 {
				t.Errorf("ReviewInterval(9) = %d, want 30", got)
			}
			if tt.schedule.IsLessonDueForReview(now, 0, now) {
				t.Error("lesson reviewed now is due")
			}
		})
	}
}

func TestNextReview(t *testing.T) {
	s := NewSchedule()
	last := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if got, want := s.NextReview(last, 2), last.AddDate(0, 0, 7); !got.Equal(want) {
		t.Errorf("NextReview() = %v, want %v", got, want)
	}
}

func TestDueAndUrgency(t *testing.T) {
	s := NewSchedule()
	tests := []struct {
		name    string
		last    time.Time
		count   int
		due     bool
		urgency int
	}{
		{name: "just reviewed", last: now, count: 0, due: false, urgency: 0},
		{name: "half way", last: daysAgo(1.5), count: 1, due: false, urgency: 50},
		{name: "exactly one interval", last: daysAgo(1), count: 0, due: true, urgency: 100},
		{name: "overdue saturates", last: daysAgo(90), count: 4, due: true, urgency: 100},
		{name: "clock skew", last: now.Add(time.Hour), count: 0, due: false, urgency: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsLessonDueForReview(tt.last, tt.count, now); got != tt.due {
				t.Errorf("IsLessonDueForReview() = %v, want %v", got, tt.due)
			}
			if got := s.ReviewUrgency(tt.last, tt.count, now); got != tt.urgency {
				t.Errorf("ReviewUrgency() = %d, want %d", got, tt.urgency)
			}
		})
	}
}

func TestLessonsDueForReview(t *testing.T) {
	s := NewSchedule()
	completed := []string{"P1-AA-BEG", "P1-EE-BEG", "P1-OO-BEG", "P1-UU-BEG", "P2-IE-BEG"}
	dates := map[string]time.Time{
		"P1-AA-BEG": daysAgo(2),  // interval 1, 2x overdue
		"P1-EE-BEG": daysAgo(1),  // interval 1, exactly due
		"P1-OO-BEG": daysAgo(10), // interval 3, 3.3x overdue
		"P1-UU-BEG": daysAgo(1),  // interval 7, not due
	}
	counts := map[string]int{"P1-OO-BEG": 1, "P1-UU-BEG": 2}

	due := s.LessonsDueForReview(completed, dates, counts, now)

	want := []string{"P1-OO-BEG", "P1-AA-BEG", "P1-EE-BEG"}
	if len(due) != len(want) {
		t.Fatalf("due = %+v, want %v", due, want)
	}
	for i, id := range want {
		if due[i].LessonID != id {
			t.Errorf("due[%d] = %s, want %s", i, due[i].LessonID, id)
		}
		if due[i].Urgency != 100 {
			t.Errorf("due[%d].Urgency = %d, want 100", i, due[i].Urgency)
		}
	}
}

func TestSelectReviewLessons(t *testing.T) {
	due := make([]models.DueReview, 8)
	for i := range due {
		due[i].LessonID = string(rune('a' + i))
	}

	if got := SelectReviewLessons(due, 0); len(got) != DefaultMaxReviews || got[0].LessonID != "a" {
		t.Errorf("SelectReviewLessons(0) = %+v", got)
	}
	if got := SelectReviewLessons(due, 2); len(got) != 2 || got[1].LessonID != "b" {
		t.Errorf("SelectReviewLessons(2) = %+v", got)
	}
	if got := SelectReviewLessons(due[:3], 5); len(got) != 3 {
		t.Errorf("SelectReviewLessons(short list) = %+v", got)
	}
}
