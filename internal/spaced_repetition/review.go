package spaced_repetition

import (
	"math"
	"sort"
	"time"

	"github.com/example/flipcards/pkg/models"
)

const day = 24 * time.Hour

// DefaultMaxReviews is how many due lessons SelectReviewLessons returns by default
const DefaultMaxReviews = 5

var defaultIntervals = []int{1, 3, 7, 14, 30}

// Schedule maps the number of passing reviews of a lesson to the days until
// its next review
type Schedule struct {
	// Intervals in days, ascending. Counts past the end use the last entry.
	// An empty table uses the default one.
	Intervals []int
}

// NewSchedule returns the default 1, 3, 7, 14, 30 day schedule
func NewSchedule() *Schedule {
	return &Schedule{
		Intervals: append([]int(nil), defaultIntervals...),
	}
}

// ReviewInterval returns the interval for reviewCount, clamped to the table
func (s *Schedule) ReviewInterval(reviewCount int) int {
	intervals := s.Intervals
	if len(intervals) == 0 {
		intervals = defaultIntervals
	}
	if reviewCount < 0 {
		reviewCount = 0
	}
	if reviewCount >= len(intervals) {
		reviewCount = len(intervals) - 1
	}
	return intervals[reviewCount]
}

// NextReview returns when a lesson last reviewed at lastReview becomes due
func (s *Schedule) NextReview(lastReview time.Time, reviewCount int) time.Time {
	return lastReview.Add(time.Duration(s.ReviewInterval(reviewCount)) * day)
}

// overdue is elapsed time as a fraction of the interval
func (s *Schedule) overdue(lastReview time.Time, reviewCount int, now time.Time) float64 {
	interval := time.Duration(s.ReviewInterval(reviewCount)) * day
	return float64(now.Sub(lastReview)) / float64(interval)
}

// IsLessonDueForReview reports whether a full interval has passed since lastReview
func (s *Schedule) IsLessonDueForReview(lastReview time.Time, reviewCount int, now time.Time) bool {
	interval := time.Duration(s.ReviewInterval(reviewCount)) * day
	return now.Sub(lastReview) >= interval
}

// ReviewUrgency returns 0 right after a review, rising to 100 once the
// lesson is due
func (s *Schedule) ReviewUrgency(lastReview time.Time, reviewCount int, now time.Time) int {
	ratio := s.overdue(lastReview, reviewCount, now)
	if ratio <= 0 {
		return 0
	}
	return int(math.Round(math.Min(ratio, 1) * 100))
}

// LessonsDueForReview returns the completed lessons that are due, most urgent
// first. Ties go to the lesson that is more overdue, then by id. Lessons
// without a review date are left out.
func (s *Schedule) LessonsDueForReview(completedIDs []string, reviewDates map[string]time.Time, reviewCounts map[string]int, now time.Time) []models.DueReview {
	due := make([]models.DueReview, 0)
	seen := make(map[string]bool, len(completedIDs))
	for _, id := range completedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		last, ok := reviewDates[id]
		if !ok || last.IsZero() {
			continue
		}
		count := reviewCounts[id]
		if !s.IsLessonDueForReview(last, count, now) {
			continue
		}
		due = append(due, models.DueReview{
			LessonID: id,
			Urgency:  s.ReviewUrgency(last, count, now),
			Overdue:  s.overdue(last, count, now),
		})
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].Urgency != due[j].Urgency {
			return due[i].Urgency > due[j].Urgency
		}
		if due[i].Overdue != due[j].Overdue {
			return due[i].Overdue > due[j].Overdue
		}
		return due[i].LessonID < due[j].LessonID
	})
	return due
}

// SelectReviewLessons returns the first max entries of a sorted due list.
// max <= 0 means DefaultMaxReviews.
func SelectReviewLessons(due []models.DueReview, max int) []models.DueReview {
	if max <= 0 {
		max = DefaultMaxReviews
	}
	if len(due) > max {
		return due[:max]
	}
	return due
}
