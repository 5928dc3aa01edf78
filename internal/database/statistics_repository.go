package database

import (
	"context"

	"github.com/example/flipcards/pkg/models"
)

// StatisticsRepository derives attempt statistics from the quiz history
type StatisticsRepository struct {
	attempts *AttemptRepository
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(attempts *AttemptRepository) *StatisticsRepository {
	return &StatisticsRepository{attempts: attempts}
}

// Get returns statistics over the whole history
func (r *StatisticsRepository) Get(ctx context.Context) (models.Statistics, error) {
	history, err := r.attempts.GetAll(ctx)
	if err != nil {
		return models.Statistics{}, err
	}
	return Summarize(history), nil
}

// Summarize computes statistics for a list of attempts
func Summarize(history []models.QuizAttemptRecord) models.Statistics {
	var stats models.Statistics
	lessons := make(map[string]bool)
	for _, a := range history {
		stats.Attempts++
		if a.Passed {
			stats.Passed++
		}
		if a.Total > 0 && a.Score == a.Total {
			stats.Perfect++
		}
		lessons[a.LessonID] = true
	}
	stats.LessonsAttempted = len(lessons)
	if stats.Attempts > 0 {
		stats.PassRate = float64(stats.Passed) / float64(stats.Attempts)
	}
	return stats
}
