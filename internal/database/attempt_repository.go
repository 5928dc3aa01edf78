package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/pkg/models"
)

// AttemptRepository holds the append-only quiz attempt history
type AttemptRepository struct {
	rec record[[]models.QuizAttemptRecord]
}

func NewAttemptRepository(kv KV, log *logger.Logger) *AttemptRepository {
	return &AttemptRepository{rec: record[[]models.QuizAttemptRecord]{kv: kv, key: KeyQuizHistory, log: log}}
}

// GetAll returns the history, oldest first
func (r *AttemptRepository) GetAll(ctx context.Context) ([]models.QuizAttemptRecord, error) {
	history, err := r.rec.load(ctx)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.QuizAttemptRecord{}
	}
	return history, nil
}

// GetByLessonID returns the attempts of one lesson, oldest first
func (r *AttemptRepository) GetByLessonID(ctx context.Context, lessonID string) ([]models.QuizAttemptRecord, error) {
	history, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var attempts []models.QuizAttemptRecord
	for _, a := range history {
		if a.LessonID == lessonID {
			attempts = append(attempts, a)
		}
	}
	return attempts, nil
}

// Append adds an attempt to the end of the history
func (r *AttemptRepository) Append(ctx context.Context, attempt models.QuizAttemptRecord) error {
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = time.Now()
	}
	history, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	if err := r.rec.save(ctx, append(history, attempt)); err != nil {
		return fmt.Errorf("failed to append attempt: %w", err)
	}
	return nil
}
