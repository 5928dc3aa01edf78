package database

import (
	"context"
	"fmt"

	"github.com/example/flipcards/internal/logger"
)

// Store groups the accessors of the five progress records. Accessors are not
// reentrant; callers finish one read-modify-write sequence before starting
// the next.
type Store struct {
	kv  KV
	log *logger.Logger

	Completed  *CompletedLessonRepository
	Points     *PointsRepository
	Badges     *EarnedBadgeRepository
	Attempts   *AttemptRepository
	Reviews    *ReviewRepository
	Statistics *StatisticsRepository
}

// NewStore creates the progress store on top of kv
func NewStore(kv KV, log *logger.Logger) *Store {
	attempts := NewAttemptRepository(kv, log)
	return &Store{
		kv:         kv,
		log:        log,
		Completed:  NewCompletedLessonRepository(kv, log),
		Points:     NewPointsRepository(kv, log),
		Badges:     NewEarnedBadgeRepository(kv, log),
		Attempts:   attempts,
		Reviews:    NewReviewRepository(kv, log),
		Statistics: NewStatisticsRepository(attempts),
	}
}

// Reset clears all progress records at once
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.DeleteAll(ctx, ProgressKeys...); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	s.log.Info("Progress reset")
	return nil
}
