package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/pkg/models"
)

// ReviewRepository holds the spaced review state of completed lessons
type ReviewRepository struct {
	rec record[map[string]models.ReviewState]
}

func NewReviewRepository(kv KV, log *logger.Logger) *ReviewRepository {
	return &ReviewRepository{rec: record[map[string]models.ReviewState]{kv: kv, key: KeyReviewStates, log: log}}
}

// GetAll returns review states keyed by lesson id
func (r *ReviewRepository) GetAll(ctx context.Context) (map[string]models.ReviewState, error) {
	states, err := r.rec.load(ctx)
	if err != nil {
		return nil, err
	}
	if states == nil {
		states = make(map[string]models.ReviewState)
	}
	return states, nil
}

// GetByLessonID returns the review state of a lesson, or nil if it has none
func (r *ReviewRepository) GetByLessonID(ctx context.Context, lessonID string) (*models.ReviewState, error) {
	states, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	state, ok := states[lessonID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// RecordPass updates the review state after a passing attempt. The first pass
// creates the state with a count of zero; every later pass counts as a
// completed review.
func (r *ReviewRepository) RecordPass(ctx context.Context, lessonID string, now time.Time) (models.ReviewState, error) {
	states, err := r.GetAll(ctx)
	if err != nil {
		return models.ReviewState{}, err
	}

	state, ok := states[lessonID]
	if ok {
		state.ReviewCount++
	}
	state.LastReview = now
	states[lessonID] = state

	if err := r.rec.save(ctx, states); err != nil {
		return models.ReviewState{}, fmt.Errorf("failed to update review state: %w", err)
	}
	return state, nil
}

// ReviewDates splits the states into the two maps the review scheduler reads
func ReviewDates(states map[string]models.ReviewState) (map[string]time.Time, map[string]int) {
	dates := make(map[string]time.Time, len(states))
	counts := make(map[string]int, len(states))
	for id, s := range states {
		dates[id] = s.LastReview
		counts[id] = s.ReviewCount
	}
	return dates, counts
}
