package database

import (
	"context"
	"fmt"
	"slices"

	"github.com/example/flipcards/internal/logger"
)

// CompletedLessonRepository holds the set of completed lesson ids
type CompletedLessonRepository struct {
	rec record[[]string]
}

func NewCompletedLessonRepository(kv KV, log *logger.Logger) *CompletedLessonRepository {
	return &CompletedLessonRepository{rec: record[[]string]{kv: kv, key: KeyCompletedLessons, log: log}}
}

// GetAll returns completed lesson ids in completion order
func (r *CompletedLessonRepository) GetAll(ctx context.Context) ([]string, error) {
	ids, err := r.rec.load(ctx)
	if err != nil {
		return nil, err
	}
	// the stored list is a set
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// IsCompleted reports whether the lesson is in the completed set
func (r *CompletedLessonRepository) IsCompleted(ctx context.Context, lessonID string) (bool, error) {
	ids, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, lessonID), nil
}

// MarkCompleted adds the lesson and reports whether it was newly added
func (r *CompletedLessonRepository) MarkCompleted(ctx context.Context, lessonID string) (bool, error) {
	ids, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(ids, lessonID) {
		return false, nil
	}
	if err := r.rec.save(ctx, append(ids, lessonID)); err != nil {
		return false, fmt.Errorf("failed to mark lesson completed: %w", err)
	}
	return true, nil
}
