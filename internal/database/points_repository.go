package database

import (
	"context"
	"fmt"

	"github.com/example/flipcards/internal/logger"
)

// PointsRepository holds the learner's total points
type PointsRepository struct {
	rec record[int]
}

func NewPointsRepository(kv KV, log *logger.Logger) *PointsRepository {
	return &PointsRepository{rec: record[int]{kv: kv, key: KeyTotalPoints, log: log}}
}

// Get returns the stored total
func (r *PointsRepository) Get(ctx context.Context) (int, error) {
	total, err := r.rec.load(ctx)
	if err != nil {
		return 0, err
	}
	if total < 0 {
		return 0, nil
	}
	return total, nil
}

// Add increases the total by points and returns the new total. The total
// never decreases.
func (r *PointsRepository) Add(ctx context.Context, points int) (int, error) {
	total, err := r.Get(ctx)
	if err != nil {
		return 0, err
	}
	if points <= 0 {
		return total, nil
	}
	total += points
	if err := r.rec.save(ctx, total); err != nil {
		return 0, fmt.Errorf("failed to add points: %w", err)
	}
	return total, nil
}
