package milestones

import (
	"context"
	"fmt"

	"github.com/example/flipcards/pkg/models"
)

// Tiers must be in ascending threshold order in every function below.

// Current returns the highest tier reached by total, or nil
func Current(tiers []models.Milestone, total int) *models.Milestone {
	var current *models.Milestone
	for i := range tiers {
		if tiers[i].Threshold <= total {
			m := tiers[i]
			current = &m
		}
	}
	return current
}

// Next returns the lowest tier above total, or nil once every tier is reached
func Next(tiers []models.Milestone, total int) *models.NextMilestone {
	for _, m := range tiers {
		if m.Threshold > total {
			return &models.NextMilestone{Milestone: m, Remaining: m.Threshold - total}
		}
	}
	return nil
}

// Achieved returns every tier reached by total, ascending
func Achieved(tiers []models.Milestone, total int) []models.Milestone {
	achieved := make([]models.Milestone, 0, len(tiers))
	for _, m := range tiers {
		if m.Threshold <= total {
			achieved = append(achieved, m)
		}
	}
	return achieved
}

// Crossed returns the highest tier with before < threshold <= after, or nil
func Crossed(tiers []models.Milestone, before, after int) *models.Milestone {
	var crossed *models.Milestone
	for i := range tiers {
		if before < tiers[i].Threshold && tiers[i].Threshold <= after {
			m := tiers[i]
			crossed = &m
		}
	}
	return crossed
}

// PointsReader returns the stored point total
type PointsReader interface {
	Get(ctx context.Context) (int, error)
}

// Tracker detects tier crossings against the stored total
type Tracker struct {
	tiers  []models.Milestone
	points PointsReader
}

func NewTracker(tiers []models.Milestone, points PointsReader) *Tracker {
	return &Tracker{tiers: tiers, points: points}
}

// Tiers returns the tracked tiers
func (t *Tracker) Tiers() []models.Milestone {
	return t.tiers
}

// CheckNewMilestone returns the highest tier that adding pointsToAdd to the
// stored total would newly cross. It reads the stored total, so it has to run
// before the points are saved.
func (t *Tracker) CheckNewMilestone(ctx context.Context, pointsToAdd int) (*models.Milestone, error) {
	stored, err := t.points.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return Crossed(t.tiers, stored, stored+pointsToAdd), nil
}
