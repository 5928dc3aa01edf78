package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/pkg/models"
)

// EarnedBadgeRepository holds the earned badge list. A badge id is stored at
// most once.
type EarnedBadgeRepository struct {
	rec record[[]models.EarnedBadge]
}

func NewEarnedBadgeRepository(kv KV, log *logger.Logger) *EarnedBadgeRepository {
	return &EarnedBadgeRepository{rec: record[[]models.EarnedBadge]{kv: kv, key: KeyEarnedBadges, log: log}}
}

// GetAll returns earned badges in the order they were awarded
func (r *EarnedBadgeRepository) GetAll(ctx context.Context) ([]models.EarnedBadge, error) {
	badges, err := r.rec.load(ctx)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []models.EarnedBadge{}
	}
	return badges, nil
}

// Award appends the badge unless it was already earned and reports whether
// it was appended
func (r *EarnedBadgeRepository) Award(ctx context.Context, badgeID string, at time.Time) (bool, error) {
	badges, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range badges {
		if b.BadgeID == badgeID {
			return false, nil
		}
	}
	badges = append(badges, models.EarnedBadge{BadgeID: badgeID, EarnedAt: at})
	if err := r.rec.save(ctx, badges); err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}
	return true, nil
}
