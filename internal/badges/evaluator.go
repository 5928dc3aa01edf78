package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/pkg/models"
)

// Catalog is the reference data the rules read
type Catalog interface {
	AllBadges() []models.Badge
	LessonByID(id string) *models.Lesson
	LessonsBySound(sound string) []models.Lesson
}

// HistoryReader returns the attempt history, oldest first
type HistoryReader interface {
	GetAll(ctx context.Context) ([]models.QuizAttemptRecord, error)
}

// CompletedReader returns the completed lesson ids
type CompletedReader interface {
	GetAll(ctx context.Context) ([]string, error)
}

// BadgeStore holds the earned badges
type BadgeStore interface {
	GetAll(ctx context.Context) ([]models.EarnedBadge, error)
	Award(ctx context.Context, badgeID string, at time.Time) (bool, error)
}

// AttemptSummary is the attempt that was just recorded
type AttemptSummary struct {
	LessonID   string
	Score      int
	Total      int
	Percentage int
	Passed     bool
}

// NewAttemptSummary summarises a scored attempt
func NewAttemptSummary(lessonID string, r models.QuizResult) AttemptSummary {
	return AttemptSummary{
		LessonID:   lessonID,
		Score:      r.Score,
		Total:      r.Total,
		Percentage: r.Percentage,
		Passed:     r.Passed,
	}
}

// State is the post-attempt progress the rules are evaluated against
type State struct {
	Attempt   AttemptSummary
	History   []models.QuizAttemptRecord
	Completed map[string]bool

	lessons Catalog
}

// Evaluator awards badges whose criteria become satisfied
type Evaluator struct {
	catalog   Catalog
	history   HistoryReader
	completed CompletedReader
	badges    BadgeStore
	log       *logger.Logger
	now       func() time.Time
}

func NewEvaluator(catalog Catalog, history HistoryReader, completed CompletedReader, badges BadgeStore, log *logger.Logger) *Evaluator {
	return &Evaluator{
		catalog:   catalog,
		history:   history,
		completed: completed,
		badges:    badges,
		log:       log,
		now:       time.Now,
	}
}

// CheckAndAwardBadges evaluates every badge not yet earned against the
// post-attempt state, so it runs after the attempt is appended and the lesson
// marked complete. Newly awarded ids are returned in catalog order.
func (e *Evaluator) CheckAndAwardBadges(ctx context.Context, attempt AttemptSummary) ([]string, error) {
	state, err := e.loadState(ctx, attempt)
	if err != nil {
		return nil, err
	}

	earned, err := e.badges.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read earned badges: %w", err)
	}
	have := make(map[string]bool, len(earned))
	for _, b := range earned {
		have[b.BadgeID] = true
	}

	awarded := make([]string, 0)
	now := e.now()
	for _, badge := range e.catalog.AllBadges() {
		if have[badge.ID] || !e.satisfied(badge, state) {
			continue
		}
		ok, err := e.badges.Award(ctx, badge.ID, now)
		if err != nil {
			return awarded, fmt.Errorf("failed to award %s: %w", badge.ID, err)
		}
		if ok {
			have[badge.ID] = true
			awarded = append(awarded, badge.ID)
			e.log.Info("Badge awarded", "badge", badge.ID, "lesson", attempt.LessonID)
		}
	}
	return awarded, nil
}

func (e *Evaluator) satisfied(badge models.Badge, s *State) bool {
	if badge.Criteria == nil {
		return false
	}
	rule, ok := rules[badge.Criteria.Kind()]
	if !ok {
		e.log.Warn("No rule for badge criteria", "badge", badge.ID, "kind", badge.Criteria.Kind())
		return false
	}
	return rule(badge.Criteria, s)
}

func (e *Evaluator) loadState(ctx context.Context, attempt AttemptSummary) (*State, error) {
	history, err := e.history.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read attempt history: %w", err)
	}
	ids, err := e.completed.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read completed lessons: %w", err)
	}
	completed := make(map[string]bool, len(ids))
	for _, id := range ids {
		completed[id] = true
	}
	return &State{
		Attempt:   attempt,
		History:   history,
		Completed: completed,
		lessons:   e.catalog,
	}, nil
}
