package progress

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/flipcards/internal/badges"
	"github.com/example/flipcards/internal/database"
	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/internal/milestones"
	"github.com/example/flipcards/internal/quiz"
	"github.com/example/flipcards/internal/spaced_repetition"
	"github.com/example/flipcards/pkg/models"
)

// Catalog is the reference data the service reads
type Catalog interface {
	LessonByID(id string) *models.Lesson
	LessonsBySound(sound string) []models.Lesson
	LessonsByPhase(phase int) []models.Lesson
	Sounds() []string
	Phases() []int
	AllBadges() []models.Badge
	MilestoneTiers() []models.Milestone
}

// AttemptOutcome is everything that changed by recording one attempt
type AttemptOutcome struct {
	Result          models.QuizResult
	NewMilestone    *models.Milestone
	NewBadges       []string
	FirstCompletion bool
	TotalPoints     int
}

// LessonProgress is the learner's record on one lesson
type LessonProgress struct {
	LessonID       string
	Attempts       int
	BestPercentage int
	Completed      bool
	// NextReview is nil until the lesson has been passed
	NextReview *time.Time
}

// Service is the entry point for the presentation layer. Calls that modify
// progress must not overlap.
type Service struct {
	catalog   Catalog
	store     *database.Store
	generator *quiz.Generator
	tracker   *milestones.Tracker
	evaluator *badges.Evaluator
	schedule  *spaced_repetition.Schedule
	log       *logger.Logger
	now       func() time.Time
}

// NewService wires the progress components. A nil rnd is time seeded.
func NewService(catalog Catalog, store *database.Store, rnd *rand.Rand, log *logger.Logger) *Service {
	return &Service{
		catalog:   catalog,
		store:     store,
		generator: quiz.NewGenerator(catalog, rnd),
		tracker:   milestones.NewTracker(catalog.MilestoneTiers(), store.Points),
		evaluator: badges.NewEvaluator(catalog, store.Attempts, store.Completed, store.Badges, log),
		schedule:  spaced_repetition.NewSchedule(),
		log:       log,
		now:       time.Now,
	}
}

// GenerateQuiz builds a quiz for a lesson. Unknown lessons give nil.
func (s *Service) GenerateQuiz(lessonID string, count int) []models.QuizQuestion {
	lesson := s.catalog.LessonByID(lessonID)
	if lesson == nil {
		return nil
	}
	return s.generator.GenerateQuiz(lesson, count)
}

// CalculateScore scores answers for a lesson without recording anything.
// Unknown lessons give nil.
func (s *Service) CalculateScore(lessonID string, answers []models.UserAnswer) *models.QuizResult {
	lesson := s.catalog.LessonByID(lessonID)
	if lesson == nil {
		return nil
	}
	result := quiz.CalculateScore(answers, lesson)
	return &result
}

// RecordAttemptAndEvaluate scores and records an attempt, then reports the
// milestone and badges it earned. Unknown lessons give nil.
func (s *Service) RecordAttemptAndEvaluate(ctx context.Context, lessonID string, answers []models.UserAnswer) (*AttemptOutcome, error) {
	lesson := s.catalog.LessonByID(lessonID)
	if lesson == nil {
		return nil, nil
	}
	now := s.now()
	result := quiz.CalculateScore(answers, lesson)
	outcome := &AttemptOutcome{Result: result}

	// the crossing is computed against the total before this attempt
	milestone, err := s.tracker.CheckNewMilestone(ctx, result.TotalPoints)
	if err != nil {
		return nil, err
	}
	outcome.NewMilestone = milestone

	err = s.store.Attempts.Append(ctx, models.QuizAttemptRecord{
		LessonID:  lessonID,
		Score:     result.Score,
		Total:     result.Total,
		Passed:    result.Passed,
		Timestamp: now,
	})
	if err != nil {
		return nil, err
	}

	if outcome.TotalPoints, err = s.store.Points.Add(ctx, result.TotalPoints); err != nil {
		return nil, err
	}

	if result.Passed {
		if outcome.FirstCompletion, err = s.store.Completed.MarkCompleted(ctx, lessonID); err != nil {
			return nil, err
		}
		if _, err := s.store.Reviews.RecordPass(ctx, lessonID, now); err != nil {
			return nil, err
		}
	}

	outcome.NewBadges, err = s.evaluator.CheckAndAwardBadges(ctx, badges.NewAttemptSummary(lessonID, result))
	if err != nil {
		return nil, err
	}

	s.log.Info("Attempt recorded",
		"lesson", lessonID,
		"score", result.Score,
		"total", result.Total,
		"passed", result.Passed,
		"points", result.TotalPoints,
		"badges", outcome.NewBadges,
	)
	return outcome, nil
}

// ProgressSummary collects the learner's overall progress
func (s *Service) ProgressSummary(ctx context.Context) (*models.ProgressSummary, error) {
	total, err := s.store.Points.Get(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.store.Completed.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.store.Badges.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.Statistics.Get(ctx)
	if err != nil {
		return nil, err
	}

	tiers := s.tracker.Tiers()
	return &models.ProgressSummary{
		TotalPoints:        total,
		CompletedLessons:   completed,
		CurrentMilestone:   milestones.Current(tiers, total),
		NextMilestone:      milestones.Next(tiers, total),
		AchievedMilestones: milestones.Achieved(tiers, total),
		EarnedBadges:       earned,
		Statistics:         stats,
		Phases:             s.phaseProgress(completed),
	}, nil
}

func (s *Service) phaseProgress(completed []string) []models.PhaseProgress {
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	phases := make([]models.PhaseProgress, 0)
	for _, phase := range s.catalog.Phases() {
		p := models.PhaseProgress{Phase: phase}
		for _, l := range s.catalog.LessonsByPhase(phase) {
			p.Total++
			if done[l.ID] {
				p.Completed++
			}
		}
		phases = append(phases, p)
	}
	return phases
}

// LessonProgress returns the attempts and review date of one lesson.
// Unknown lessons give nil.
func (s *Service) LessonProgress(ctx context.Context, lessonID string) (*LessonProgress, error) {
	if s.catalog.LessonByID(lessonID) == nil {
		return nil, nil
	}
	attempts, err := s.store.Attempts.GetByLessonID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	completed, err := s.store.Completed.IsCompleted(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	state, err := s.store.Reviews.GetByLessonID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	lp := &LessonProgress{LessonID: lessonID, Attempts: len(attempts), Completed: completed}
	for _, a := range attempts {
		if p := a.Percentage(); p > lp.BestPercentage {
			lp.BestPercentage = p
		}
	}
	if state != nil {
		next := s.schedule.NextReview(state.LastReview, state.ReviewCount)
		lp.NextReview = &next
	}
	return lp, nil
}

// DueReviews returns up to max completed lessons due for review at now, most
// urgent first. max <= 0 uses the default.
func (s *Service) DueReviews(ctx context.Context, now time.Time, max int) ([]models.DueReview, error) {
	completed, err := s.store.Completed.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	states, err := s.store.Reviews.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	dates, counts := database.ReviewDates(states)
	due := s.schedule.LessonsDueForReview(completed, dates, counts, now)
	return spaced_repetition.SelectReviewLessons(due, max), nil
}

// IsLessonUnlocked reports whether the lesson's prerequisite is completed.
// Lessons without a prerequisite are always unlocked, unknown ones never.
func (s *Service) IsLessonUnlocked(ctx context.Context, lessonID string) (bool, error) {
	lesson := s.catalog.LessonByID(lessonID)
	if lesson == nil {
		return false, nil
	}
	if lesson.Prerequisite == "" {
		return true, nil
	}
	ok, err := s.store.Completed.IsCompleted(ctx, lesson.Prerequisite)
	if err != nil {
		return false, fmt.Errorf("failed to check prerequisite: %w", err)
	}
	return ok, nil
}

// Reset clears all progress
func (s *Service) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}
