package badges

import "github.com/example/flipcards/pkg/models"

// Rule reports whether a criteria value is satisfied by the post-attempt state
type Rule func(criteria models.BadgeCriteria, s *State) bool

var rules = map[models.CriteriaKind]Rule{}

// Register adds the rule for a criteria kind, replacing any existing one
func Register(kind models.CriteriaKind, r Rule) {
	rules[kind] = r
}

// typed adapts a rule over one concrete criteria type
func typed[T models.BadgeCriteria](fn func(T, *State) bool) Rule {
	return func(c models.BadgeCriteria, s *State) bool {
		v, ok := c.(T)
		return ok && fn(v, s)
	}
}

func init() {
	Register(models.CriteriaZeroScoreRetry, typed(zeroScoreRetry))
	Register(models.CriteriaQuizPassCount, typed(quizPassCount))
	Register(models.CriteriaFailThenPass, typed(failThenPass))
	Register(models.CriteriaPerfectQuiz, typed(perfectQuiz))
	Register(models.CriteriaLessonsCompleted, typed(lessonsCompleted))
	Register(models.CriteriaSoundMastery, typed(soundMastery))
}

// zeroScoreRetry is satisfied as soon as an attempt with questions scores zero
func zeroScoreRetry(_ models.ZeroScoreRetry, s *State) bool {
	return s.Attempt.Total > 0 && s.Attempt.Score == 0
}

func quizPassCount(c models.QuizPassCount, s *State) bool {
	passed := 0
	for _, a := range s.History {
		if a.Passed {
			passed++
		}
	}
	return passed >= c.Threshold
}

// failThenPass looks for a lesson with a failing attempt followed by a
// passing one in history order
func failThenPass(_ models.FailThenPass, s *State) bool {
	failed := make(map[string]bool)
	for _, a := range s.History {
		if !a.Passed {
			failed[a.LessonID] = true
		} else if failed[a.LessonID] {
			return true
		}
	}
	return false
}

func perfectQuiz(_ models.PerfectQuiz, s *State) bool {
	return s.Attempt.Percentage == 100
}

// lessonsCompleted counts completed lessons that are still in the catalog
func lessonsCompleted(c models.LessonsCompleted, s *State) bool {
	count := 0
	for id := range s.Completed {
		l := s.lessons.LessonByID(id)
		if l == nil || (c.Phase != 0 && l.Phase != c.Phase) {
			continue
		}
		count++
	}
	return count >= c.Threshold
}

// soundMastery needs a beginner and an advanced lesson for the sound, with
// every lesson of the sound completed
func soundMastery(c models.SoundMastery, s *State) bool {
	var beginner, advanced bool
	for _, l := range s.lessons.LessonsBySound(c.Sound) {
		if !s.Completed[l.ID] {
			return false
		}
		switch l.Level {
		case models.LevelBeginner:
			beginner = true
		case models.LevelAdvanced:
			advanced = true
		}
	}
	return beginner && advanced
}
