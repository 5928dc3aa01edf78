package models

import "time"

// CriteriaKind names a badge rule
type CriteriaKind string

const (
	CriteriaZeroScoreRetry   CriteriaKind = "zero_score_retry"
	CriteriaQuizPassCount    CriteriaKind = "quiz_pass_count"
	CriteriaFailThenPass     CriteriaKind = "fail_then_pass"
	CriteriaPerfectQuiz      CriteriaKind = "perfect_quiz"
	CriteriaLessonsCompleted CriteriaKind = "lessons_completed"
	CriteriaSoundMastery     CriteriaKind = "sound_mastery"
)

// BadgeCriteria is the rule a badge is awarded by. Every kind has its own
// type below.
type BadgeCriteria interface {
	Kind() CriteriaKind
}

// ZeroScoreRetry is satisfied by an attempt that scored zero
type ZeroScoreRetry struct{}

// QuizPassCount is satisfied once the number of passing attempts reaches Threshold
type QuizPassCount struct {
	Threshold int `yaml:"threshold"`
}

// FailThenPass is satisfied when a lesson was failed and later passed
type FailThenPass struct{}

// PerfectQuiz is satisfied by an attempt with 100%
type PerfectQuiz struct{}

// LessonsCompleted is satisfied once Threshold distinct lessons are complete.
// With Phase set only lessons of that phase count.
type LessonsCompleted struct {
	Threshold int `yaml:"threshold"`
	Phase     int `yaml:"phase"`
}

// SoundMastery is satisfied when both levels of Sound are complete
type SoundMastery struct {
	Sound string `yaml:"sound"`
}

func (ZeroScoreRetry) Kind() CriteriaKind   { return CriteriaZeroScoreRetry }
func (QuizPassCount) Kind() CriteriaKind    { return CriteriaQuizPassCount }
func (FailThenPass) Kind() CriteriaKind     { return CriteriaFailThenPass }
func (PerfectQuiz) Kind() CriteriaKind      { return CriteriaPerfectQuiz }
func (LessonsCompleted) Kind() CriteriaKind { return CriteriaLessonsCompleted }
func (SoundMastery) Kind() CriteriaKind     { return CriteriaSoundMastery }

// Badge is an achievement from the badge catalog
type Badge struct {
	ID          string        `json:"id"`
	Name        Localized     `json:"name"`
	Description Localized     `json:"description"`
	Icon        string        `json:"icon"`
	Criteria    BadgeCriteria `json:"-"`
}

// EarnedBadge records when a badge was awarded. A badge ID appears at most
// once in the earned list.
type EarnedBadge struct {
	BadgeID  string    `json:"badge_id"`
	EarnedAt time.Time `json:"earned_at"`
}
