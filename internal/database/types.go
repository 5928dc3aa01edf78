package database

import "context"

// Keys of the five progress records
const (
	KeyCompletedLessons = "completed_lessons"
	KeyTotalPoints      = "total_points"
	KeyEarnedBadges     = "earned_badges"
	KeyQuizHistory      = "quiz_history"
	KeyReviewStates     = "review_states"
)

// ProgressKeys lists every key owned by the progress store
var ProgressKeys = []string{
	KeyCompletedLessons,
	KeyTotalPoints,
	KeyEarnedBadges,
	KeyQuizHistory,
	KeyReviewStates,
}

// KV is a string-valued key/value store. Get reports ok=false for a missing
// key. DeleteAll removes all given keys or none of them.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	DeleteAll(ctx context.Context, keys ...string) error
}
