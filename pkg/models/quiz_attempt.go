package models

import "time"

// QuizAttemptRecord is the persisted summary of one quiz attempt. Records are
// only ever appended to the history.
type QuizAttemptRecord struct {
	LessonID  string    `json:"lesson_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Passed    bool      `json:"passed"`
	Timestamp time.Time `json:"timestamp"`
}

// Percentage returns the rounded score percentage of the attempt
func (r QuizAttemptRecord) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Score*100 + r.Total/2) / r.Total
}
