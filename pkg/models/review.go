package models

import "time"

// ReviewState tracks spaced review of a completed lesson
type ReviewState struct {
	LastReview  time.Time `json:"last_review"`
	ReviewCount int       `json:"review_count"` // passing reviews since first mastery
}

// DueReview is a lesson that is due for review, with its urgency (0-100)
type DueReview struct {
	LessonID string  `json:"lesson_id"`
	Urgency  int     `json:"urgency"`
	Overdue  float64 `json:"overdue"` // elapsed / interval
}
