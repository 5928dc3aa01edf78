package models

// Statistics summarises the attempt history
type Statistics struct {
	Attempts         int     `json:"attempts"`
	Passed           int     `json:"passed"`
	Perfect          int     `json:"perfect"`
	PassRate         float64 `json:"pass_rate"` // 0.0 - 1.0
	LessonsAttempted int     `json:"lessons_attempted"`
}

// PhaseProgress is the completion state of one curriculum phase
type PhaseProgress struct {
	Phase     int `json:"phase"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressSummary is everything the presentation layer shows on the progress screen
type ProgressSummary struct {
	TotalPoints        int             `json:"total_points"`
	CompletedLessons   []string        `json:"completed_lessons"`
	CurrentMilestone   *Milestone      `json:"current_milestone,omitempty"`
	NextMilestone      *NextMilestone  `json:"next_milestone,omitempty"`
	AchievedMilestones []Milestone     `json:"achieved_milestones"`
	EarnedBadges       []EarnedBadge   `json:"earned_badges"`
	Statistics         Statistics      `json:"statistics"`
	Phases             []PhaseProgress `json:"phases"`
}
