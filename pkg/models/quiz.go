package models

// QuizQuestion is a single generated multiple choice question. It lives only
// for the duration of one attempt.
type QuizQuestion struct {
	ID            string   `json:"id"`
	WordID        string   `json:"word_id"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	Sound         Sound    `json:"sound"`
}

// UserAnswer is the learner's answer to one question
type UserAnswer struct {
	QuestionID string `json:"question_id"`
	Selected   string `json:"selected"`
	Correct    string `json:"correct"`
	IsCorrect  bool   `json:"is_correct"`
}

// PointsBreakdown splits the points of a single attempt by source
type PointsBreakdown struct {
	CorrectAnswerPoints int `json:"correct_answer_points"`
	CompletionBonus     int `json:"completion_bonus"`
	MasteryBonus        int `json:"mastery_bonus"`
}

// QuizResult is the scored outcome of one attempt
type QuizResult struct {
	Score       int             `json:"score"`
	Total       int             `json:"total"`
	Percentage  int             `json:"percentage"`
	Passed      bool            `json:"passed"`
	TotalPoints int             `json:"total_points"`
	Breakdown   PointsBreakdown `json:"breakdown"`
}

// IsPerfect reports whether every answer was correct
func (r QuizResult) IsPerfect() bool {
	return r.Percentage == 100
}
