package quiz

import (
	"math"

	"github.com/example/flipcards/pkg/models"
)

// CalculateScore scores a finished attempt against the lesson's quiz settings
func CalculateScore(answers []models.UserAnswer, lesson *models.Lesson) models.QuizResult {
	total := len(answers)
	score := 0
	for _, a := range answers {
		if a.IsCorrect {
			score++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) / float64(total) * 100))
	}
	passed := float64(percentage)/100 >= lesson.Quiz.PassingScore

	breakdown := models.PointsBreakdown{
		CorrectAnswerPoints: score * lesson.Quiz.PointsPerCorrect,
		CompletionBonus:     lesson.Quiz.CompletionBonus,
	}
	if passed {
		breakdown.MasteryBonus = lesson.Quiz.MasteryBonus
	}

	return models.QuizResult{
		Score:       score,
		Total:       total,
		Percentage:  percentage,
		Passed:      passed,
		TotalPoints: breakdown.CorrectAnswerPoints + breakdown.CompletionBonus + breakdown.MasteryBonus,
		Breakdown:   breakdown,
	}
}

// CreateUserAnswer records the learner's choice for a question
func CreateUserAnswer(question models.QuizQuestion, selected string) models.UserAnswer {
	return models.UserAnswer{
		QuestionID: question.ID,
		Selected:   selected,
		Correct:    question.CorrectAnswer,
		IsCorrect:  selected == question.CorrectAnswer,
	}
}
