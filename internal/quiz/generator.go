package quiz

import (
	"math/rand"
	"time"

	"github.com/example/flipcards/pkg/models"
	"github.com/google/uuid"
)

// LessonSource is the reference data the generator draws distractors from
type LessonSource interface {
	Sounds() []string
	LessonsBySound(sound string) []models.Lesson
}

// Generator builds quizzes. It is not safe for concurrent use.
type Generator struct {
	lessons LessonSource
	rnd     *rand.Rand
}

// NewGenerator creates a generator. A nil rnd is replaced by a time seeded one.
func NewGenerator(lessons LessonSource, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{lessons: lessons, rnd: rnd}
}

// GenerateQuiz builds up to count questions over distinct quiz words of the
// lesson. count <= 0 uses the lesson's configured question count. Lessons
// with fewer eligible words produce fewer questions.
func (g *Generator) GenerateQuiz(lesson *models.Lesson, count int) []models.QuizQuestion {
	if lesson == nil {
		return nil
	}
	if count <= 0 {
		count = lesson.Quiz.QuestionCount
	}

	words := lesson.QuizWords()
	g.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	if len(words) > count {
		words = words[:count]
	}

	questions := make([]models.QuizQuestion, 0, len(words))
	for _, word := range words {
		options := append([]string{word.Text}, g.Distractors(lesson, word, DefaultDistractorCount)...)
		g.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, models.QuizQuestion{
			ID:            uuid.NewString(),
			WordID:        word.ID,
			CorrectAnswer: word.Text,
			Options:       options,
			Sound:         lesson.Sound,
		})
	}
	return questions
}
