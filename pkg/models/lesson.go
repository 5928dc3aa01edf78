package models

// Level is the difficulty level of a lesson
type Level string

const (
	// LevelBeginner lessons introduce a sound with short, common words
	LevelBeginner Level = "beginner"
	// LevelAdvanced lessons use longer words and require the beginner lesson
	LevelAdvanced Level = "advanced"
)

// Sound describes the target vowel combination of a lesson
type Sound struct {
	Combination string    `json:"combination" yaml:"combination"` // e.g. "aa"
	IPA         string    `json:"ipa" yaml:"ipa"`                 // e.g. "aː"
	Description Localized `json:"description" yaml:"description"`
}

// QuizConfig holds the per-lesson quiz and reward settings
type QuizConfig struct {
	QuestionCount    int     `json:"question_count" yaml:"question_count"`
	PassingScore     float64 `json:"passing_score" yaml:"passing_score"` // fraction, 0.0 - 1.0
	PointsPerCorrect int     `json:"points_per_correct" yaml:"points_per_correct"`
	CompletionBonus  int     `json:"completion_bonus" yaml:"completion_bonus"`
	MasteryBonus     int     `json:"mastery_bonus" yaml:"mastery_bonus"`
}

// Lesson is one curriculum unit: one sound at one level. The ID encodes
// phase, sound and level, e.g. "P1-AA-BEG".
type Lesson struct {
	ID               string     `json:"id" yaml:"id"`
	Phase            int        `json:"phase" yaml:"phase"`
	Sound            Sound      `json:"sound" yaml:"sound"`
	Level            Level      `json:"level" yaml:"level"`
	Prerequisite     string     `json:"prerequisite,omitempty" yaml:"prerequisite"`
	Words            []Word     `json:"words" yaml:"words"`
	Distractors      []string   `json:"distractors,omitempty" yaml:"distractors"`
	Quiz             QuizConfig `json:"quiz" yaml:"quiz"`
	EstimatedMinutes int        `json:"estimated_minutes" yaml:"estimated_minutes"`
}

// QuizWords returns the words eligible for quizzing, in lesson order
func (l *Lesson) QuizWords() []Word {
	words := make([]Word, 0, len(l.Words))
	for _, w := range l.Words {
		if !w.IsStandalone(l.Sound.Combination) {
			words = append(words, w)
		}
	}
	return words
}
