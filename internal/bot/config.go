package bot

import "github.com/example/flipcards/pkg/models"

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Questions per quiz, 0 uses the lesson's own setting
	QuestionsPerQuiz int
	// Due lessons listed by /review
	ReviewListSize int
	// Locale for translations and badge names
	Locale string
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		QuestionsPerQuiz: 0,
		ReviewListSize:   5,
		Locale:           models.DefaultLocale,
	}
}
