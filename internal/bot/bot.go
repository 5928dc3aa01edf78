package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/internal/progress"
	"github.com/example/flipcards/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Progress is the learner progress the bot presents and records
type Progress interface {
	GenerateQuiz(lessonID string, count int) []models.QuizQuestion
	RecordAttemptAndEvaluate(ctx context.Context, lessonID string, answers []models.UserAnswer) (*progress.AttemptOutcome, error)
	ProgressSummary(ctx context.Context) (*models.ProgressSummary, error)
	DueReviews(ctx context.Context, now time.Time, max int) ([]models.DueReview, error)
	IsLessonUnlocked(ctx context.Context, lessonID string) (bool, error)
	LessonProgress(ctx context.Context, lessonID string) (*progress.LessonProgress, error)
	Reset(ctx context.Context) error
}

// Lessons is the curriculum the bot lists
type Lessons interface {
	AllLessons() []models.Lesson
	LessonByID(id string) *models.Lesson
	BadgeByID(id string) *models.Badge
}

// Sender is the part of the Telegram API the bot talks to
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// quizSession is the quiz the learner is currently taking
type quizSession struct {
	LessonID  string
	Questions []models.QuizQuestion
	Answers   []models.UserAnswer
}

func (s *quizSession) current() *models.QuizQuestion {
	if len(s.Answers) >= len(s.Questions) {
		return nil
	}
	return &s.Questions[len(s.Answers)]
}

// Bot represents the Telegram bot application. It serves a single learner
// chat and handles updates one at a time.
type Bot struct {
	api      Sender
	token    string
	chatID   int64
	progress Progress
	lessons  Lessons
	config   *BotConfig
	log      *logger.Logger
	session  *quizSession
}

// New creates a new bot instance
func New(token string, chatID int64, p Progress, lessons Lessons, config *BotConfig, log *logger.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("LEARNER_CHAT_ID environment variable is not set")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Bot{
		token:    token,
		chatID:   chatID,
		progress: p,
		lessons:  lessons,
		config:   config,
		log:      log,
	}, nil
}

// Connect authorizes the bot with Telegram
func (b *Bot) Connect() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %w", err)
	}
	b.api = botAPI
	b.log.Info("Authorized on account", "username", botAPI.Self.UserName)
	return nil
}

// Start handles updates until ctx is cancelled. Connect must be called first.
func (b *Bot) Start(ctx context.Context) error {
	botAPI, ok := b.api.(*tgbotapi.BotAPI)
	if !ok {
		return fmt.Errorf("bot is not connected")
	}

	// Set up the update configuration
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := botAPI.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			botAPI.StopReceivingUpdates()
			b.log.Info("Bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			// one update at a time, attempts are never recorded concurrently
			b.HandleUpdate(ctx, update)
		}
	}
}

// SendReviewReminder implements the scheduler.Notifier interface
func (b *Bot) SendReviewReminder(due []models.DueReview) error {
	if b.api == nil {
		return fmt.Errorf("bot is not connected")
	}

	var text strings.Builder
	fmt.Fprintf(&text, "⏰ %d %s ready for review:\n", len(due), plural(len(due), "lesson", "lessons"))
	var buttons [][]MenuButton
	for _, d := range due {
		fmt.Fprintf(&text, "• %s (%d%%)\n", b.lessonTitle(d.LessonID), d.Urgency)
		buttons = append(buttons, []MenuButton{{Text: "Review " + d.LessonID, CallbackData: callbackQuizPrefix + d.LessonID}})
	}

	msg := tgbotapi.NewMessage(b.chatID, text.String())
	msg.ReplyMarkup = createKeyboard(buttons)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("Error sending review reminder", "error", err)
		return err
	}
	return nil
}

// HandleUpdate handles incoming updates from Telegram. Updates from any chat
// other than the learner's are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	chat := update.FromChat()
	if chat == nil || chat.ID != b.chatID {
		return
	}

	var err error
	switch {
	case update.Message != nil && update.Message.IsCommand():
		err = b.HandleCommand(ctx, update.Message)
	case update.Message != nil:
		err = b.sendText("I don't understand. Use /lessons to pick a lesson.")
	case update.CallbackQuery != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	}

	if err != nil {
		b.log.Error("Error handling update", "update_id", update.UpdateID, "error", err)
		b.sendText("❌ Something went wrong. Please try again.")
	}
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) error {
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendText(text string) error {
	return b.sendMessage(tgbotapi.NewMessage(b.chatID, text))
}

func (b *Bot) lessonTitle(lessonID string) string {
	lesson := b.lessons.LessonByID(lessonID)
	if lesson == nil {
		return lessonID
	}
	return fmt.Sprintf("%s '%s' (%s)", lesson.ID, lesson.Sound.Combination, lesson.Level)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
