package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/flipcards/internal/progress"
	"github.com/example/flipcards/internal/quiz"
	"github.com/example/flipcards/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data
const (
	callbackQuizPrefix   = "quiz:"
	callbackAnswerPrefix = "answer:"
	callbackLessons      = "lessons"
	callbackProgress     = "progress"
	callbackReview       = "review"
	callbackResetConfirm = "reset_confirm"
	callbackCancel       = "cancel"
)

// HandleCommand dispatches a slash command
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	switch message.Command() {
	case "start", "help":
		return b.handleStart()
	case "lessons":
		return b.handleLessons(ctx)
	case "quiz":
		return b.startQuiz(ctx, strings.ToUpper(strings.TrimSpace(message.CommandArguments())))
	case "progress":
		return b.handleProgress(ctx)
	case "review":
		return b.handleReview(ctx)
	case "reset":
		return b.handleReset()
	default:
		return b.handleUnknownCommand()
	}
}

// HandleCallback dispatches an inline button press
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback == nil || callback.Message == nil {
		return fmt.Errorf("invalid callback data: required fields are missing")
	}

	// Always answer the callback query to remove the loading state
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Warn("Failed to answer callback", "error", err)
	}

	switch data := callback.Data; {
	case data == callbackLessons:
		return b.handleLessons(ctx)
	case data == callbackProgress:
		return b.handleProgress(ctx)
	case data == callbackReview:
		return b.handleReview(ctx)
	case data == callbackResetConfirm:
		return b.handleResetConfirm(ctx)
	case data == callbackCancel:
		return b.sendText("Cancelled.")
	case strings.HasPrefix(data, callbackQuizPrefix):
		return b.startQuiz(ctx, strings.TrimPrefix(data, callbackQuizPrefix))
	case strings.HasPrefix(data, callbackAnswerPrefix):
		return b.handleAnswer(ctx, strings.TrimPrefix(data, callbackAnswerPrefix))
	default:
		return b.sendText("⚠️ Unknown action")
	}
}

func (b *Bot) handleStart() error {
	text := `Welcome to the Dutch vowel trainer! 🇳🇱

Available commands:
/lessons - Show all lessons
/quiz <lesson> - Take a quiz, e.g. /quiz P1-AA-BEG
/progress - Points, milestones and badges
/review - Lessons due for review
/reset - Delete all progress`

	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	return b.sendMessage(msg)
}

// MainMenuButtons returns the buttons for the main menu
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📚 Lessons", CallbackData: callbackLessons}},
		{{Text: "📊 Progress", CallbackData: callbackProgress}, {Text: "🔁 Review", CallbackData: callbackReview}},
	}
}

func (b *Bot) handleLessons(ctx context.Context) error {
	summary, err := b.progress.ProgressSummary(ctx)
	if err != nil {
		return err
	}
	completed := make(map[string]bool, len(summary.CompletedLessons))
	for _, id := range summary.CompletedLessons {
		completed[id] = true
	}

	var text strings.Builder
	text.WriteString("📚 Lessons\n")
	var buttons [][]MenuButton
	phase := 0
	for _, l := range b.lessons.AllLessons() {
		if l.Phase != phase {
			phase = l.Phase
			fmt.Fprintf(&text, "\nPhase %d\n", phase)
		}

		unlocked, err := b.progress.IsLessonUnlocked(ctx, l.ID)
		if err != nil {
			return err
		}
		status := "🔒"
		switch {
		case completed[l.ID]:
			status = "✅"
		case unlocked:
			status = "▫️"
		}
		fmt.Fprintf(&text, "%s %s  '%s' /%s/ %s\n", status, l.ID, l.Sound.Combination, l.Sound.IPA, l.Level)

		if unlocked {
			buttons = append(buttons, []MenuButton{{Text: l.ID, CallbackData: callbackQuizPrefix + l.ID}})
		}
	}

	msg := tgbotapi.NewMessage(b.chatID, text.String())
	msg.ReplyMarkup = createKeyboard(buttons)
	return b.sendMessage(msg)
}

func (b *Bot) startQuiz(ctx context.Context, lessonID string) error {
	if lessonID == "" {
		return b.sendText("Usage: /quiz <lesson>, e.g. /quiz P1-AA-BEG")
	}
	lesson := b.lessons.LessonByID(lessonID)
	if lesson == nil {
		return b.sendText(fmt.Sprintf("Lesson %s not found. Use /lessons to see all lessons.", lessonID))
	}

	unlocked, err := b.progress.IsLessonUnlocked(ctx, lessonID)
	if err != nil {
		return err
	}
	if !unlocked {
		return b.sendText(fmt.Sprintf("🔒 Complete %s first.", lesson.Prerequisite))
	}

	questions := b.progress.GenerateQuiz(lessonID, b.config.QuestionsPerQuiz)
	if len(questions) == 0 {
		return b.sendText("This lesson has no quiz words yet.")
	}
	b.session = &quizSession{LessonID: lessonID, Questions: questions}

	intro := fmt.Sprintf("🎧 %s: '%s' /%s/\n%s\n\n%d questions, %.0f%% to pass.",
		lesson.ID, lesson.Sound.Combination, lesson.Sound.IPA,
		lesson.Sound.Description.In(b.config.Locale),
		len(questions), lesson.Quiz.PassingScore*100)
	if err := b.sendText(intro); err != nil {
		return err
	}
	return b.sendQuestion()
}

func (b *Bot) sendQuestion() error {
	q := b.session.current()
	if q == nil {
		return nil
	}
	idx := len(b.session.Answers)

	prompt := "Pick the word you hear."
	if w := b.findWord(q.WordID); w != nil {
		if tr := w.Translations.In(b.config.Locale); tr != "" {
			prompt = fmt.Sprintf("Which word means \"%s\"?", tr)
		}
	}
	text := fmt.Sprintf("Question %d/%d  🔊 '%s'\n%s",
		idx+1, len(b.session.Questions), q.Sound.Combination, prompt)

	var buttons [][]MenuButton
	for i, option := range q.Options {
		buttons = append(buttons, []MenuButton{{
			Text:         option,
			CallbackData: fmt.Sprintf("%s%s:%d", callbackAnswerPrefix, q.ID, i),
		}})
	}

	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ReplyMarkup = createKeyboard(buttons)
	return b.sendMessage(msg)
}

// handleAnswer takes "<question id>:<option index>". Presses for any question
// other than the open one, including buttons of an abandoned quiz, are ignored.
func (b *Bot) handleAnswer(ctx context.Context, data string) error {
	if b.session == nil {
		return b.sendText("No quiz in progress. Use /lessons to start one.")
	}
	questionID, option, ok := strings.Cut(data, ":")
	if !ok || questionID == "" {
		return fmt.Errorf("invalid answer data %q", data)
	}
	optIdx, err := strconv.Atoi(option)
	if err != nil {
		return fmt.Errorf("invalid option index: %w", err)
	}

	q := b.session.current()
	if q == nil || q.ID != questionID || optIdx < 0 || optIdx >= len(q.Options) {
		b.log.Debug("Ignoring stale answer", "question", questionID)
		return nil
	}

	answer := quiz.CreateUserAnswer(*q, q.Options[optIdx])
	b.session.Answers = append(b.session.Answers, answer)

	feedback := "✅ Correct!"
	if !answer.IsCorrect {
		feedback = fmt.Sprintf("❌ The answer was %s", answer.Correct)
	}
	if err := b.sendText(feedback); err != nil {
		return err
	}

	if b.session.current() != nil {
		return b.sendQuestion()
	}
	return b.finishQuiz(ctx)
}

func (b *Bot) finishQuiz(ctx context.Context) error {
	session := b.session
	b.session = nil

	outcome, err := b.progress.RecordAttemptAndEvaluate(ctx, session.LessonID, session.Answers)
	if err != nil {
		return err
	}
	if outcome == nil {
		return b.sendText(fmt.Sprintf("Lesson %s no longer exists.", session.LessonID))
	}
	lp, err := b.progress.LessonProgress(ctx, session.LessonID)
	if err != nil {
		b.log.Warn("Failed to load lesson progress", "lesson", session.LessonID, "error", err)
	}
	return b.sendMessage(b.outcomeMessage(session.LessonID, outcome, lp))
}

func (b *Bot) outcomeMessage(lessonID string, outcome *progress.AttemptOutcome, lp *progress.LessonProgress) tgbotapi.MessageConfig {
	r := outcome.Result
	var text strings.Builder

	switch {
	case r.IsPerfect():
		fmt.Fprintf(&text, "💯 Perfect! %d/%d\n", r.Score, r.Total)
	case r.Passed:
		fmt.Fprintf(&text, "🎉 Passed! %d/%d (%d%%)\n", r.Score, r.Total, r.Percentage)
	default:
		fmt.Fprintf(&text, "📝 %d/%d (%d%%). Keep practising!\n", r.Score, r.Total, r.Percentage)
	}
	fmt.Fprintf(&text, "+%d points (answers %d, completion %d",
		r.TotalPoints, r.Breakdown.CorrectAnswerPoints, r.Breakdown.CompletionBonus)
	if r.Breakdown.MasteryBonus > 0 {
		fmt.Fprintf(&text, ", mastery %d", r.Breakdown.MasteryBonus)
	}
	fmt.Fprintf(&text, ")\nTotal: %d points\n", outcome.TotalPoints)

	if outcome.FirstCompletion {
		fmt.Fprintf(&text, "\n✅ %s completed!\n", lessonID)
	}
	if m := outcome.NewMilestone; m != nil {
		fmt.Fprintf(&text, "\n🏅 New milestone: %s\n", m.Name.In(b.config.Locale))
	}
	for _, id := range outcome.NewBadges {
		if badge := b.lessons.BadgeByID(id); badge != nil {
			fmt.Fprintf(&text, "\n%s %s: %s", badge.Icon, badge.Name.In(b.config.Locale), badge.Description.In(b.config.Locale))
		}
	}
	if lp != nil {
		fmt.Fprintf(&text, "\n\nAttempts on %s: %d, best %d%%", lessonID, lp.Attempts, lp.BestPercentage)
		if lp.NextReview != nil {
			fmt.Fprintf(&text, "\nNext review: %s", lp.NextReview.Format("2006-01-02"))
		}
	}

	msg := tgbotapi.NewMessage(b.chatID, text.String())
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "🔁 Try again", CallbackData: callbackQuizPrefix + lessonID}},
		{{Text: "📚 Lessons", CallbackData: callbackLessons}, {Text: "📊 Progress", CallbackData: callbackProgress}},
	})
	return msg
}

func (b *Bot) handleProgress(ctx context.Context) error {
	summary, err := b.progress.ProgressSummary(ctx)
	if err != nil {
		return err
	}
	locale := b.config.Locale

	var text strings.Builder
	fmt.Fprintf(&text, "📊 Progress\n\nPoints: %d\n", summary.TotalPoints)
	if m := summary.CurrentMilestone; m != nil {
		fmt.Fprintf(&text, "Milestone: %s\n", m.Name.In(locale))
	}
	if next := summary.NextMilestone; next != nil {
		fmt.Fprintf(&text, "Next: %s in %d points\n", next.Milestone.Name.In(locale), next.Remaining)
	}

	text.WriteString("\n")
	for _, p := range summary.Phases {
		fmt.Fprintf(&text, "Phase %d: %d/%d lessons\n", p.Phase, p.Completed, p.Total)
	}

	s := summary.Statistics
	fmt.Fprintf(&text, "\nQuizzes: %d, passed %d (%.0f%%), perfect %d\n", s.Attempts, s.Passed, s.PassRate*100, s.Perfect)

	if len(summary.EarnedBadges) > 0 {
		text.WriteString("\nBadges:\n")
		for _, earned := range summary.EarnedBadges {
			if badge := b.lessons.BadgeByID(earned.BadgeID); badge != nil {
				fmt.Fprintf(&text, "%s %s (%s)\n", badge.Icon, badge.Name.In(locale), earned.EarnedAt.Format("2006-01-02"))
			}
		}
	}

	return b.sendText(text.String())
}

func (b *Bot) handleReview(ctx context.Context) error {
	due, err := b.progress.DueReviews(ctx, time.Now(), b.config.ReviewListSize)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return b.sendText("Nothing to review right now. 👍")
	}
	return b.SendReviewReminder(due)
}

func (b *Bot) handleReset() error {
	msg := tgbotapi.NewMessage(b.chatID, "⚠️ This deletes all points, badges and lesson progress. Are you sure?")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{
		{Text: "Yes, reset", CallbackData: callbackResetConfirm},
		{Text: "Cancel", CallbackData: callbackCancel},
	}})
	return b.sendMessage(msg)
}

func (b *Bot) handleResetConfirm(ctx context.Context) error {
	if err := b.progress.Reset(ctx); err != nil {
		return err
	}
	b.session = nil
	return b.sendText("Progress reset. Use /lessons to start again.")
}

func (b *Bot) handleUnknownCommand() error {
	return b.sendText("Unknown command. Use /start to see the available commands.")
}

func (b *Bot) findWord(wordID string) *models.Word {
	if b.session == nil {
		return nil
	}
	lesson := b.lessons.LessonByID(b.session.LessonID)
	if lesson == nil {
		return nil
	}
	for i := range lesson.Words {
		if lesson.Words[i].ID == wordID {
			return &lesson.Words[i]
		}
	}
	return nil
}
