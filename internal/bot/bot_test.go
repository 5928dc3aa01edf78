package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/example/flipcards/internal/curriculum"
	"github.com/example/flipcards/internal/database"
	"github.com/example/flipcards/internal/logger"
	"github.com/example/flipcards/internal/progress"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const learnerChat = 4242

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last() tgbotapi.MessageConfig {
	return f.sent[len(f.sent)-1]
}

func newTestBot(t *testing.T) (*Bot, *fakeSender) {
	t.Helper()
	c, err := curriculum.Load()
	if err != nil {
		t.Fatal(err)
	}
	store := database.NewStore(database.NewMemoryKV(), logger.NewNop())
	svc := progress.NewService(c, store, rand.New(rand.NewSource(9)), logger.NewNop())

	b, err := New("token", learnerChat, svc, c, nil, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	sender := &fakeSender{}
	b.api = sender
	return b, sender
}

func command(chatID int64, text string) tgbotapi.Update {
	cmd := strings.SplitN(text, " ", 2)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func callback(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}

func TestNewRequiresSettings(t *testing.T) {
	if _, err := New("", learnerChat, nil, nil, nil, logger.NewNop()); err == nil {
		t.Error("expected error without token")
	}
	if _, err := New("token", 0, nil, nil, nil, logger.NewNop()); err == nil {
		t.Error("expected error without chat id")
	}
}

func TestIgnoresOtherChats(t *testing.T) {
	b, sender := newTestBot(t)
	b.HandleUpdate(context.Background(), command(1, "/start"))
	if len(sender.sent) != 0 {
		t.Errorf("replied to a foreign chat: %+v", sender.sent)
	}
}

func TestQuizFlow(t *testing.T) {
	b, sender := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(learnerChat, "/quiz p1-aa-beg"))
	if b.session == nil {
		t.Fatalf("no quiz session started, sent %+v", sender.sent)
	}

	for i := range b.session.Questions {
		q := b.session.current()
		keyboard, ok := sender.last().ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
		if !ok || len(keyboard.InlineKeyboard) != len(q.Options) {
			t.Fatalf("question %d keyboard = %+v", i, sender.last().ReplyMarkup)
		}
		for opt, option := range q.Options {
			if option == q.CorrectAnswer {
				b.HandleUpdate(ctx, callback(learnerChat, fmt.Sprintf("%s%s:%d", callbackAnswerPrefix, q.ID, opt)))
			}
		}
	}

	if b.session != nil {
		t.Fatal("session still open after the last answer")
	}
	result := sender.last().Text
	for _, want := range []string{"Perfect!", "5/5", "First Steps", "Perfect Score", "Attempts on P1-AA-BEG: 1, best 100%", "Next review:"} {
		if !strings.Contains(result, want) {
			t.Errorf("result message %q does not mention %q", result, want)
		}
	}
}

func TestStaleAnswerIgnored(t *testing.T) {
	b, sender := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(learnerChat, "/quiz P1-EE-BEG"))
	before := len(sender.sent)
	later := b.session.Questions[3].ID
	b.HandleUpdate(ctx, callback(learnerChat, callbackAnswerPrefix+later+":0"))
	if len(sender.sent) != before || len(b.session.Answers) != 0 {
		t.Error("answer for a later question was accepted")
	}
}

func TestAbandonedQuizButtonsIgnored(t *testing.T) {
	b, sender := newTestBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, command(learnerChat, "/quiz P1-AA-BEG"))
	keyboard, ok := sender.last().ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(keyboard.InlineKeyboard) == 0 {
		t.Fatalf("first quiz keyboard = %+v", sender.last().ReplyMarkup)
	}
	var oldButtons []string
	for _, row := range keyboard.InlineKeyboard {
		oldButtons = append(oldButtons, *row[0].CallbackData)
	}

	b.HandleUpdate(ctx, command(learnerChat, "/quiz P1-EE-BEG"))
	if b.session == nil || b.session.LessonID != "P1-EE-BEG" {
		t.Fatalf("second quiz not started: %+v", b.session)
	}
	before := len(sender.sent)

	for _, data := range oldButtons {
		b.HandleUpdate(ctx, callback(learnerChat, data))
	}
	if len(b.session.Answers) != 0 {
		t.Errorf("buttons of the abandoned quiz answered the new one: %+v", b.session.Answers)
	}
	if len(sender.sent) != before {
		t.Errorf("replied to abandoned quiz buttons: %+v", sender.sent[before:])
	}
}

func TestMalformedAnswerData(t *testing.T) {
	tests := []string{"", "no-colon", ":0", "abc:x"}
	for _, data := range tests {
		t.Run(data, func(t *testing.T) {
			b, _ := newTestBot(t)
			ctx := context.Background()
			b.HandleUpdate(ctx, command(learnerChat, "/quiz P1-EE-BEG"))
			if err := b.handleAnswer(ctx, data); err == nil {
				t.Errorf("handleAnswer(%q) accepted malformed data", data)
			}
			if len(b.session.Answers) != 0 {
				t.Errorf("handleAnswer(%q) recorded %+v", data, b.session.Answers)
			}
		})
	}
}

func TestLockedLesson(t *testing.T) {
	b, sender := newTestBot(t)
	b.HandleUpdate(context.Background(), command(learnerChat, "/quiz P1-AA-ADV"))
	if b.session != nil || !strings.Contains(sender.last().Text, "P1-AA-BEG") {
		t.Errorf("locked lesson started, last message %q", sender.last().Text)
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "/start", want: "/lessons"},
		{text: "/lessons", want: "Phase 3"},
		{text: "/progress", want: "Points: 0"},
		{text: "/review", want: "Nothing to review"},
		{text: "/reset", want: "Are you sure"},
		{text: "/quiz", want: "Usage"},
		{text: "/quiz P9-ZZ-BEG", want: "not found"},
		{text: "/dance", want: "Unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b, sender := newTestBot(t)
			b.HandleUpdate(context.Background(), command(learnerChat, tt.text))
			if len(sender.sent) == 0 || !strings.Contains(sender.last().Text, tt.want) {
				t.Errorf("%s replied %+v, want %q", tt.text, sender.sent, tt.want)
			}
		})
	}
}
