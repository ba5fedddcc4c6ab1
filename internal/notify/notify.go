// Package notify delivers study reminders to the learner.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ReminderText is the message sent when count cards are waiting
func ReminderText(count int) string {
	noun := "cards"
	if count == 1 {
		noun = "card"
	}
	return fmt.Sprintf("You have %d %s due for review. ተማር! Run `fideltutor due` to start.", count, noun)
}

// Sender is the part of tgbotapi.BotAPI used for reminders
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends reminders to one Telegram chat
type Telegram struct {
	api    Sender
	chatID int64
	logger *slog.Logger
}

// NewTelegram authorizes the bot token and returns a notifier for chatID
func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	logger.Info("telegram notifier authorized", "bot", api.Self.UserName)
	return NewTelegramWithSender(api, chatID, logger), nil
}

// NewTelegramWithSender wraps an existing sender
func NewTelegramWithSender(api Sender, chatID int64, logger *slog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, logger: logger}
}

// SendReminders implements scheduler.Notifier
func (t *Telegram) SendReminders(ctx context.Context, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, ReminderText(count))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder to chat %d: %w", t.chatID, err)
	}

	t.logger.Info("reminder sent", "chat_id", t.chatID, "due", count)
	return nil
}

// Log writes reminders to the application log. It is used when no
// Telegram chat is configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// SendReminders implements scheduler.Notifier
func (l *Log) SendReminders(ctx context.Context, count int) error {
	l.logger.InfoContext(ctx, ReminderText(count), "due", count)
	return nil
}
