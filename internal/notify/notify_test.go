package notify

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReminderText(t *testing.T) {
	assert.Contains(t, ReminderText(1), "1 card due")
	assert.Contains(t, ReminderText(12), "12 cards due")
}

func TestTelegram_SendReminders(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramWithSender(sender, 42, discard())

	require.NoError(t, n.SendReminders(context.Background(), 3))
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, ReminderText(3), msg.Text)
}

func TestTelegram_SendFailure(t *testing.T) {
	boom := errors.New("forbidden: bot was blocked by the user")
	n := NewTelegramWithSender(&fakeSender{err: boom}, 42, discard())

	err := n.SendReminders(context.Background(), 3)
	assert.True(t, errors.Is(err, boom))
}

func TestTelegram_CanceledContext(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramWithSender(sender, 42, discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.SendReminders(ctx, 3), context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestLog_SendReminders(t *testing.T) {
	var buf bytes.Buffer
	n := NewLog(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, n.SendReminders(context.Background(), 5))
	assert.Contains(t, buf.String(), "due=5")
}
