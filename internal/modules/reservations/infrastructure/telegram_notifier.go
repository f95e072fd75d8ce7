package infrastructure

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"elyseeWeb/internal/modules/reservations/application/port"
	"elyseeWeb/internal/modules/reservations/domain"
)

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts new reservation requests to the concierge chat.
type TelegramNotifier struct {
	api    telegramSender
	chatID int64
}

// NewTelegramNotifier authenticates the bot token against the Telegram API.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return newTelegramNotifier(api, chatID), nil
}

func newTelegramNotifier(api telegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{api: api, chatID: chatID}
}

func (n *TelegramNotifier) Notify(ctx context.Context, evt domain.Requested) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, notificationText(evt))
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func notificationText(evt domain.Requested) string {
	var b strings.Builder
	b.WriteString("New reservation request\n")
	b.WriteString(evt.Summary())
	b.WriteString("\nRef: ")
	b.WriteString(evt.Reference)
	if evt.Request.Phone != "" {
		b.WriteString("\nPhone: ")
		b.WriteString(evt.Request.Phone)
	}
	if evt.Request.Email != "" {
		b.WriteString("\nEmail: ")
		b.WriteString(evt.Request.Email)
	}
	if evt.Request.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(evt.Request.Message)
	}
	return b.String()
}

var _ port.Notifier = (*TelegramNotifier)(nil)
