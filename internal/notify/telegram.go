package notify

import (
	"context"
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agency-planner/internal/repository"
)

// TelegramNotifier pushes reminders to users with a linked Telegram chat.
// Users without a chat id are silently skipped.
type TelegramNotifier struct {
	api      *tgbotapi.BotAPI
	userRepo *repository.UserRepository
}

func NewTelegramNotifier(token string, userRepo *repository.UserRepository) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &TelegramNotifier{api: api, userRepo: userRepo}, nil
}

// Send delivers one reminder. The context bounds the user lookup; the
// Telegram call itself is governed by the bot API's HTTP client.
func (n *TelegramNotifier) Send(ctx context.Context, userID uint, title, message string) error {
	user, err := n.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user %d: %w", userID, err)
	}
	if user.TelegramChatID == 0 {
		return nil
	}

	text := fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(title), html.EscapeString(message))
	msg := tgbotapi.NewMessage(user.TelegramChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
