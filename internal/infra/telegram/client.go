// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"

	"github.com/hamiltra/net-reminder/internal/domain/notification"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter posts notice summaries to one Telegram chat using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot    *telebot.Bot
	chatID int64
}

// NewTelebotAdapter creates an offline bot: no getMe call and no poller, the
// adapter only sends.
func NewTelebotAdapter(token string, chatID int64, apiURL string) (*TelebotAdapter, error) {
	b, err := telebot.NewBot(telebot.Settings{
		URL:     apiURL, // Empty means the public Bot API
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return &TelebotAdapter{bot: b, chatID: chatID}, nil
}

func (tba *TelebotAdapter) Name() string {
	return "telegram"
}

// Send posts the notice summary to the configured chat; recipients are
// ignored.
func (tba *TelebotAdapter) Send(ctx context.Context, notice *notification.Notice, _ []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recipient := &telebot.Chat{ID: tba.chatID}
	_, err := tba.bot.Send(recipient, notice.Summary, &telebot.SendOptions{DisableWebPagePreview: true})
	return err
}
