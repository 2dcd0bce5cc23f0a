package notify

import (
	"context"
	"fmt"

	"candlescan/config"
	"candlescan/pkg/logger"

	"gopkg.in/telebot.v3"
)

type telegramNotifier struct {
	cfg config.TelegramConfig
	log *logger.Logger
	bot *telebot.Bot
}

// NewTelegramNotifier mirrors every alert into a fixed operations chat.
// Recipients are ignored, the chat id comes from config.
func NewTelegramNotifier(cfg config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) Notifier {
	return &telegramNotifier{cfg: cfg, log: log, bot: bot}
}

func (n *telegramNotifier) Send(ctx context.Context, msg AlertMessage, recipients []string) error {
	emoji := "🟢"
	if msg.SignalType == "SELL" {
		emoji = "🔴"
	}
	text := fmt.Sprintf("%s *%s %s* @ %s\n%s", emoji, msg.SignalType, msg.Symbol, msg.Price, msg.Reason)

	if _, err := n.bot.Send(telebot.ChatID(n.cfg.ChatID), text, telebot.ModeMarkdown); err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}
