package bot

import (
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"homework_bot/internal/apperr"
	"homework_bot/internal/config"
)

// Sender - часть tgbotapi.BotAPI, нужная для отправки
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	sender Sender
	chatID string
	log    zerolog.Logger
}

// New не завершает запуск из-за недоступного Telegram: токен проверяется
// через getMe, но ошибка только логируется.
func New(cfg *config.Config, log zerolog.Logger) *Bot {
	api := &tgbotapi.BotAPI{
		Token:  cfg.TelegramToken,
		Debug:  cfg.Debug,
		Buffer: 100,
		Client: &http.Client{Timeout: cfg.RequestTimeout},
	}
	endpoint := cfg.TelegramEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api.SetAPIEndpoint(endpoint)

	b := NewWithSender(api, cfg.TelegramChatID, log)

	me, err := api.GetMe()
	if err != nil {
		b.log.Error().Err(err).Msg("Не удалось проверить токен бота")
		return b
	}
	api.Self = me
	b.log.Debug().Str("account", me.UserName).Msg("Authorized on account")
	return b
}

func NewWithSender(sender Sender, chatID string, log zerolog.Logger) *Bot {
	return &Bot{
		sender: sender,
		chatID: chatID,
		log:    log.With().Str("component", "bot").Logger(),
	}
}

// Notify отправляет текст в настроенный чат. Ошибка отправки только логируется.
func (b *Bot) Notify(text string) {
	if err := b.send(text); err != nil {
		b.log.Error().Err(err).Msg("Не удалось отправить сообщение через бота")
		return
	}
	b.log.Debug().Msg("Отправили сообщение через бота")
}

func (b *Bot) send(text string) error {
	if _, err := b.sender.Send(b.message(text)); err != nil {
		return apperr.Notify("send message", err)
	}
	return nil
}

// message строит сообщение для числового chat id или для @username канала
func (b *Bot) message(text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(strings.TrimSpace(b.chatID), 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(b.chatID, text)
}
