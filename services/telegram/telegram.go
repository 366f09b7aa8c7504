package telegram

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/AliaksandrTarashkevich/ppianieal/services"
	"github.com/AliaksandrTarashkevich/ppianieal/structs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const pollTimeout = 60

// Submitter accepts converted updates, usually the conversation dispatcher.
type Submitter interface {
	Submit(ctx context.Context, msg structs.IncomingMessage) error
}

// TelegramService is the chat transport: it sends replies and turns updates into messages.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	logger *logrus.Entry
}

func New(token string, debug bool, logger *logrus.Entry) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	bot.Debug = debug
	logger.WithFields(logrus.Fields{"bot": bot.Self.UserName}).Info("telegram bot authorized")
	return &TelegramService{bot: bot, logger: logger}, nil
}

func (t *TelegramService) Send(ctx context.Context, msg structs.OutgoingMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(buildChattable(msg)); err != nil {
		return fmt.Errorf("send to %d: %w", msg.ChatID, err)
	}
	return nil
}

// DownloadFile fetches an uploaded file, e.g. the largest size of a photo.
func (t *TelegramService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := t.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}
	return services.HttpRequest(ctx, http.MethodGet, url, nil, nil)
}

func buildChattable(msg structs.OutgoingMessage) tgbotapi.Chattable {
	var markup interface{}
	switch {
	case msg.RemoveKeyboard:
		markup = tgbotapi.NewRemoveKeyboard(true)
	case msg.Keyboard != nil:
		markup = replyKeyboard(msg.Keyboard)
	}

	if msg.PhotoURL != "" {
		photo := tgbotapi.NewPhoto(msg.ChatID, tgbotapi.FileURL(msg.PhotoURL))
		photo.Caption = msg.Text
		if msg.Markdown {
			photo.ParseMode = tgbotapi.ModeMarkdown
		}
		if markup != nil {
			photo.ReplyMarkup = markup
		}
		return photo
	}

	message := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	if msg.Markdown {
		message.ParseMode = tgbotapi.ModeMarkdown
	}
	if markup != nil {
		message.ReplyMarkup = markup
	}
	return message
}

func replyKeyboard(keyboard *structs.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(keyboard.Rows))
	for _, labels := range keyboard.Rows {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, label := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = keyboard.OneTime
	markup.InputFieldPlaceholder = keyboard.Placeholder
	return markup
}

// Convert reduces an update to an IncomingMessage; false for updates the bot ignores.
func Convert(update tgbotapi.Update) (structs.IncomingMessage, bool) {
	message := update.Message
	if message == nil || message.From == nil {
		return structs.IncomingMessage{}, false
	}

	msg := structs.IncomingMessage{
		UserID:     message.From.ID,
		ChatID:     message.Chat.ID,
		Text:       strings.TrimSpace(message.Text),
		Caption:    strings.TrimSpace(message.Caption),
		ReceivedAt: message.Time(),
	}
	if message.IsCommand() {
		msg.Command = strings.ToLower(message.Command())
		msg.CommandArgs = strings.TrimSpace(message.CommandArguments())
	}
	if n := len(message.Photo); n > 0 {
		// sizes are ordered from smallest to largest
		msg.PhotoFileID = message.Photo[n-1].FileID
	}
	if msg.Text == "" && msg.PhotoFileID == "" {
		return structs.IncomingMessage{}, false
	}
	return msg, true
}

// Poll receives updates by long polling until ctx is done.
func (t *TelegramService) Poll(ctx context.Context, submitter Submitter) error {
	if _, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	config := tgbotapi.NewUpdate(0)
	config.Timeout = pollTimeout
	updates := t.bot.GetUpdatesChan(config)
	t.logger.Info("polling telegram updates")

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.submit(ctx, submitter, update)
		}
	}
}

// SetWebhook registers the public URL telegram posts updates to.
func (t *TelegramService) SetWebhook(url string) error {
	webhook, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("webhook url %q: %w", url, err)
	}
	if _, err := t.bot.Request(webhook); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	t.logger.WithFields(logrus.Fields{"url": url}).Info("telegram webhook set")
	return nil
}

// HandleWebhook parses one webhook request and submits its message.
func (t *TelegramService) HandleWebhook(r *http.Request, submitter Submitter) error {
	update, err := t.bot.HandleUpdate(r)
	if err != nil {
		return err
	}
	t.submit(r.Context(), submitter, *update)
	return nil
}

func (t *TelegramService) submit(ctx context.Context, submitter Submitter, update tgbotapi.Update) {
	msg, ok := Convert(update)
	if !ok {
		return
	}
	if err := submitter.Submit(ctx, msg); err != nil {
		t.logger.WithFields(logrus.Fields{"user_id": msg.UserID, "error": err.Error()}).Warn("update dropped")
	}
}
