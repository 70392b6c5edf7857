package handler

import (
	"strings"
	"unicode"

	"relaybot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil || callback.Sender == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	event := callbackEvent(callback)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", event.Data),
		zap.String("data_raw", callback.Data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", callback.Sender.ID),
	)

	return h.process(c, event)
}

func callbackEvent(callback *tele.Callback) domain.CallbackQuery {
	// Buttons created with a telebot unique arrive split into Unique and Data
	data := cleanCallbackData(callback.Data)
	if callback.Unique != "" {
		data = callback.Unique
	}

	event := domain.CallbackQuery{
		Sender: senderOf(callback.Sender),
		ID:     callback.ID,
		Data:   data,
	}
	if msg := callback.Message; msg != nil && msg.Chat != nil {
		event.ChatID = msg.Chat.ID
		event.MessageID = msg.ID
	}
	return event
}
