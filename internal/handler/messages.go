package handler

import (
	"strings"
	"unicode"

	"relaybot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Sender == nil {
		return nil
	}
	return h.process(c, domain.StartCommand{Sender: senderOf(msg.Sender), ChatID: msg.Chat.ID})
}

// handleText handles plain text messages
func (h *Handler) handleText(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Sender == nil {
		return nil
	}

	// Ignore unregistered commands
	if strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
		return nil
	}

	return h.process(c, textEvent(msg))
}

// handleVoice handles voice and audio messages
func (h *Handler) handleVoice(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Sender == nil {
		return nil
	}
	return h.process(c, voiceEvent(msg))
}

// handleAdmin handles operator commands
func (h *Handler) handleAdmin(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Sender == nil {
		return nil
	}
	return h.process(c, adminEvent(msg))
}

func senderOf(u *tele.User) domain.Sender {
	return domain.Sender{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

func textEvent(msg *tele.Message) domain.TextMessage {
	return domain.TextMessage{
		Sender:    senderOf(msg.Sender),
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
	}
}

func voiceEvent(msg *tele.Message) domain.VoiceMessage {
	return domain.VoiceMessage{
		Sender:    senderOf(msg.Sender),
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}
}

func adminEvent(msg *tele.Message) domain.AdminCommand {
	name, payload := splitCommand(msg.Text)
	return domain.AdminCommand{
		Sender:  senderOf(msg.Sender),
		ChatID:  msg.Chat.ID,
		Name:    name,
		Payload: payload,
	}
}

// splitCommand separates "/cmd" from the rest. Unlike telebot's Payload it
// keeps line breaks of multi-line replies.
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}
