package telegram

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"relaybot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// API is the subset of *tele.Bot used by Client
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error)
	Respond(c *tele.Callback, resp ...*tele.CallbackResponse) error
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Client implements transport.Transport on telebot
type Client struct {
	api API
}

// NewClient wraps a telebot API
func NewClient(api API) *Client {
	return &Client{api: api}
}

// SendText sends plain text
func (c *Client) SendText(chatID int64, text string) error {
	if _, err := c.api.Send(tele.ChatID(chatID), text); err != nil {
		return &domain.DeliveryError{Op: "send", ChatID: chatID, Err: err}
	}
	return nil
}

// SendHTML sends text with HTML parse mode
func (c *Client) SendHTML(chatID int64, text string) error {
	if _, err := c.api.Send(tele.ChatID(chatID), text, tele.ModeHTML); err != nil {
		return &domain.DeliveryError{Op: "send html", ChatID: chatID, Err: err}
	}
	return nil
}

// PromptLanguage sends text with the language selection keyboard
func (c *Client) PromptLanguage(chatID int64, text string) error {
	if _, err := c.api.Send(tele.ChatID(chatID), text, LanguageKeyboard()); err != nil {
		return &domain.DeliveryError{Op: "prompt language", ChatID: chatID, Err: err}
	}
	return nil
}

// Forward relays a message preserving its media
func (c *Client) Forward(toChatID, fromChatID int64, messageID int) error {
	msg := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: fromChatID}
	if _, err := c.api.Forward(tele.ChatID(toChatID), msg); err != nil {
		return &domain.DeliveryError{Op: "forward", ChatID: toChatID, Err: err}
	}
	return nil
}

// AnswerCallback acknowledges a callback query
func (c *Client) AnswerCallback(callbackID string) error {
	if err := c.api.Respond(&tele.Callback{ID: callbackID}); err != nil {
		return &domain.DeliveryError{Op: "answer callback", Err: err}
	}
	return nil
}

// EditText replaces the text of a sent message
func (c *Client) EditText(chatID int64, messageID int, text string) error {
	msg := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	if _, err := c.api.Edit(msg, text); err != nil {
		if IsNotModified(err) {
			return nil
		}
		return &domain.DeliveryError{Op: "edit", ChatID: chatID, Err: err}
	}
	return nil
}

// LanguageKeyboard returns the inline keyboard with two languages per row.
// Buttons carry raw "lang_<code>" callback data without a telebot unique prefix.
func LanguageKeyboard() *tele.ReplyMarkup {
	var rows [][]tele.InlineButton
	var row []tele.InlineButton

	for _, lang := range domain.Languages {
		row = append(row, tele.InlineButton{Text: lang.Label(), Data: lang.CallbackData()})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

const conflictMessage = "terminated by other getUpdates request"

// IsConflict reports whether err means another poller uses the same token
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusConflict
	}
	// telebot returns untyped errors for descriptions it does not know
	return strings.Contains(err.Error(), conflictMessage)
}

// IsNotModified reports whether an edit left the message unchanged
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
