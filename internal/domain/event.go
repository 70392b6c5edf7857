package domain

import "strings"

// Sender identifies the chat user who produced an event
type Sender struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// FullName joins first and last name
func (s Sender) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Event is an inbound update already classified by the transport adapter.
// Implementations: StartCommand, TextMessage, VoiceMessage, CallbackQuery, AdminCommand.
type Event interface {
	From() Sender
	Kind() string
}

// StartCommand is the /start command
type StartCommand struct {
	Sender Sender
	ChatID int64
}

// TextMessage is a plain text message
type TextMessage struct {
	Sender    Sender
	ChatID    int64
	MessageID int
	Text      string
}

// VoiceMessage is a voice or audio message; MessageID is needed for forwarding
type VoiceMessage struct {
	Sender    Sender
	ChatID    int64
	MessageID int
}

// CallbackQuery is an inline keyboard button press
type CallbackQuery struct {
	Sender Sender
	ID     string
	Data   string
	// ChatID and MessageID point at the message carrying the keyboard, zero if absent
	ChatID    int64
	MessageID int
}

// AdminCommand is an operator command such as /reply, /block or /unblock
type AdminCommand struct {
	Sender  Sender
	ChatID  int64
	Name    string
	Payload string
}

func (e StartCommand) From() Sender  { return e.Sender }
func (e TextMessage) From() Sender   { return e.Sender }
func (e VoiceMessage) From() Sender  { return e.Sender }
func (e CallbackQuery) From() Sender { return e.Sender }
func (e AdminCommand) From() Sender  { return e.Sender }

func (StartCommand) Kind() string  { return "start" }
func (TextMessage) Kind() string   { return "text" }
func (VoiceMessage) Kind() string  { return "voice" }
func (CallbackQuery) Kind() string { return "callback" }
func (AdminCommand) Kind() string  { return "admin_command" }
