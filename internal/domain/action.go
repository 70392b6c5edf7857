package domain

// Action is an outbound step produced by the router. Actions of one event are
// executed in order because the operator reads them as a single thread.
type Action interface {
	action()
}

// ReplyToUser sends text to a user chat. When MustDeliver is set a failure is
// reported to the operator and the remaining actions are skipped.
type ReplyToUser struct {
	UserID      int64
	Text        string
	MustDeliver bool
}

// PromptLanguage sends text with the language selection keyboard
type PromptLanguage struct {
	UserID int64
	Text   string
}

// ForwardToOperator relays the original message, preserving its media
type ForwardToOperator struct {
	FromChatID int64
	MessageID  int
}

// NotifyOperator sends a freshly composed message to the operator
type NotifyOperator struct {
	Text string
	HTML bool
}

// AnswerCallback acknowledges a callback query
type AnswerCallback struct {
	CallbackID string
}

// EditMessage replaces the text of an already sent message
type EditMessage struct {
	ChatID    int64
	MessageID int
	Text      string
}

func (ReplyToUser) action()       {}
func (PromptLanguage) action()    {}
func (ForwardToOperator) action() {}
func (NotifyOperator) action()    {}
func (AnswerCallback) action()    {}
func (EditMessage) action()       {}
