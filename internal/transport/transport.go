package transport

// Transport delivers outbound messages to the chat platform.
// Every method may fail with a *domain.DeliveryError.
type Transport interface {
	SendText(chatID int64, text string) error
	SendHTML(chatID int64, text string) error
	PromptLanguage(chatID int64, text string) error
	Forward(toChatID, fromChatID int64, messageID int) error
	AnswerCallback(callbackID string) error
	EditText(chatID int64, messageID int, text string) error
}
