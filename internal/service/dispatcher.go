package service

import (
	"fmt"

	"relaybot/internal/domain"
	"relaybot/internal/transport"

	"go.uber.org/zap"
)

// Dispatcher executes actions through the transport.
// Delivery is at most once: a failed send is logged and never retried.
type Dispatcher struct {
	transport  transport.Transport
	operatorID int64
	logger     *zap.Logger
}

// NewDispatcher creates a dispatcher delivering operator actions to operatorID
func NewDispatcher(t transport.Transport, operatorID int64, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		transport:  t,
		operatorID: operatorID,
		logger:     logger,
	}
}

// Dispatch executes actions in order. A failed ReplyToUser marked MustDeliver
// is reported to the operator and stops the sequence; any other failure is
// only logged.
func (d *Dispatcher) Dispatch(actions []domain.Action) {
	for _, action := range actions {
		err := d.execute(action)
		if err == nil {
			continue
		}

		d.logger.Warn("Failed to deliver action",
			zap.String("action", actionName(action)),
			zap.Error(err),
		)

		if reply, ok := action.(domain.ReplyToUser); ok && reply.MustDeliver {
			d.notify(formatError(err))
			return
		}
	}
}

// ReportFault sends a diagnostic of an unexpected failure to the operator.
// A failure to send it is logged and dropped.
func (d *Dispatcher) ReportFault(err error, traceID string) {
	if sendErr := d.transport.SendHTML(d.operatorID, formatFault(err, traceID)); sendErr != nil {
		d.logger.Warn("Failed to report fault to operator", zap.Error(sendErr))
	}
}

func (d *Dispatcher) notify(text string) {
	if err := d.transport.SendText(d.operatorID, text); err != nil {
		d.logger.Warn("Failed to notify operator", zap.Error(err))
	}
}

func (d *Dispatcher) execute(action domain.Action) error {
	switch a := action.(type) {
	case domain.ReplyToUser:
		return d.transport.SendText(a.UserID, a.Text)
	case domain.PromptLanguage:
		return d.transport.PromptLanguage(a.UserID, a.Text)
	case domain.ForwardToOperator:
		return d.transport.Forward(d.operatorID, a.FromChatID, a.MessageID)
	case domain.NotifyOperator:
		if a.HTML {
			return d.transport.SendHTML(d.operatorID, a.Text)
		}
		return d.transport.SendText(d.operatorID, a.Text)
	case domain.AnswerCallback:
		return d.transport.AnswerCallback(a.CallbackID)
	case domain.EditMessage:
		return d.transport.EditText(a.ChatID, a.MessageID, a.Text)
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
}

func actionName(action domain.Action) string {
	switch action.(type) {
	case domain.ReplyToUser:
		return "reply_to_user"
	case domain.PromptLanguage:
		return "prompt_language"
	case domain.ForwardToOperator:
		return "forward_to_operator"
	case domain.NotifyOperator:
		return "notify_operator"
	case domain.AnswerCallback:
		return "answer_callback"
	case domain.EditMessage:
		return "edit_message"
	default:
		return fmt.Sprintf("%T", action)
	}
}
