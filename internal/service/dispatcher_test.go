package service

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"relaybot/internal/domain"
	"relaybot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDispatcher_DispatchInOrder(t *testing.T) {
	transport := new(testutil.MockTransport)

	var order []string
	record := func(name string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, name) }
	}

	transport.On("Forward", testutil.OperatorID, int64(7), 99).Return(nil).Run(record("forward"))
	transport.On("SendText", testutil.OperatorID, "voice info").Return(nil).Run(record("notify"))
	transport.On("SendText", int64(7), "received").Return(nil).Run(record("reply"))

	dispatcher := NewDispatcher(transport, testutil.OperatorID, testutil.NewTestLogger())

	dispatcher.Dispatch([]domain.Action{
		domain.ForwardToOperator{FromChatID: 7, MessageID: 99},
		domain.NotifyOperator{Text: "voice info"},
		domain.ReplyToUser{UserID: 7, Text: "received"},
	})

	assert.Equal(t, []string{"forward", "notify", "reply"}, order)
	transport.AssertExpectations(t)
}

func TestDispatcher_BestEffortFailureContinues(t *testing.T) {
	transport := new(testutil.MockTransport)
	transport.On("SendText", int64(555), "notice").
		Return(&domain.DeliveryError{Op: "send", ChatID: 555, Err: errors.New("bot was blocked by the user")})
	transport.On("SendText", testutil.OperatorID, "blocked").Return(nil)

	dispatcher := NewDispatcher(transport, testutil.OperatorID, testutil.NewTestLogger())

	dispatcher.Dispatch([]domain.Action{
		domain.ReplyToUser{UserID: 555, Text: "notice"},
		domain.NotifyOperator{Text: "blocked"},
	})

	transport.AssertExpectations(t)
}

func TestDispatcher_MustDeliverFailureReported(t *testing.T) {
	transport := new(testutil.MockTransport)
	transport.On("SendText", int64(12345), "prefix hello").
		Return(&domain.DeliveryError{Op: "send", ChatID: 12345, Err: errors.New("chat not found")})
	transport.On("SendText", testutil.OperatorID, "❌ Xəta: chat not found").Return(nil)

	dispatcher := NewDispatcher(transport, testutil.OperatorID, testutil.NewTestLogger())

	dispatcher.Dispatch([]domain.Action{
		domain.ReplyToUser{UserID: 12345, Text: "prefix hello", MustDeliver: true},
		domain.NotifyOperator{Text: "✅ Cavab göndərildi."},
	})

	transport.AssertExpectations(t)
	transport.AssertNotCalled(t, "SendText", testutil.OperatorID, "✅ Cavab göndərildi.")
}

func TestDispatcher_AllActionKinds(t *testing.T) {
	transport := new(testutil.MockTransport)
	transport.On("AnswerCallback", "cb").Return(nil)
	transport.On("EditText", int64(5), 77, "confirmed").Return(nil)
	transport.On("PromptLanguage", int64(5), "welcome").Return(nil)
	transport.On("SendHTML", testutil.OperatorID, "<b>x</b>").Return(nil)

	dispatcher := NewDispatcher(transport, testutil.OperatorID, testutil.NewTestLogger())

	dispatcher.Dispatch([]domain.Action{
		domain.AnswerCallback{CallbackID: "cb"},
		domain.EditMessage{ChatID: 5, MessageID: 77, Text: "confirmed"},
		domain.PromptLanguage{UserID: 5, Text: "welcome"},
		domain.NotifyOperator{Text: "<b>x</b>", HTML: true},
	})

	transport.AssertExpectations(t)
}

func TestDispatcher_ReportFault(t *testing.T) {
	transport := new(testutil.MockTransport)
	transport.On("SendHTML", testutil.OperatorID, mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "❌ Xəta:\n<pre>") &&
			strings.Contains(text, "trace abc") &&
			strings.Contains(text, "index out of range &lt;3&gt;") &&
			strings.Contains(text, "goroutine 1") &&
			strings.HasSuffix(text, "</pre>")
	})).Return(errors.New("network down"))

	dispatcher := NewDispatcher(transport, testutil.OperatorID, testutil.NewTestLogger())

	fault := &domain.FaultError{Err: errors.New("index out of range <3>"), Stack: []byte("goroutine 1 [running]")}

	// The send failure is swallowed
	dispatcher.ReportFault(fault, "abc")

	transport.AssertExpectations(t)
}

func TestFormatFault_Truncates(t *testing.T) {
	long := strings.Repeat("<&>", 5000)

	text := formatFault(errors.New(long), "")

	assert.LessOrEqual(t, utf8.RuneCountInString(text), maxMessageLength)
	assert.True(t, strings.HasSuffix(text, "</pre>"))
}

func TestFormatError_UnwrapsDelivery(t *testing.T) {
	err := &domain.DeliveryError{Op: "send", ChatID: 1, Err: errors.New("Forbidden")}
	assert.Equal(t, "❌ Xəta: Forbidden", formatError(err))
	assert.Equal(t, "❌ Xəta: plain", formatError(errors.New("plain")))
}
