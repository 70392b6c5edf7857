package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"
)

// DefaultRetryDelay is the pause after a failed getUpdates call
const DefaultRetryDelay = 3 * time.Second

// ErrorHandler receives poll failures. The poller passes a nil context.
type ErrorHandler func(error, tele.Context)

// Poller long-polls getUpdates like tele.LongPoller but hands every failure to
// OnError instead of dropping it when the bot is not verbose.
type Poller struct {
	Timeout      time.Duration
	RetryDelay   time.Duration
	LastUpdateID int
	OnError      ErrorHandler
}

// NewPoller creates a poller with the given long-poll timeout
func NewPoller(timeout time.Duration, onError ErrorHandler) *Poller {
	return &Poller{
		Timeout:    timeout,
		RetryDelay: DefaultRetryDelay,
		OnError:    onError,
	}
}

// Poll implements tele.Poller
func (p *Poller) Poll(b *tele.Bot, dest chan tele.Update, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		updates, err := p.fetch(b)
		if err != nil {
			if p.OnError != nil {
				p.OnError(err, nil)
			}
			select {
			case <-stop:
				return
			case <-time.After(p.RetryDelay):
			}
			continue
		}

		for _, update := range updates {
			p.LastUpdateID = update.ID
			select {
			case dest <- update:
			case <-stop:
				return
			}
		}
	}
}

func (p *Poller) fetch(b *tele.Bot) ([]tele.Update, error) {
	params := map[string]string{
		"offset":  strconv.Itoa(p.LastUpdateID + 1),
		"timeout": strconv.Itoa(int(p.Timeout / time.Second)),
	}

	data, err := b.Raw("getUpdates", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []tele.Update `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return resp.Result, nil
}
