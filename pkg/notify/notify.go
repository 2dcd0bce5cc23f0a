package notify

import (
	"context"
	"fmt"
	"time"

	"candlescan/pkg/logger"
)

// AlertMessage carries the data needed to announce a signal transition.
type AlertMessage struct {
	Symbol     string
	Name       string
	SignalType string
	Price      string
	Reason     string
	At         time.Time
}

// Subject renders the mail subject line for the alert.
func (m AlertMessage) Subject() string {
	return fmt.Sprintf("%s signal: %s @ %s", m.SignalType, m.Symbol, m.Price)
}

// Body renders a plain-text description of the alert.
func (m AlertMessage) Body() string {
	return fmt.Sprintf("Signal: %s\nStock: %s (%s)\nTrigger Price: %s\nReason: %s\nTime: %s\n",
		m.SignalType, m.Name, m.Symbol, m.Price, m.Reason, m.At.Format(time.RFC1123))
}

// Notifier delivers alert messages to subscribed recipients.
type Notifier interface {
	Send(ctx context.Context, msg AlertMessage, recipients []string) error
}

type fanout struct {
	log      *logger.Logger
	channels []Notifier
}

// NewFanout composes several notifiers into one. A failing channel is logged
// and does not block the others.
func NewFanout(log *logger.Logger, channels ...Notifier) Notifier {
	return &fanout{log: log, channels: channels}
}

func (f *fanout) Send(ctx context.Context, msg AlertMessage, recipients []string) error {
	for _, ch := range f.channels {
		if err := ch.Send(ctx, msg, recipients); err != nil {
			f.log.ErrorContext(ctx, "Failed to deliver alert notification",
				logger.ErrorField(err),
				logger.StringField("symbol", msg.Symbol),
			)
		}
	}
	return nil
}

// Noop is used when no notification channel is configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, msg AlertMessage, recipients []string) error {
	return nil
}
