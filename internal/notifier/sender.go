// Package notifier forwards notifications that quiet hours allow through to a
// delivery backend and records every verdict.
package notifier

import (
	"context"
	"strings"

	"github.com/julianstephens/hush/internal/models"
)

// Sender delivers one rendered notification.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, text string) error

func (f SenderFunc) Send(ctx context.Context, text string) error {
	return f(ctx, text)
}

// ForSettings picks the backend configured in settings: a Shoutrrr URL when
// one is set, the local tray app otherwise.
func ForSettings(s models.Settings) Sender {
	if url := strings.TrimSpace(s.NotifyURL); url != "" {
		return NewShoutrrrSender(url)
	}
	return NewTraySender()
}
