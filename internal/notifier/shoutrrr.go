package notifier

import (
	"context"

	"github.com/nicholas-fedor/shoutrrr"
)

var shoutrrrSend = shoutrrr.Send

// ShoutrrrSender dispatches through any Shoutrrr service URL
// (ntfy://, gotify://, discord://, generic://, ...).
type ShoutrrrSender struct {
	URL string
}

func NewShoutrrrSender(url string) *ShoutrrrSender {
	return &ShoutrrrSender{URL: url}
}

func (s *ShoutrrrSender) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return shoutrrrSend(s.URL, text)
}
