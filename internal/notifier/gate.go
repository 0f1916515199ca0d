package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hush/internal/constants"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/storage"
	"github.com/julianstephens/hush/internal/utils"
)

// Notification is an incoming message from one source application.
type Notification struct {
	App    string
	Ticker string
	Body   []string
	// UserInteractive is true while the user is actively using the device.
	UserInteractive bool
}

// Text returns the notification's visible text for evaluation.
func (n Notification) Text() quiethours.NotificationText {
	return quiethours.NotificationText{Ticker: n.Ticker, Body: n.Body}
}

// Render flattens the notification into a single message.
func (n Notification) Render() string {
	var parts []string
	if n.Ticker != "" {
		parts = append(parts, n.Ticker)
	}
	for _, b := range n.Body {
		if b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, "\n")
}

// Gate decides per notification whether quiet hours mute it, forwards the
// ones that pass, and records every verdict in the delivery history.
type Gate struct {
	store  storage.Provider
	sender Sender
	now    func() time.Time

	retries    int
	retryDelay time.Duration
}

type GateOption func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

// WithRetry sets how often a failed send is attempted and the pause between
// attempts.
func WithRetry(attempts int, delay time.Duration) GateOption {
	return func(g *Gate) {
		g.retries = attempts
		g.retryDelay = delay
	}
}

func NewGate(store storage.Provider, sender Sender, opts ...GateOption) *Gate {
	g := &Gate{
		store:      store,
		sender:     sender,
		now:        time.Now,
		retries:    constants.NotifyMaxRetries,
		retryDelay: constants.NotifyRetryDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate returns the verdict for n without sending or recording anything.
func (g *Gate) Evaluate(n Notification) (quiethours.Status, error) {
	settings, err := g.store.GetSettings()
	if err != nil {
		return quiethours.Status{}, fmt.Errorf("failed to get settings: %w", err)
	}
	cfg, err := settings.ToConfig()
	if err != nil {
		return quiethours.Status{}, fmt.Errorf("invalid quiet hours settings: %w", err)
	}

	now, err := utils.InTimezone(g.now(), settings.Timezone)
	if err != nil {
		return quiethours.Status{}, err
	}

	override, err := g.store.GetOverride(n.App)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return quiethours.Status{}, fmt.Errorf("failed to get override for %s: %w", n.App, err)
	}

	st := quiethours.EvaluateNotification(cfg, override.ToPerAppOverride(), n.Text(), now, n.UserInteractive)
	logger.Verdict(n.App, st)
	return st, nil
}

// Deliver evaluates n, sends it unless muted, and records the outcome. A send
// failure is recorded and returned.
func (g *Gate) Deliver(ctx context.Context, n Notification) (models.DeliveryRecord, error) {
	st, err := g.Evaluate(n)
	if err != nil {
		return models.DeliveryRecord{}, err
	}

	rec := models.DeliveryRecord{
		App:       n.App,
		Text:      n.Render(),
		Muted:     st.Active,
		Reason:    string(st.Reason),
		CreatedAt: g.now(),
	}

	var sendErr error
	if st.Active {
		logger.Info("Notification muted", "app", n.App, "reason", st.Reason)
	} else {
		sendErr = g.send(ctx, rec.Text)
		if sendErr != nil {
			rec.Error = sendErr.Error()
			logger.Warn("Notification delivery failed", "app", n.App, "error", sendErr)
		} else {
			rec.Delivered = true
			logger.Debug("Notification delivered", "app", n.App, "reason", st.Reason)
		}
	}

	if err := g.store.RecordDelivery(rec); err != nil {
		return rec, fmt.Errorf("failed to record delivery: %w", err)
	}
	return rec, sendErr
}

func (g *Gate) send(ctx context.Context, text string) error {
	attempts := g.retries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(g.retryDelay):
			}
		}
		if err = g.sender.Send(ctx, text); err == nil {
			return nil
		}
		logger.Debug("Send attempt failed", "attempt", i+1, "error", err)
	}
	return err
}
