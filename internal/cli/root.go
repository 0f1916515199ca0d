package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/hush/internal/keyring"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/notifier"
	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/storage"
	"github.com/julianstephens/hush/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Now and Stdout default to time.Now and os.Stdout.
	Now    func() time.Time
	Stdout io.Writer
	// Sender overrides the backend chosen from settings.
	Sender notifier.Sender
	// Prompt answers Confirm questions instead of the terminal form.
	Prompt func(title string) (bool, error)
}

func (c *Context) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Context) Out() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out(), args...)
}

// LoadConfig reads settings and converts them into an evaluation snapshot
// together with the configured location.
func (c *Context) LoadConfig() (models.Settings, quiethours.Config, *time.Location, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, quiethours.Config{}, nil, fmt.Errorf("failed to get settings: %w", err)
	}
	cfg, err := settings.ToConfig()
	if err != nil {
		return settings, quiethours.Config{}, nil, fmt.Errorf("invalid quiet hours settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return settings, cfg, nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return settings, cfg, loc, nil
}

// EvalTime returns the instant to evaluate at: at when given, now otherwise,
// in loc.
func (c *Context) EvalTime(at string, loc *time.Location) (time.Time, error) {
	now := c.Clock().In(loc)
	if strings.TrimSpace(at) == "" {
		return now, nil
	}
	return utils.ParseAt(at, now, loc)
}

// ResolveSender returns the delivery backend: the context override, the
// notify_url setting, a URL stored in the keyring, or the tray app.
func (c *Context) ResolveSender(settings models.Settings) notifier.Sender {
	if c.Sender != nil {
		return c.Sender
	}
	if settings.NotifyURL == "" {
		url, err := keyring.Get(keyring.SecretNotifyURL)
		switch {
		case err == nil:
			settings.NotifyURL = url
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup for notify URL failed", "error", err)
		}
	}
	return notifier.ForSettings(settings)
}
