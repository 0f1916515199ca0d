package system

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/notifier"
	"github.com/julianstephens/hush/internal/storage/sqlite"
)

type captureSender struct {
	sent []string
	err  error
}

func (c *captureSender) Send(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, text)
	return nil
}

var _ notifier.Sender = (*captureSender)(nil)

// setupTestDB returns an initialized store with quiet hours enabled in UTC
// and a clock fixed at Wednesday 10 January 2024, 23:30 UTC.
func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, *captureSender) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	s := models.DefaultSettings()
	s.Enabled = true
	s.Timezone = "UTC"
	if err := store.SaveSettings(s); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	out := &bytes.Buffer{}
	sender := &captureSender{}
	ctx := &cli.Context{
		Store:  store,
		Stdout: out,
		Sender: sender,
		Now:    func() time.Time { return time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC) },
	}
	return ctx, out, sender
}

func setClock(ctx *cli.Context, hour, minute int) {
	ctx.Now = func() time.Time { return time.Date(2024, 1, 10, hour, minute, 0, 0, time.UTC) }
}
