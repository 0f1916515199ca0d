package notifier

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/quiethours"
	"github.com/julianstephens/hush/internal/storage/sqlite"
)

type recordingSender struct {
	sent []string
	err  error
}

func (r *recordingSender) Send(_ context.Context, text string) error {
	r.sent = append(r.sent, text)
	return r.err
}

// Wednesday 3 January 2024, UTC.
func at(hour, minute int) func() time.Time {
	return func() time.Time { return time.Date(2024, 1, 3, hour, minute, 0, 0, time.UTC) }
}

func setupGateStore(t *testing.T, mutate func(*models.Settings)) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "hush.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	s := models.DefaultSettings()
	s.Enabled = true
	s.Mode = "auto"
	s.Timezone = "UTC"
	if mutate != nil {
		mutate(&s)
	}
	require.NoError(t, store.SaveSettings(s))
	return store
}

func TestGateMutesInsideWindow(t *testing.T) {
	store := setupGateStore(t, nil)
	sender := &recordingSender{}
	gate := NewGate(store, sender, WithClock(at(23, 0)))

	rec, err := gate.Deliver(context.Background(), Notification{App: "mail", Ticker: "New mail"})
	require.NoError(t, err)

	assert.True(t, rec.Muted)
	assert.False(t, rec.Delivered)
	assert.Equal(t, string(quiethours.ReasonWindow), rec.Reason)
	assert.Empty(t, sender.sent)

	history, err := store.RecentDeliveries(10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "mail", history[0].App)
	assert.True(t, history[0].Muted)
	assert.NotEmpty(t, history[0].ID)
}

func TestGateForwardsOutsideWindow(t *testing.T) {
	store := setupGateStore(t, nil)
	sender := &recordingSender{}
	gate := NewGate(store, sender, WithClock(at(12, 0)))

	rec, err := gate.Deliver(context.Background(), Notification{App: "mail", Ticker: "New mail", Body: []string{"", "from bob"}})
	require.NoError(t, err)

	assert.False(t, rec.Muted)
	assert.True(t, rec.Delivered)
	assert.Equal(t, string(quiethours.ReasonOutsideWindow), rec.Reason)
	assert.Equal(t, []string{"New mail\nfrom bob"}, sender.sent)
}

func TestGateUsesSettingsTimezone(t *testing.T) {
	// 12:00 UTC is 23:00 in Sydney (UTC+11 in January), a Wednesday there too.
	store := setupGateStore(t, func(s *models.Settings) { s.Timezone = "Australia/Sydney" })
	gate := NewGate(store, &recordingSender{}, WithClock(at(12, 0)))

	st, err := gate.Evaluate(Notification{App: "mail"})
	require.NoError(t, err)
	assert.True(t, st.Active)
	assert.Equal(t, 4, st.Day)
}

func TestGateOverrides(t *testing.T) {
	store := setupGateStore(t, nil)
	require.NoError(t, store.AddOverride(models.AppOverride{App: "pager", IgnoreQuietHours: true, Keywords: []string{"urgent"}}))
	require.NoError(t, store.AddOverride(models.AppOverride{App: "chat", IgnoreQuietHours: true}))

	tests := []struct {
		name       string
		n          Notification
		wantMuted  bool
		wantReason quiethours.Reason
	}{
		{name: "exempt app", n: Notification{App: "chat", Ticker: "hi"}, wantMuted: false, wantReason: quiethours.ReasonExempt},
		{name: "exempt without keyword", n: Notification{App: "pager", Ticker: "disk at 80%"}, wantMuted: false, wantReason: quiethours.ReasonExempt},
		{name: "keyword revokes exemption", n: Notification{App: "pager", Body: []string{"URGENT: db down"}}, wantMuted: true, wantReason: quiethours.ReasonKeyword},
		{name: "no override", n: Notification{App: "mail", Ticker: "hi"}, wantMuted: true, wantReason: quiethours.ReasonWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{}
			gate := NewGate(store, sender, WithClock(at(23, 30)))

			rec, err := gate.Deliver(context.Background(), tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMuted, rec.Muted)
			assert.Equal(t, string(tt.wantReason), rec.Reason)
			assert.Equal(t, !tt.wantMuted, len(sender.sent) == 1)
		})
	}
}

func TestGateDisabledForwardsEverything(t *testing.T) {
	store := setupGateStore(t, func(s *models.Settings) { s.Enabled = false })
	sender := &recordingSender{}
	gate := NewGate(store, sender, WithClock(at(23, 0)))

	rec, err := gate.Deliver(context.Background(), Notification{App: "mail", Ticker: "x"})
	require.NoError(t, err)
	assert.True(t, rec.Delivered)
	assert.Equal(t, string(quiethours.ReasonDisabled), rec.Reason)
}

func TestGateRecordsSendFailure(t *testing.T) {
	store := setupGateStore(t, nil)
	sender := &recordingSender{err: errors.New("tray not running")}
	gate := NewGate(store, sender, WithClock(at(12, 0)), WithRetry(3, 0))

	rec, err := gate.Deliver(context.Background(), Notification{App: "mail", Ticker: "x"})
	require.Error(t, err)
	assert.Len(t, sender.sent, 3)
	assert.False(t, rec.Delivered)
	assert.Equal(t, "tray not running", rec.Error)

	history, err := store.RecentDeliveries(1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "failed", history[0].Status())
}

func TestGateStopsRetryingOnCancel(t *testing.T) {
	store := setupGateStore(t, nil)
	sender := &recordingSender{err: errors.New("boom")}
	gate := NewGate(store, sender, WithClock(at(12, 0)), WithRetry(5, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gate.Deliver(ctx, Notification{App: "mail", Ticker: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sender.sent, 1)
}

func TestNotificationRender(t *testing.T) {
	n := Notification{Ticker: "t", Body: []string{"a", "", "b"}}
	assert.Equal(t, "t\na\nb", n.Render())
	assert.Equal(t, "", Notification{}.Render())
}

func TestForSettings(t *testing.T) {
	assert.IsType(t, &TraySender{}, ForSettings(models.Settings{}))
	s := ForSettings(models.Settings{NotifyURL: "generic://example.com"})
	require.IsType(t, &ShoutrrrSender{}, s)
	assert.Equal(t, "generic://example.com", s.(*ShoutrrrSender).URL)
}
