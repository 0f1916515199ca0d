package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hush/internal/constants"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/models"
	"github.com/julianstephens/hush/internal/storage"
	"github.com/julianstephens/hush/internal/utils"
)

type tickMsg time.Time

type settingsChangedMsg struct{}

type watcherClosedMsg struct{}

// Model is the live quiet hours view behind "hush watch".
type Model struct {
	store   storage.Provider
	now     func() time.Time
	watcher *Watcher

	keys KeyMap
	help help.Model

	settings    models.Settings
	view        StatusView
	interactive bool
	err         error
	quitting    bool
	width       int

	// set while the settings editor is open
	form     *huh.Form
	formData *settingsForm
	formErr  string
}

type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithWatcher reloads settings on file changes. Without one the model
// re-reads settings on every tick.
func WithWatcher(w *Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

func NewModel(store storage.Provider, opts ...Option) Model {
	m := Model{
		store: store,
		now:   time.Now,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.reload()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(constants.WatchTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return watcherClosedMsg{}
		}
		return settingsChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForChange())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.watcher == nil {
			m.reload()
		} else {
			m.refresh()
		}
		return m, tick()

	case settingsChangedMsg:
		logger.Debug("Settings changed on disk, reloading")
		m.reload()
		return m, m.waitForChange()

	case watcherClosedMsg:
		m.watcher = nil
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Edit):
			return m, m.openEditor()
		case key.Matches(msg, m.keys.ToggleMode):
			m.cycleMode()
		case key.Matches(msg, m.keys.ToggleInteractive):
			m.interactive = !m.interactive
			m.refresh()
		case key.Matches(msg, m.keys.Reload):
			m.reload()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) openEditor() tea.Cmd {
	m.formData = newSettingsForm(m.settings)
	m.form = newSettingsEditor(m.formData)
	m.formErr = ""
	return m.form.Init()
}

func (m *Model) closeEditor() {
	m.form = nil
	m.formData = nil
	m.formErr = ""
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeEditor()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveEditor(); err != nil {
			// stay in the form so the values can be corrected
			m.formErr = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.closeEditor()
	case huh.StateAborted:
		m.closeEditor()
	}
	return m, cmd
}

func (m *Model) saveEditor() error {
	s := m.formData.apply(m.settings)
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if _, err := utils.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
	}
	if err := m.store.SaveSettings(s); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	logger.Info("Quiet hours settings updated",
		"mode", s.Mode,
		"weekday", s.WeekdayStart+"-"+s.WeekdayEnd,
		"weekend", s.WeekendStart+"-"+s.WeekendEnd,
		"days", s.ActiveDays)
	m.reload()
	return nil
}

// reload re-reads settings from the store and re-evaluates.
func (m *Model) reload() {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.err = fmt.Errorf("failed to load settings: %w", err)
		return
	}
	m.settings = settings
	m.err = nil
	m.refresh()
}

// refresh re-evaluates the current settings at the current time.
func (m *Model) refresh() {
	cfg, err := m.settings.ToConfig()
	if err != nil {
		m.err = fmt.Errorf("invalid settings: %w", err)
		return
	}
	now, err := utils.InTimezone(m.now(), m.settings.Timezone)
	if err != nil {
		m.err = err
		return
	}
	m.view = NewStatusView(cfg, now, m.interactive)
}

func (m *Model) cycleMode() {
	next := m.view.Config.Mode.Next()
	m.settings.Mode = next.String()
	if err := m.store.SaveSettings(m.settings); err != nil {
		m.err = fmt.Errorf("failed to save mode: %w", err)
		return
	}
	logger.Info("Quiet hours mode changed", "mode", next)
	m.reload()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.form != nil {
		b.WriteString(titleStyle.Render("Edit quiet hours"))
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
		b.WriteString("\n")
		if m.formErr != "" {
			b.WriteString(dangerStyle.Render(m.formErr))
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.UnsetWidth().Render("esc cancel"))
		return docStyle.Render(b.String())
	}

	b.WriteString(RenderStatus(m.view))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(dangerStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}
