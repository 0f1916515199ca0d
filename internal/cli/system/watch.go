package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/storage/sqlite"
	"github.com/julianstephens/hush/internal/tui"
)

type WatchCmd struct {
	NoAltScreen bool `help:"Render inline instead of in the alternate screen."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	opts := []tui.Option{tui.WithClock(ctx.Clock)}

	// PostgreSQL has no file to watch; the model polls on every tick instead.
	if _, ok := ctx.Store.(*sqlite.Store); ok {
		w, err := tui.WatchFile(ctx.Store.GetConfigPath())
		if err != nil {
			logger.Warn("File watcher unavailable, polling settings instead", "error", err)
		} else {
			defer w.Close()
			opts = append(opts, tui.WithWatcher(w))
		}
	}

	var programOpts []tea.ProgramOption
	if !c.NoAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, opts...), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch view failed: %w", err)
	}
	return nil
}
