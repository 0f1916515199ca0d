package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks a yes/no question before a destructive action. It answers
// yes without asking when assumeYes is set or stdin is not a terminal, so
// scripts are never blocked. Context.Prompt replaces the terminal form.
func (c *Context) Confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.Prompt != nil {
		return c.Prompt(title)
	}
	if !stdinIsTerminal() {
		return true, nil
	}
	return confirmForm(title)
}

func confirmForm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return ok, nil
}
