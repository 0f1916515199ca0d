package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/constants"
)

type HistoryCmd struct {
	Limit int    `help:"Number of records to show." default:"20"`
	App   string `help:"Only show notifications from this app."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	limit := c.Limit
	if limit <= 0 {
		limit = constants.DefaultHistoryLimit
	}

	records, err := ctx.Store.RecentDeliveries(limit)
	if err != nil {
		return fmt.Errorf("failed to get delivery history: %w", err)
	}

	shown := 0
	for _, r := range records {
		if c.App != "" && !strings.EqualFold(r.App, c.App) {
			continue
		}
		line := fmt.Sprintf("%s  %-7s %-14s %-15s %s",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Status(), r.App, r.Reason, firstLine(r.Text))
		ctx.Println(strings.TrimRight(line, " "))
		if r.Error != "" {
			ctx.Printf("    error: %s\n", r.Error)
		}
		shown++
	}

	if shown == 0 {
		ctx.Println("No notifications recorded.")
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
