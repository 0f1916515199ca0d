package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/hush/internal/quiethours"
)

// AppOverride is a per-source quiet hours exemption.
type AppOverride struct {
	ID               string    `json:"id"`
	App              string    `json:"app"`
	IgnoreQuietHours bool      `json:"ignore_quiet_hours"`
	Keywords         []string  `json:"keywords,omitempty"` // a match revokes the exemption
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (o *AppOverride) Validate() error {
	if strings.TrimSpace(o.App) == "" {
		return fmt.Errorf("override app cannot be empty")
	}
	for _, kw := range o.Keywords {
		if strings.Contains(kw, ",") {
			return fmt.Errorf("keyword %q cannot contain a comma", kw)
		}
	}
	return nil
}

// ToPerAppOverride converts the stored override into its evaluation form.
func (o AppOverride) ToPerAppOverride() quiethours.PerAppOverride {
	return quiethours.PerAppOverride{
		IgnoreQuietHours: o.IgnoreQuietHours,
		IgnoreKeywords:   append([]string(nil), o.Keywords...),
	}
}

// JoinKeywords encodes keywords for a single text column.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ",")
}

// SplitKeywords decodes a keyword column, dropping blank entries.
func SplitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
