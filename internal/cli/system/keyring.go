package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/hush/internal/cli"
	"github.com/julianstephens/hush/internal/keyring"
	"github.com/julianstephens/hush/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show a stored secret with credentials masked."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
}

// SecretFlag selects which keyring entry a command works on.
type SecretFlag struct {
	Secret string `enum:"db,notify-url" default:"db" help:"Which secret: db (PostgreSQL connection string) or notify-url (Shoutrrr URL)."`
}

func (f SecretFlag) name() string {
	if f.Secret == "notify-url" {
		return keyring.SecretNotifyURL
	}
	return keyring.SecretConnectionString
}

func (f SecretFlag) label() string {
	if f.Secret == "notify-url" {
		return "Notify URL"
	}
	return "Connection string"
}

// KeyringSetCmd stores database credentials or a notification URL in the OS keyring
type KeyringSetCmd struct {
	SecretFlag
	Value string `arg:"" help:"Secret value to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if cmd.Secret == "notify-url" {
		if !strings.Contains(cmd.Value, "://") {
			return errors.New("notify URL must be a Shoutrrr service URL such as ntfy://ntfy.sh/topic")
		}
	} else {
		if !postgres.IsConnString(cmd.Value) && !strings.Contains(cmd.Value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(cmd.Value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
			ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(cmd.name(), cmd.Value); err != nil {
		return err
	}

	ctx.Printf("✓ %s stored successfully in OS keyring\n", cmd.label())
	if cmd.Secret == "db" {
		ctx.Println("  You can now use hush without the --config flag")
	}
	return nil
}

// KeyringGetCmd retrieves a secret from the OS keyring
type KeyringGetCmd struct {
	SecretFlag
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	v, err := keyring.Get(cmd.name())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'hush keyring set' to store one", strings.ToLower(cmd.label()))
		}
		return fmt.Errorf("failed to retrieve %s from keyring: %w", strings.ToLower(cmd.label()), err)
	}

	ctx.Printf("%s retrieved from keyring:\n", cmd.label())
	ctx.Println(maskPassword(v))
	return nil
}

// KeyringDeleteCmd removes a secret from the OS keyring
type KeyringDeleteCmd struct {
	SecretFlag
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(cmd.name()); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", strings.ToLower(cmd.label()))
		}
		return err
	}
	ctx.Printf("✓ %s deleted from OS keyring\n", cmd.label())
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	for _, f := range []SecretFlag{{Secret: "db"}, {Secret: "notify-url"}} {
		_, err := keyring.Get(f.name())
		switch {
		case err == nil:
			ctx.Printf("✓ %s is stored in keyring\n", f.label())
		case errors.Is(err, keyring.ErrNotFound):
			ctx.Printf("ℹ No %s stored in keyring\n", strings.ToLower(f.label()))
		}
	}
	return nil
}

// maskPassword masks credentials in connection strings and service URLs for display
func maskPassword(connStr string) string {
	if idx := strings.Index(connStr, "://"); idx != -1 {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		rest := connStr[idx+3:]
		authority := rest
		if end := strings.IndexAny(rest, "/?#"); end != -1 {
			authority = rest[:end]
		}
		host := rest[strings.LastIndex(authority, "@")+1:]
		if _, hasPassword := u.User.Password(); hasPassword {
			return u.Scheme + "://" + u.User.Username() + ":****@" + host
		}
		// Shoutrrr URLs carry tokens in the user part
		if !postgres.IsConnString(connStr) {
			return u.Scheme + "://****@" + host
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		masked := make([]string, 0, len(parts))
		for _, part := range parts {
			if strings.HasPrefix(part, "password=") {
				masked = append(masked, "password=****")
			} else {
				masked = append(masked, part)
			}
		}
		return strings.Join(masked, " ")
	}
	return connStr
}
