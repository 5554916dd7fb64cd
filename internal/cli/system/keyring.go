package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/export"
	"github.com/julianstephens/timegrid/internal/keyring"
)

// KeyringSetCmd stores the export connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string for exports."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !export.IsPostgres(cmd.ConnectionString) {
		return errors.New("connection string must be a PostgreSQL URL or key=value DSN")
	}

	if err := export.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, export.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, but exports will still refuse the password
		ctx.Println("⚠️  Warning: connection string contains a password.")
		ctx.Println("   Exports reject embedded passwords; put it in ~/.pgpass or PGPASSWORD instead.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}

	ctx.Println("✓ Connection string stored in OS keyring")
	ctx.Printf("  'timegrid export' will use it when --dsn and %s are unset\n", constants.EnvConnection)
	return nil
}

// KeyringDeleteCmd removes the stored connection string
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd reports keyring availability and which connection string
// exports would use.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	connStr, origin, err := keyring.Resolve()
	switch {
	case err == nil:
		ctx.Printf("✓ Connection string from %s: %s\n", origin, maskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No connection string stored in keyring")
	default:
		return err
	}
	return nil
}

// maskPassword hides any password in a connection string for display.
func maskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, set := u.User.Password(); set {
			u.User = url.UserPassword(u.User.Username(), "****")
			// url escapes the mask; keep it readable
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
