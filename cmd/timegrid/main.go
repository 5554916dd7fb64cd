package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/cli/exports"
	"github.com/julianstephens/timegrid/internal/cli/grids"
	"github.com/julianstephens/timegrid/internal/cli/system"
	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/errors"
	"github.com/julianstephens/timegrid/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   kong.ConfigFlag `help:"JSON file supplying flag defaults." env:"TIMEGRID_CONFIG"`
	Debug    bool            `help:"Log debug output to stderr." env:"TIMEGRID_DEBUG"`
	LogLevel string          `help:"Minimum level written to the log file (${enum})." enum:"debug,info,warn,error" default:"warn" env:"TIMEGRID_LOG_LEVEL"`
	LogDir   string          `help:"Directory for log files." type:"path" default:"${log_dir}"`

	Show     grids.ShowCmd      `cmd:"" help:"Print the timetable as a table." default:"withargs"`
	Validate system.ValidateCmd `cmd:"" help:"Report every problem in a timetable."`
	Render   grids.RenderCmd    `cmd:"" help:"Render the timetable as HTML, JSON or CSV."`
	View     grids.ViewCmd      `cmd:"" help:"Browse the timetable interactively."`
	Export   struct {
		Write   exports.WriteCmd   `cmd:"" help:"Store the rendered grid in an export database." default:"withargs"`
		List    exports.ListCmd    `cmd:"" help:"List stored exports."`
		Backups exports.BackupsCmd `cmd:"" help:"List backups of a SQLite export database."`
		Restore exports.RestoreCmd `cmd:"" help:"Restore a SQLite export database from a backup."`
	} `cmd:"" help:"Manage export databases."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the export connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring availability and the active connection string." default:"1"`
	} `cmd:"" help:"Manage the stored export connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Render timetables with spanning cells as a dense day × slot grid"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigPath),
		kong.Vars{
			"version": constants.Version,
			"log_dir": constants.DefaultLogDir,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, LogDir: CLI.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "version", constants.Version)

	err := ctx.Run(cli.NewContext())
	if err != nil {
		errors.Fatal(err)
	}
	logger.Close()
}
