package grids

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/present"
	"github.com/julianstephens/timegrid/internal/tui"
)

type ShowCmd struct {
	File    string `arg:"" optional:"" type:"existingfile" help:"Timetable file (.hcl or .json). Defaults to the built-in sample."`
	Day     string `help:"Only show this day."`
	NoColor bool   `help:"Disable colours." env:"NO_COLOR"`
}

func (cmd *ShowCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Grid(cmd.File)
	if err != nil {
		return err
	}
	out, err := present.Terminal(g, present.TerminalOptions{Day: cmd.Day, NoColor: cmd.NoColor})
	if err != nil {
		return err
	}
	ctx.Println(out)
	return nil
}

type RenderCmd struct {
	File   string `arg:"" optional:"" type:"existingfile" help:"Timetable file (.hcl or .json). Defaults to the built-in sample."`
	Format string `short:"f" enum:"html,json,csv" default:"html" help:"Output format (html, json, csv)."`
	Out    string `short:"o" type:"path" help:"Write to this file instead of stdout."`
	Force  bool   `help:"Overwrite the output file without asking."`
}

func (cmd *RenderCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Grid(cmd.File)
	if err != nil {
		return err
	}

	if cmd.Out == "" {
		return present.Write(ctx.Out, g, cmd.Format)
	}

	if _, err := os.Stat(cmd.Out); err == nil && !cmd.Force {
		ok, err := ctx.Confirm(
			fmt.Sprintf("Overwrite %s?", filepath.Base(cmd.Out)),
			fmt.Sprintf("%s already exists.", cmd.Out),
		)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			ctx.Println("Cancelled, nothing written.")
			return nil
		}
	}

	// Render fully before touching the file so a failure leaves it intact
	var buf bytes.Buffer
	if err := present.Write(&buf, g, cmd.Format); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(cmd.Out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Out, err)
	}

	logger.Info("Rendered grid", "format", cmd.Format, "out", cmd.Out, "bytes", buf.Len())
	ctx.Printf("✓ Wrote %s (%s)\n", cmd.Out, cmd.Format)
	return nil
}

type ViewCmd struct {
	File    string `arg:"" optional:"" type:"existingfile" help:"Timetable file (.hcl or .json). Defaults to the built-in sample."`
	NoColor bool   `help:"Disable colours." env:"NO_COLOR"`
}

func (cmd *ViewCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Grid(cmd.File)
	if err != nil {
		return err
	}
	return tui.Run(g, cmd.NoColor)
}
