package exports

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/logger"
)

// ErrNoBackups is returned by backup commands against a PostgreSQL export.
var ErrNoBackups = errors.New("backups are only kept for SQLite export databases")

type WriteCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Timetable file (.hcl or .json). Defaults to the built-in sample."`
	DSN  string `help:"Export database: a SQLite path or PostgreSQL connection string. Defaults to the stored connection string." env:"TIMEGRID_DSN"`
}

func (cmd *WriteCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Grid(cmd.File)
	if err != nil {
		return err
	}

	e, err := ctx.OpenExporter(cmd.DSN)
	if err != nil {
		return err
	}
	defer e.Close()

	id, err := e.Write(ctx.Ctx, g)
	if err != nil {
		return err
	}

	logger.Info("Exported grid", "id", id, "driver", e.Driver())
	ctx.Printf("✓ Exported %d days × %d slots as %s\n", g.DayCount(), g.SlotCount(), id)
	return nil
}

type ListCmd struct {
	DSN     string `help:"Export database. Defaults to the stored connection string." env:"TIMEGRID_DSN"`
	NoColor bool   `help:"Disable colours." env:"NO_COLOR"`
}

func (cmd *ListCmd) Run(ctx *cli.Context) error {
	e, err := ctx.OpenExporter(cmd.DSN)
	if err != nil {
		return err
	}
	defer e.Close()

	summaries, err := e.List(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		ctx.Println("No exports yet.")
		return nil
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	headerStyle := cellStyle
	if !cmd.NoColor {
		headerStyle = cellStyle.Foreground(lipgloss.Color("205")).Bold(true)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CREATED", "SIZE", "CAPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, s := range summaries {
		t.Row(s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), fmt.Sprintf("%d×%d", s.Days, s.Slots), s.Caption)
	}
	ctx.Println(t.Render())
	return nil
}

type BackupsCmd struct {
	DSN string `help:"SQLite export database." env:"TIMEGRID_DSN"`
}

func (cmd *BackupsCmd) Run(ctx *cli.Context) error {
	e, err := ctx.OpenExporter(cmd.DSN)
	if err != nil {
		return err
	}
	defer e.Close()

	m := e.Backups()
	if m == nil {
		return ErrNoBackups
	}
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No backups in %s\n", m.Dir())
		return nil
	}
	for _, b := range backups {
		ctx.Printf("%s  %s  %s\n", b.Timestamp.Format(time.DateTime), formatSize(b.Size), filepath.Base(b.Path))
	}
	return nil
}

type RestoreCmd struct {
	Backup string `arg:"" type:"existingfile" help:"Backup file to restore."`
	DSN    string `help:"SQLite export database to overwrite." env:"TIMEGRID_DSN"`
	Force  bool   `help:"Restore without asking."`
}

func (cmd *RestoreCmd) Run(ctx *cli.Context) error {
	e, err := ctx.OpenExporter(cmd.DSN)
	if err != nil {
		return err
	}
	m := e.Backups()
	// Release the database before its file is replaced
	if err := e.Close(); err != nil {
		return err
	}
	if m == nil {
		return ErrNoBackups
	}

	if !cmd.Force {
		ok, err := ctx.Confirm(
			"Restore export database?",
			fmt.Sprintf("Exports written after %s will be replaced by the backup.", filepath.Base(cmd.Backup)),
		)
		if err != nil {
			return fmt.Errorf("failed to confirm restore: %w", err)
		}
		if !ok {
			ctx.Println("Cancelled, nothing restored.")
			return nil
		}
	}

	previous, err := m.Restore(ctx.Ctx, cmd.Backup)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Restored from %s\n", filepath.Base(cmd.Backup))
	if previous != "" {
		ctx.Printf("  Previous database saved as %s\n", previous)
	}
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
