package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/export"
	"github.com/julianstephens/timegrid/internal/grid"
	"github.com/julianstephens/timegrid/internal/keyring"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/timetable"
)

type DoctorCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Timetable file (.hcl or .json). Defaults to the built-in sample."`
	DSN  string `help:"Export database to check. Defaults to the stored connection string." env:"TIMEGRID_DSN"`
}

type doctor struct {
	ctx      *cli.Context
	hasError bool
}

func (d *doctor) pass(name string) {
	d.ctx.Printf("✓ %s: OK\n", name)
}

func (d *doctor) fail(name string, err error) {
	d.ctx.Printf("❌ %s: FAIL\n", name)
	d.ctx.Printf("   Error: %v\n", err)
	d.hasError = true
}

func (d *doctor) warn(name string, msg string) {
	d.ctx.Printf("⚠ %s: WARNING\n", name)
	d.ctx.Printf("   %s\n", msg)
}

func (d *doctor) skip(name, reason string) {
	d.ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	d := &doctor{ctx: ctx}

	// Check 1: source loads
	src, name, err := ctx.Load(cmd.File)
	if err != nil {
		d.fail("Source loads", err)
	} else {
		d.pass("Source loads (" + name + ")")
	}

	// Check 2: structure
	var tt *timetable.Timetable
	if err == nil {
		tt, err = timetable.Build(src)
		if err != nil {
			d.fail("Timetable structure", err)
		} else {
			d.pass("Timetable structure")
		}
	} else {
		d.skip("Timetable structure", "source not loaded")
	}

	// Check 3: layout
	var g *grid.Grid
	if tt != nil {
		g, err = grid.Render(tt)
		if err != nil {
			d.fail("Grid layout", err)
		} else {
			d.pass(fmt.Sprintf("Grid layout (%d days × %d slots)", g.DayCount(), g.SlotCount()))
		}
	} else {
		d.skip("Grid layout", "timetable invalid")
	}

	// Check 4: every coordinate resolves to exactly one placement
	if g != nil {
		if err := checkCoverage(g); err != nil {
			d.fail("Grid coverage", err)
		} else {
			d.pass("Grid coverage")
		}
	} else {
		d.skip("Grid coverage", "grid not rendered")
	}

	// Check 5: keyring (warning only)
	if keyring.IsAvailable() {
		d.pass("OS keyring")
	} else {
		d.warn("OS keyring", "not available; use --dsn or "+constants.EnvConnection+" for PostgreSQL exports")
	}

	// Check 6: export database, when one is configured
	cmd.checkExport(d)

	if path := logger.Path(); path != "" {
		ctx.Printf("ℹ Log file: %s\n", path)
	}

	ctx.Println()
	if d.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func (cmd *DoctorCmd) checkExport(d *doctor) {
	dsn, err := cli.ResolveDSN(cmd.DSN)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			d.skip("Export database", "no connection configured")
			return
		}
		d.fail("Export database", err)
		return
	}

	e, err := export.Open(d.ctx.Ctx, dsn)
	if err != nil {
		d.fail("Export database", err)
		return
	}
	defer e.Close()

	summaries, err := e.List(d.ctx.Ctx)
	if err != nil {
		d.fail("Export database", err)
		return
	}
	d.pass(fmt.Sprintf("Export database (%s, schema current, %d export(s))", e.Driver(), len(summaries)))

	if b := e.Backups(); b != nil {
		backups, err := b.List()
		switch {
		case err != nil:
			d.warn("Backups present", err.Error())
		case len(backups) == 0 && len(summaries) > 0:
			d.warn("Backups present", "no backups found in "+b.Dir())
		default:
			d.pass(fmt.Sprintf("Backups present (%d)", len(backups)))
		}
	}
}

// checkCoverage confirms that every coordinate lies inside exactly one
// placement rectangle and resolves to that placement's cell.
func checkCoverage(g *grid.Grid) error {
	placements := g.Placements()
	for d := 0; d < g.DayCount(); d++ {
		for s := 0; s < g.SlotCount(); s++ {
			var owner *grid.Placement
			for i := range placements {
				if !placements[i].Covers(d, s) {
					continue
				}
				if owner != nil {
					return fmt.Errorf("%s at %s is claimed by both %q and %q", g.DayLabel(d), g.SlotLabel(s), cellText(owner.Cell), cellText(placements[i].Cell))
				}
				owner = &placements[i]
			}
			if owner == nil {
				return fmt.Errorf("%s at %s is not covered by any cell", g.DayLabel(d), g.SlotLabel(s))
			}
			if e := g.At(d, s); e.Origin != owner.Origin || e.Cell != owner.Cell {
				return fmt.Errorf("%s at %s resolves to %q but lies inside %q", g.DayLabel(d), g.SlotLabel(s), cellText(e.Cell), cellText(owner.Cell))
			}
		}
	}
	return nil
}

func cellText(c *models.Cell) string {
	if c == nil {
		return ""
	}
	return c.Text
}
