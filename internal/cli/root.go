package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timegrid/internal/export"
	"github.com/julianstephens/timegrid/internal/grid"
	"github.com/julianstephens/timegrid/internal/keyring"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/source"
	"github.com/julianstephens/timegrid/internal/timetable"
)

// SampleName identifies the built-in timetable in messages.
const SampleName = "built-in sample"

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Out     io.Writer
	Confirm ConfirmFunc
	Ctx     context.Context
}

// NewContext returns a Context writing to stdout and prompting with huh.
func NewContext() *Context {
	return &Context{
		Out:     os.Stdout,
		Confirm: confirm,
		Ctx:     context.Background(),
	}
}

func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Load reads the timetable at path, or the built-in sample when path is empty.
// The second result names where it came from.
func (c *Context) Load(path string) (models.Timetable, string, error) {
	if path == "" {
		logger.Debug("Using built-in sample timetable")
		return source.Sample(), SampleName, nil
	}
	src, err := source.Load(path)
	if err != nil {
		return models.Timetable{}, path, err
	}
	return src, path, nil
}

// Grid loads, validates and renders the timetable at path.
func (c *Context) Grid(path string) (*grid.Grid, error) {
	src, name, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	tt, err := timetable.Build(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	g, err := grid.Render(tt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return g, nil
}

// ResolveDSN returns dsn, or the stored PostgreSQL connection string when dsn
// is empty.
func ResolveDSN(dsn string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	connStr, origin, err := keyring.Resolve()
	if err != nil {
		return "", err
	}
	logger.Debug("Resolved export connection", "origin", origin, "dsn", export.Redact(connStr))
	return connStr, nil
}

// OpenExporter resolves dsn and opens the export database.
func (c *Context) OpenExporter(dsn string) (*export.Exporter, error) {
	dsn, err := ResolveDSN(dsn)
	if err != nil {
		return nil, err
	}
	return export.Open(c.Ctx, dsn)
}
