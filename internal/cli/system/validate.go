package system

import (
	"fmt"

	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/validation"
)

type ValidateCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Timetable file (.hcl or .json). Defaults to the built-in sample."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	src, name, err := ctx.Load(cmd.File)
	if err != nil {
		return err
	}

	result := validation.New().ValidateSource(src)
	ctx.Printf("Validating %s\n\n", name)
	ctx.Println(result.FormatReport())

	if result.HasConflicts() {
		logger.Debug("Validation failed", "source", name, "conflicts", len(result.Conflicts))
		return fmt.Errorf("%s has %d conflict(s)", name, len(result.Conflicts))
	}
	return nil
}
