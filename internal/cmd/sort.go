package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reisraff/angular-filesort/internal/cmdtypes"
	"github.com/reisraff/angular-filesort/internal/cmdutil"
	"github.com/reisraff/angular-filesort/internal/config"
	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/output"
)

// NewSortCmd creates the sort command.
func NewSortCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.SortFlags

	c := &cobra.Command{
		Use:   "sort [path...]",
		Short: "Print AngularJS sources in dependency order",
		Long: `Sort AngularJS sources so that declarations precede their dependents.

Each path may be a file or a directory. Directories are walked recursively
in lexical order. Files declaring the AngularJS core, a module or a global
are placed after everything they depend on. Other files follow in the order
they were encountered.

Examples:
  # Print the order of the current directory
  ngsort sort

  # Concatenate the sorted sources into a bundle
  ngsort sort src/ --bundle dist/app.js

  # Show the order as a table and how it differs from the input
  ngsort sort src/ -o table --diff`,
		RunE: func(c *cobra.Command, args []string) error {
			return runSort(c, args, cfg, &flags)
		},
	}

	flags.AddTo(c)

	return c
}

func runSort(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, flags *cmdutil.SortFlags) error {
	if cfg.LoadErr != nil {
		return cmdtypes.NewExitError(fmt.Errorf("loading config %s: %w", cfg.ConfigPath, cfg.LoadErr), cmdtypes.ExitGeneralError)
	}
	if cfg.Config == nil {
		return cmdtypes.NewExitError(fmt.Errorf("configuration not loaded"), cmdtypes.ExitGeneralError)
	}

	resolved := *cfg.Config
	config.LogResolvedValues(config.Resolve(&resolved, flags.ConfigFlags(c)))

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}
	if err := validator.Validate(&resolved); err != nil {
		return cmdtypes.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	format := output.ParseOutputFormat(flags.Output)
	if !format.IsValid() {
		return cmdtypes.NewExitError(
			fmt.Errorf("invalid output format %q (valid: %s)", flags.Output, strings.Join(output.ValidFormats(), ", ")),
			cmdtypes.ExitValidationError,
		)
	}

	run, err := cmdutil.RunSort(c.Context(), cmdutil.RunSortOpts{
		Paths:         cmdutil.ResolvePaths(args),
		IncludeHidden: flags.IncludeHidden,
		Config:        &resolved,
	})
	if err != nil {
		return err
	}

	err = cmdutil.WriteResults(run, cmdutil.WriteOpts{
		Format:    format,
		Writer:    c.OutOrStdout(),
		Bundle:    flags.Bundle,
		OutDir:    flags.OutDir,
		Separator: resolved.Separator,
		Diff:      flags.Diff,
		Color:     output.IsTTY(),
	})
	if err != nil {
		return cmdtypes.NewExitError(err, cmdtypes.ExitGeneralError)
	}

	output.Debug("sort complete",
		"files", len(run.Result.Files),
		"modules", len(run.Result.Modules),
		"opaque", len(run.Result.Opaque),
		"diagnostics", len(run.Result.Diagnostics),
	)
	return nil
}
