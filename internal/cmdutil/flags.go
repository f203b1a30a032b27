// Package cmdutil provides shared command utilities for the sort command.
// It centralizes flag management, sort orchestration and output formatting
// helpers.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/reisraff/angular-filesort/internal/config"
)

// SortFlags holds the flags of the sort command.
type SortFlags struct {
	Output        string
	Bundle        string
	OutDir        string
	Diff          bool
	IncludeHidden bool

	// Config overrides, applied only when set on the command line.
	Extensions       []string
	Separator        string
	Workers          int
	Strict           bool
	ReportUnresolved bool
}

// AddTo registers the sort flags on the given cobra command.
func (f *SortFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", "text",
		"Output format: text, yaml, json, table, paths")
	cmd.Flags().StringVar(&f.Bundle, "bundle", "",
		"Write the sorted files concatenated into this file")
	cmd.Flags().StringVar(&f.OutDir, "out-dir", "",
		"Copy the sorted files into this directory with order prefixes")
	cmd.Flags().BoolVar(&f.Diff, "diff", false,
		"Show how the order differs from the input order")
	cmd.Flags().BoolVar(&f.IncludeHidden, "include-hidden", false,
		"Include dot files and directories when walking")

	cmd.Flags().StringSliceVar(&f.Extensions, "ext", nil,
		"Extensions inspected for declarations (env: NGSORT_EXTENSIONS)")
	cmd.Flags().StringVar(&f.Separator, "separator", "",
		"Separator written between bundled files (env: NGSORT_SEPARATOR)")
	cmd.Flags().IntVar(&f.Workers, "workers", 0,
		"Concurrent extraction workers (env: NGSORT_WORKERS)")
	cmd.Flags().BoolVar(&f.Strict, "strict", false,
		"Fail when a declaration is malformed or a dependency is unresolved (env: NGSORT_STRICT)")
	cmd.Flags().BoolVar(&f.ReportUnresolved, "report-unresolved", false,
		"Report dependencies on undeclared modules (env: NGSORT_REPORTUNRESOLVED)")
}

// ConfigFlags returns the overrides the user set explicitly on cmd.
func (f *SortFlags) ConfigFlags(cmd *cobra.Command) config.Flags {
	var out config.Flags
	changed := cmd.Flags().Changed

	if changed("ext") {
		out.Extensions = f.Extensions
	}
	if changed("separator") {
		out.Separator = &f.Separator
	}
	if changed("workers") {
		out.Workers = &f.Workers
	}
	if changed("strict") {
		out.Strict = &f.Strict
	}
	if changed("report-unresolved") {
		out.ReportUnresolved = &f.ReportUnresolved
	}
	return out
}

// ResolvePaths returns the roots to load, defaulting to the current directory.
func ResolvePaths(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{"."}
}
