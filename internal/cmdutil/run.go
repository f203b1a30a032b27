package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/reisraff/angular-filesort/internal/config"
	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/output"
	"github.com/reisraff/angular-filesort/internal/sorter"
	"github.com/reisraff/angular-filesort/internal/source"
)

// RunSortOpts holds the inputs for RunSort.
type RunSortOpts struct {
	// Paths are the files and directories to load.
	Paths []string
	// Fs is the filesystem to load from. Nil means the OS filesystem.
	Fs afero.Fs
	// IncludeHidden includes dot files when walking directories.
	IncludeHidden bool
	// Config is the resolved configuration (flags already applied).
	Config *config.Config
	// Spinner shows a spinner while sorting. Nil detects a terminal.
	Spinner *bool
}

// SortRun is the outcome of RunSort.
type SortRun struct {
	// Input is the collection as loaded, before sorting.
	Input []source.File
	// Result is the sorted outcome.
	Result *sorter.Result
}

// RunSort loads the files, builds a sorter from the configuration and
// applies it to the collection.
//
// On failure it returns an *ExitError with the appropriate exit code and
// Printed flag.
func RunSort(ctx context.Context, opts RunSortOpts) (*SortRun, error) {
	if opts.Config == nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: fmt.Errorf("configuration not loaded")}
	}

	vocab, err := opts.Config.Vocabulary()
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: fmt.Errorf("invalid patterns: %w", err)}
	}

	loader := source.NewLoader(opts.Fs)
	loader.IncludeHidden = opts.IncludeHidden
	coll, err := loader.Load(opts.Paths...)
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err}
	}
	input := coll.Files()

	s, err := sorter.New(sorter.Options{
		Extensions:       opts.Config.Extensions,
		Vocabulary:       vocab,
		Workers:          opts.Config.Workers,
		ReportUnresolved: opts.Config.ReportUnresolved,
		Strict:           opts.Config.Strict,
	})
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	output.Debug("sorting files",
		"files", len(input),
		"extensions", opts.Config.Extensions,
		"workers", opts.Config.Workers,
	)

	var res *sorter.Result
	spinOpts := []output.SpinnerOption{output.WithTitle(fmt.Sprintf("Sorting %d files", len(input)))}
	if opts.Spinner != nil {
		spinOpts = append(spinOpts, output.WithSpinner(*opts.Spinner))
	}
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.Apply(ctx, coll)
		return err
	}, spinOpts...)
	if err != nil {
		PrintSortError(err)
		return nil, &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
	}

	return &SortRun{Input: input, Result: res}, nil
}

// PrintSortError prints a sort failure in a user-friendly format.
func PrintSortError(err error) {
	var cyc *graph.CyclicDependencyError
	if errors.As(err, &cyc) {
		output.Error("cyclic dependency detected", "files", strings.Join(cyc.Paths, ", "))
		output.Details(output.FormatCycle(cyc.Cycle))
		return
	}

	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Details(detail.Error())
		return
	}

	output.Error("sort failed", "error", err)
}
