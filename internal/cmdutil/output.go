package cmdutil

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/output"
	"github.com/reisraff/angular-filesort/internal/sorter"
	"github.com/reisraff/angular-filesort/internal/source"
)

// BuildReport converts a sort result into a printable report.
func BuildReport(res *sorter.Result) *output.Report {
	r := &output.Report{
		Order: make([]output.ReportEntry, 0, len(res.Files)),
	}

	pos := 1
	for _, m := range res.Modules {
		r.Order = append(r.Order, output.ReportEntry{
			Position:     pos,
			Path:         m.Path,
			Kind:         dominantKind(m.Kinds),
			Names:        m.Names,
			Dependencies: m.Dependencies,
		})
		pos++
	}
	for _, p := range res.Opaque {
		r.Order = append(r.Order, output.ReportEntry{
			Position: pos,
			Path:     p,
			Kind:     output.KindOpaque,
		})
		pos++
	}

	for _, d := range res.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, output.ReportDiagnostic{
			Kind:    string(d.Kind),
			Path:    d.Path,
			Name:    d.Name,
			Message: d.Message,
		})
	}
	return r
}

// dominantKind picks the label shown for a file declaring several records:
// core over module over script.
func dominantKind(kinds []string) string {
	best := output.KindScript
	for _, k := range kinds {
		switch k {
		case string(graph.KindCore):
			return output.KindCore
		case string(graph.KindModule):
			best = output.KindModule
		}
	}
	return best
}

// WriteOpts controls what WriteResults produces besides the report.
type WriteOpts struct {
	Format    output.OutputFormat
	Writer    io.Writer
	Fs        afero.Fs
	Bundle    string
	OutDir    string
	Separator string
	Diff      bool
	Color     bool
}

// WriteResults writes the report, the optional order diff, the optional
// bundle and the optional numbered copies.
func WriteResults(run *SortRun, opts WriteOpts) error {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if err := output.WriteReport(BuildReport(run.Result), output.ReportOptions{
		Format: opts.Format,
		Writer: opts.Writer,
	}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if opts.Diff {
		diff := output.NewOrderDiff(source.Paths(run.Input), run.Result.Paths())
		rendered, err := diff.Render(opts.Color)
		if err != nil {
			return fmt.Errorf("rendering diff: %w", err)
		}
		if _, err := fmt.Fprintln(opts.Writer, rendered); err != nil {
			return err
		}
	}

	if opts.Bundle != "" {
		if err := source.WriteBundleFile(fs, opts.Bundle, run.Result.Files, opts.Separator); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
		output.Info(fmt.Sprintf("wrote %d files to %s", len(run.Result.Files), opts.Bundle))
	}

	if opts.OutDir != "" {
		written, err := source.WriteNumbered(fs, opts.OutDir, run.Result.Files)
		if err != nil {
			return fmt.Errorf("writing numbered files: %w", err)
		}
		output.Info(fmt.Sprintf("wrote %d files to %s", len(written), opts.OutDir))
	}

	return nil
}
