package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReportEntry is one position of the output order.
type ReportEntry struct {
	Position     int      `json:"position" yaml:"position"`
	Path         string   `json:"path" yaml:"path"`
	Kind         string   `json:"kind" yaml:"kind"`
	Names        []string `json:"names,omitempty" yaml:"names,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ReportDiagnostic is a non-fatal finding raised while sorting.
type ReportDiagnostic struct {
	Kind    string `json:"kind" yaml:"kind"`
	Path    string `json:"path" yaml:"path"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Report is the printable outcome of a sort.
type Report struct {
	Order       []ReportEntry      `json:"order" yaml:"order"`
	Diagnostics []ReportDiagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// ReportOptions controls report output.
type ReportOptions struct {
	// Format specifies the output format.
	Format OutputFormat
	// Writer is the output destination.
	Writer io.Writer
}

// WriteReport writes the report in the requested format.
func WriteReport(r *Report, opts ReportOptions) error {
	switch opts.Format {
	case FormatYAML:
		return writeYAML(r, opts.Writer)
	case FormatJSON:
		return writeJSON(r, opts.Writer)
	case FormatTable:
		_, err := fmt.Fprintln(opts.Writer, RenderOrderTable(r.Order))
		return err
	case FormatPaths:
		return writePaths(r, opts.Writer)
	case FormatText, "":
		return writeText(r, opts.Writer)
	}
	return fmt.Errorf("unsupported output format %q", opts.Format)
}

func writeYAML(r *Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func writeJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func writePaths(r *Report, w io.Writer) error {
	for _, e := range r.Order {
		if _, err := fmt.Fprintln(w, e.Path); err != nil {
			return err
		}
	}
	return nil
}

func writeText(r *Report, w io.Writer) error {
	for _, e := range r.Order {
		if _, err := fmt.Fprintln(w, FormatFileLine(e.Position, e.Path, e.Kind, e.Names)); err != nil {
			return err
		}
	}
	return nil
}
