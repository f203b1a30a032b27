package sorter

import (
	"github.com/reisraff/angular-filesort/internal/extract"
	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/source"
)

// DefaultExtensions selects the files inspected for declarations.
var DefaultExtensions = []string{"js"}

// Options configures a Sorter.
type Options struct {
	// Extensions are matched as path suffixes. Empty means DefaultExtensions.
	Extensions []string

	// Vocabulary used for extraction. Nil means extract.DefaultVocabulary.
	Vocabulary *extract.Vocabulary

	// Workers bounds concurrent extraction. Zero or less extracts serially.
	Workers int

	// ReportUnresolved adds a diagnostic for every explicit dependency
	// naming no module declared in the input.
	ReportUnresolved bool

	// Strict fails the sort when any diagnostic is raised.
	Strict bool
}

// ModuleEntry describes one sequenced file.
type ModuleEntry struct {
	Path  string   `json:"path" yaml:"path"`
	Names []string `json:"names" yaml:"names"`
	Kinds []string `json:"kinds" yaml:"kinds"`

	// Dependencies are the resolved names this file depends on.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Result is the outcome of a successful sort.
type Result struct {
	// Files is the full reordered sequence.
	Files []source.File

	// Modules lists the sequenced files in output order.
	Modules []ModuleEntry

	// Opaque lists the paths appended after the sequenced files.
	Opaque []string

	Diagnostics []graph.Diagnostic
}

// Paths returns the output order as paths.
func (r *Result) Paths() []string {
	return source.Paths(r.Files)
}
