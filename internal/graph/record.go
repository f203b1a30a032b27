// Package graph builds the module graph discovered in source files, resolves
// implicit dependencies and sequences files so that dependencies come first.
//
// The graph is keyed by file path. Module names are a secondary index into
// those paths, so several names declared in one file collapse to one node.
package graph

import "github.com/reisraff/angular-filesort/internal/source"

// CoreName is the reserved name of the core framework registration.
const CoreName = "angular"

// Kind classifies a declaration.
type Kind string

const (
	// KindCore is the core framework registration.
	KindCore Kind = "core"

	// KindModule is a named module with an explicit dependency list.
	KindModule Kind = "module"

	// KindScript is a global or namespace assignment.
	KindScript Kind = "script"
)

// Record is one declaration found in a file.
type Record struct {
	// Name is the module, script or core identifier.
	Name string

	// Path is the path of the hosting file.
	Path string

	// File is the hosting file.
	File source.File

	// Kind classifies the declaration.
	Kind Kind

	// Dependencies are explicit names at extraction time and resolved module
	// names after Resolve.
	Dependencies []string
}

// NewRecord creates a record hosted by f.
func NewRecord(name string, kind Kind, f source.File, deps ...string) *Record {
	return &Record{
		Name:         name,
		Path:         f.Path(),
		File:         f,
		Kind:         kind,
		Dependencies: deps,
	}
}

// Node is a file hosting one or more records.
type Node struct {
	Path    string
	File    source.File
	Records []*Record
}

// Names returns the names of the records hosted by the node.
func (n *Node) Names() []string {
	names := make([]string, len(n.Records))
	for i, r := range n.Records {
		names[i] = r.Name
	}
	return names
}
