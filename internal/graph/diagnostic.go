package graph

import "fmt"

// DiagnosticKind classifies a non-fatal finding.
type DiagnosticKind string

const (
	// DiagnosticMalformed marks a declaration whose dependency list could not be parsed.
	DiagnosticMalformed DiagnosticKind = "malformed"

	// DiagnosticUnresolved marks a dependency naming no module known to the run.
	DiagnosticUnresolved DiagnosticKind = "unresolved"
)

// Diagnostic is a non-fatal finding about one declaration.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Path    string         `json:"path" yaml:"path"`
	Name    string         `json:"name" yaml:"name"`
	Message string         `json:"message" yaml:"message"`
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %q: %s", d.Path, d.Kind, d.Name, d.Message)
}
