package graph

import (
	"fmt"
	"strings"

	oerrors "github.com/reisraff/angular-filesort/internal/errors"
)

// CyclicDependencyError reports a dependency cycle between distinct files.
type CyclicDependencyError struct {
	// Cycle lists the module names along the cycle. The last entry is the name
	// through which the walk re-entered a file already on the path.
	Cycle []string

	// Paths lists the files along the cycle, in the same order as Cycle.
	Paths []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap lets errors.Is match oerrors.ErrCycle.
func (e *CyclicDependencyError) Unwrap() error {
	return oerrors.ErrCycle
}
