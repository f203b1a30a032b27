// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/reisraff/angular-filesort/internal/config"
	oerrors "github.com/reisraff/angular-filesort/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration (defaults + file + env). Nil when
	// loading failed; LoadErr then holds the reason.
	Config  *config.Config
	LoadErr error

	ConfigPath string // resolved --config path
	Verbose    bool
}

// Exit codes: aliases to internal/errors constants.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitNotFound         = oerrors.ExitNotFound
	ExitCyclicDependency = oerrors.ExitCyclicDependency
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// NewExitError wraps err with an exit code.
func NewExitError(err error, code int) *ExitError {
	return oerrors.NewExitError(err, code)
}
