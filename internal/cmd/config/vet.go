package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reisraff/angular-filesort/internal/cmdtypes"
	"github.com/reisraff/angular-filesort/internal/config"
	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the ngsort configuration file",
		Long: `Validate the ngsort configuration file against the internal schema.

Unknown keys, wrong types, out-of-range values and patterns that do not
compile are reported. The file at ~/.ngsort/config.yaml is checked by
default. Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(expandedPath); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				output.Error("invalid config", "field", ve.Field, "error", ve.Message)
			}
			return &cmdtypes.ExitError{
				Code:    cmdtypes.ExitValidationError,
				Err:     err,
				Printed: true,
			}
		}
		return cmdtypes.NewExitError(err, oerrors.ExitCodeFromError(err))
	}

	fmt.Fprintf(c.OutOrStdout(), "%s %s\n", output.FormatCheckmark("Config file is valid"), expandedPath)
	return nil
}
