// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/reisraff/angular-filesort/internal/cmd/config"
	"github.com/reisraff/angular-filesort/internal/cmdtypes"
	"github.com/reisraff/angular-filesort/internal/config"
	"github.com/reisraff/angular-filesort/internal/output"
)

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	config     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the ngsort CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "ngsort",
		Short: "Order AngularJS sources by module dependencies",
		Long: `ngsort reorders JavaScript files so that every file declaring an AngularJS
module or a global precedes the files that depend on it.

Files without declarations, and files that are not JavaScript, are kept
after the sorted files in the order they were given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, cfg, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: NGSORT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewSortCmd(cfg))
	rootCmd.AddCommand(configcmd.NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads .env and the config file, then sets up logging.
// A config that fails to load is recorded rather than returned so commands
// that do not need it (version, config init) still work.
func initializeGlobals(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *rootFlags) error {
	cfg.Verbose = flags.verbose

	if err := config.LoadDotEnv(""); err != nil {
		output.Warn("ignoring .env file", "error", err)
	}

	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})
	if err != nil {
		return err
	}
	cfg.ConfigPath = pathResult.ConfigPath

	loaded, err := config.NewLoader().Load(cfg.ConfigPath)
	if err != nil {
		cfg.LoadErr = err
	}
	cfg.Config = loaded

	logCfg := output.LogConfig{
		Verbose: flags.verbose,
	}

	// Timestamps: flag (if explicitly set) > config/env > default (nil = true)
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if loaded != nil && loaded.Log.Timestamps != nil {
		logCfg.Timestamps = loaded.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	if cfg.LoadErr != nil {
		output.Debug("config load error", "error", cfg.LoadErr)
	}
	config.LogResolvedValues([]config.ResolvedValue{{
		Key:      "config",
		Value:    pathResult.ConfigPath,
		Source:   pathResult.Source,
		Shadowed: pathResult.Shadowed,
	}})

	return nil
}
