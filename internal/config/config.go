// Package config provides configuration loading and management.
package config

import (
	"github.com/reisraff/angular-filesort/internal/extract"
	"github.com/reisraff/angular-filesort/internal/source"
)

// Configuration keys, in the order they are resolved and logged.
const (
	KeyExtensions       = "extensions"
	KeySeparator        = "separator"
	KeyWorkers          = "workers"
	KeyStrict           = "strict"
	KeyReportUnresolved = "reportUnresolved"
	KeyPatternCore      = "patterns.core"
	KeyPatternModule    = "patterns.module"
	KeyPatternGlobal    = "patterns.global"
	KeyLogTimestamps    = "log.timestamps"
)

// Keys lists every configuration key.
var Keys = []string{
	KeyExtensions,
	KeySeparator,
	KeyWorkers,
	KeyStrict,
	KeyReportUnresolved,
	KeyPatternCore,
	KeyPatternModule,
	KeyPatternGlobal,
	KeyLogTimestamps,
}

// PatternsConfig overrides the declaration vocabulary. Empty fields keep the
// AngularJS defaults.
type PatternsConfig struct {
	// Core matches the framework's own core registration.
	// Env: NGSORT_PATTERNS_CORE
	Core string `json:"core,omitempty" yaml:"core,omitempty" mapstructure:"core"`

	// Module matches a module declaration head up to the opening bracket of
	// its dependency list. Exactly one capture group: the module name.
	// Env: NGSORT_PATTERNS_MODULE
	Module string `json:"module,omitempty" yaml:"module,omitempty" mapstructure:"module"`

	// Global matches a global assignment. Exactly one capture group: the name.
	// Env: NGSORT_PATTERNS_GLOBAL
	Global string `json:"global,omitempty" yaml:"global,omitempty" mapstructure:"global"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the ngsort configuration.
// Loaded from ~/.ngsort/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Extensions selects the files inspected for declarations, matched as
	// path suffixes.
	// Env: NGSORT_EXTENSIONS (comma separated), Default: [js]
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty" mapstructure:"extensions"`

	// Separator is written between files when bundling.
	// Env: NGSORT_SEPARATOR, Default: "\n"
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty" mapstructure:"separator"`

	// Workers bounds concurrent extraction.
	// Env: NGSORT_WORKERS, Default: 4
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Strict turns diagnostics into errors.
	// Env: NGSORT_STRICT
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`

	// ReportUnresolved reports dependencies naming undeclared modules.
	// Env: NGSORT_REPORTUNRESOLVED
	ReportUnresolved bool `json:"reportUnresolved" yaml:"reportUnresolved" mapstructure:"reportUnresolved"`

	Patterns PatternsConfig `json:"patterns" yaml:"patterns,omitempty" mapstructure:"patterns"`

	Log LogConfig `json:"log" yaml:"log,omitempty" mapstructure:"log"`

	// sources records where each key was read from. Set by Loader.
	sources map[string]ConfigSource
}

// DefaultWorkers is the default extraction concurrency.
const DefaultWorkers = 4

// DefaultConfig returns a Config with all default values populated.
// Used by `ngsort config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		Extensions: []string{"js"},
		Separator:  source.DefaultSeparator,
		Workers:    DefaultWorkers,
		Log: LogConfig{
			Timestamps: &timestamps,
		},
	}
}

// Source returns where key was read from.
func (c *Config) Source(key string) ConfigSource {
	if s, ok := c.sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Vocabulary compiles the configured declaration patterns.
func (c *Config) Vocabulary() (*extract.Vocabulary, error) {
	return extract.NewVocabulary(c.Patterns.Core, c.Patterns.Module, c.Patterns.Global)
}
