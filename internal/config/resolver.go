package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/reisraff/angular-filesort/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the final value of one key and where it came from.
type ResolvedValue struct {
	Key    string
	Value  any
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// Flags carries command-line overrides. Nil fields were not set.
type Flags struct {
	Extensions       []string
	Separator        *string
	Workers          *int
	Strict           *bool
	ReportUnresolved *bool
	Timestamps       *bool
}

// Resolve applies flags on top of cfg using precedence:
// (1) flag, (2) NGSORT_ env, (3) config file, (4) default.
// It returns one ResolvedValue per key in Keys order.
func Resolve(cfg *Config, flags Flags) []ResolvedValue {
	values := make([]ResolvedValue, 0, len(Keys))

	apply := func(key string, set bool, current any, assign func()) {
		rv := ResolvedValue{
			Key:      key,
			Source:   cfg.Source(key),
			Shadowed: make(map[ConfigSource]string),
		}
		if set {
			rv.Shadowed[rv.Source] = render(current)
			assign()
			rv.Source = SourceFlag
		}
		values = append(values, rv)
	}

	apply(KeyExtensions, flags.Extensions != nil, cfg.Extensions, func() { cfg.Extensions = flags.Extensions })
	apply(KeySeparator, flags.Separator != nil, cfg.Separator, func() { cfg.Separator = *flags.Separator })
	apply(KeyWorkers, flags.Workers != nil, cfg.Workers, func() { cfg.Workers = *flags.Workers })
	apply(KeyStrict, flags.Strict != nil, cfg.Strict, func() { cfg.Strict = *flags.Strict })
	apply(KeyReportUnresolved, flags.ReportUnresolved != nil, cfg.ReportUnresolved, func() { cfg.ReportUnresolved = *flags.ReportUnresolved })
	apply(KeyPatternCore, false, nil, nil)
	apply(KeyPatternModule, false, nil, nil)
	apply(KeyPatternGlobal, false, nil, nil)
	apply(KeyLogTimestamps, flags.Timestamps != nil, cfg.Log.Timestamps, func() { cfg.Log.Timestamps = flags.Timestamps })

	for i := range values {
		values[i].Value = valueOf(cfg, values[i].Key)
	}
	return values
}

func valueOf(cfg *Config, key string) any {
	switch key {
	case KeyExtensions:
		return cfg.Extensions
	case KeySeparator:
		return cfg.Separator
	case KeyWorkers:
		return cfg.Workers
	case KeyStrict:
		return cfg.Strict
	case KeyReportUnresolved:
		return cfg.ReportUnresolved
	case KeyPatternCore:
		return cfg.Patterns.Core
	case KeyPatternModule:
		return cfg.Patterns.Module
	case KeyPatternGlobal:
		return cfg.Patterns.Global
	case KeyLogTimestamps:
		if cfg.Log.Timestamps == nil {
			return nil
		}
		return *cfg.Log.Timestamps
	}
	return nil
}

func render(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ",")
	case *bool:
		if t == nil {
			return ""
		}
		return fmt.Sprint(*t)
	}
	return fmt.Sprint(v)
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) NGSORT_CONFIG env, (3) ~/.ngsort/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(envConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		shadowed := make([]string, 0, len(v.Shadowed))
		for source := range v.Shadowed {
			shadowed = append(shadowed, string(source))
		}
		sort.Strings(shadowed)
		for _, source := range shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", v.Shadowed[ConfigSource(source)],
			)
		}
	}
}
