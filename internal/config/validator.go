package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/extract"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets callers match ValidationErrors against errors.ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		return nil, fmt.Errorf("looking up #Config: %w", def.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate validates a loaded configuration: field types and ranges against
// the schema, then the pattern vocabulary.
func (v *Validator) Validate(cfg *Config) error {
	errs := v.unify(v.ctx.Encode(cfg))
	errs = append(errs, validatePatterns(cfg)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateFile validates a configuration file at the given path. Unlike
// Validate it also rejects unknown keys.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return oerrors.NewNotFoundError("config file does not exist", expanded, "Run 'ngsort config init' to create one")
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	file, err := cueyaml.Extract(expanded, data)
	if err != nil {
		return ValidationErrors{{Field: "(file)", Message: err.Error()}}
	}
	errs := v.unify(v.ctx.BuildFile(file))
	if len(errs) > 0 {
		return errs
	}

	cfg, err := NewLoader().Load(expanded)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return v.Validate(cfg)
}

func (v *Validator) unify(val cue.Value) ValidationErrors {
	if err := val.Err(); err != nil {
		return toValidationErrors(err)
	}
	if err := v.schema.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		path := e.Path()
		if len(path) > 0 && strings.HasPrefix(path[0], "#") {
			path = path[1:]
		}
		field := strings.Join(path, ".")
		if field == "" {
			field = "(root)"
		}
		format, args := e.Msg()
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	return errs
}

func validatePatterns(cfg *Config) ValidationErrors {
	if _, err := cfg.Vocabulary(); err != nil {
		var pe *extract.PatternError
		if errors.As(err, &pe) {
			return ValidationErrors{{Field: "patterns." + pe.Field, Message: pe.Message}}
		}
		return ValidationErrors{{Field: "patterns", Message: err.Error()}}
	}
	return nil
}
