// Package extract discovers module, core and global declarations in source
// text using a configurable pattern vocabulary.
package extract

import (
	"fmt"
	"regexp"
)

// Default patterns recognise AngularJS 1.x declarations.
const (
	// DefaultCorePattern matches the framework registering its own core module.
	DefaultCorePattern = `angularModule\s*\(\s*['"]ng['"]`

	// DefaultModulePattern matches angular.module('<name>', [ and captures the name.
	DefaultModulePattern = `angular\s*\.\s*module\s*\(\s*['"]([A-Za-z0-9./-]+)['"]\s*,\s*\[`

	// DefaultGlobalPattern matches window.X =, global.X = or root.X = and captures X.
	DefaultGlobalPattern = `(?:window|global|root)\.([A-Za-z][\w-]+)\s+=`
)

// Vocabulary is the set of textual patterns the extractor recognises.
type Vocabulary struct {
	core   *regexp.Regexp
	module *regexp.Regexp
	global *regexp.Regexp

	combined *regexp.Regexp

	// Submatch index pairs inside combined.
	coreGroup   int
	moduleGroup int
	moduleName  int
	globalGroup int
	globalName  int
}

// PatternError reports an invalid vocabulary pattern.
type PatternError struct {
	// Field is core, module or global.
	Field   string
	Pattern string
	Message string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern %s %q: %s", e.Field, e.Pattern, e.Message)
}

// NewVocabulary compiles a vocabulary. Empty patterns fall back to the
// defaults. The module and global patterns must have exactly one capture
// group holding the declared name.
func NewVocabulary(core, module, global string) (*Vocabulary, error) {
	if core == "" {
		core = DefaultCorePattern
	}
	if module == "" {
		module = DefaultModulePattern
	}
	if global == "" {
		global = DefaultGlobalPattern
	}

	coreRe, err := compile("core", core, -1)
	if err != nil {
		return nil, err
	}
	moduleRe, err := compile("module", module, 1)
	if err != nil {
		return nil, err
	}
	globalRe, err := compile("global", global, 1)
	if err != nil {
		return nil, err
	}

	joined := "(" + core + ")|(" + module + ")|(" + global + ")"
	combined, err := regexp.Compile(joined)
	if err != nil {
		return nil, &PatternError{Field: "combined", Pattern: joined, Message: err.Error()}
	}

	v := &Vocabulary{
		core:     coreRe,
		module:   moduleRe,
		global:   globalRe,
		combined: combined,
	}
	v.coreGroup = 1
	v.moduleGroup = v.coreGroup + 1 + coreRe.NumSubexp()
	v.moduleName = v.moduleGroup + 1
	v.globalGroup = v.moduleGroup + 1 + moduleRe.NumSubexp()
	v.globalName = v.globalGroup + 1
	return v, nil
}

// DefaultVocabulary returns the AngularJS vocabulary.
func DefaultVocabulary() *Vocabulary {
	v, err := NewVocabulary("", "", "")
	if err != nil {
		panic(err)
	}
	return v
}

// Patterns returns the source of the core, module and global patterns.
func (v *Vocabulary) Patterns() (core, module, global string) {
	return v.core.String(), v.module.String(), v.global.String()
}

func compile(field, pattern string, groups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Field: field, Pattern: pattern, Message: err.Error()}
	}
	if groups >= 0 && re.NumSubexp() != groups {
		return nil, &PatternError{
			Field:   field,
			Pattern: pattern,
			Message: fmt.Sprintf("must have exactly %d capture group, has %d", groups, re.NumSubexp()),
		}
	}
	return re, nil
}
