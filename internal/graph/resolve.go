package graph

import (
	"fmt"
	"regexp"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/reisraff/angular-filesort/internal/output"
)

// DefaultPatternCacheSize bounds the number of compiled script-name patterns kept.
const DefaultPatternCacheSize = 512

// PatternCache memoizes the compiled pattern used to find a script name in
// file content. Each script name is tested against every module, so the
// pattern for one name is reused many times within a run.
type PatternCache struct {
	cache *lru.Cache[string, *regexp.Regexp]
}

// NewPatternCache creates a cache holding at most size patterns.
func NewPatternCache(size int) (*PatternCache, error) {
	if size <= 0 {
		size = DefaultPatternCacheSize
	}
	c, err := lru.New[string, *regexp.Regexp](size)
	if err != nil {
		return nil, fmt.Errorf("creating pattern cache: %w", err)
	}
	return &PatternCache{cache: c}, nil
}

// Contains reports whether name occurs literally in content.
func (p *PatternCache) Contains(name, content string) bool {
	re, ok := p.cache.Get(name)
	if !ok {
		re = regexp.MustCompile(regexp.QuoteMeta(name))
		p.cache.Add(name, re)
	}
	return re.MatchString(content)
}

// Len returns the number of cached patterns.
func (p *PatternCache) Len() int {
	return p.cache.Len()
}

// ResolveOptions controls dependency resolution.
type ResolveOptions struct {
	// ReportUnresolved returns a diagnostic for every explicit dependency that
	// names no module declared in this run. Off by default: such dependencies
	// are dropped silently.
	ReportUnresolved bool

	// Patterns caches script-name patterns. Nil creates a cache for this call.
	Patterns *PatternCache
}

// Resolve rewrites the dependencies of every record except the core:
// explicit dependencies plus every script name found in the hosting file's
// content, restricted to module names, deduplicated, without the record
// itself. The resulting order follows module discovery order.
func (g *Graph) Resolve(opts ResolveOptions) ([]Diagnostic, error) {
	patterns := opts.Patterns
	if patterns == nil {
		var err error
		patterns, err = NewPatternCache(DefaultPatternCacheSize)
		if err != nil {
			return nil, err
		}
	}

	var diags []Diagnostic
	for _, node := range g.nodes {
		var implicit []string
		implicitDone := false

		for _, r := range node.Records {
			if r.Kind == KindCore {
				r.Dependencies = nil
				continue
			}

			if !implicitDone {
				implicit = g.implicitScripts(patterns, node.File.Content())
				implicitDone = true
			}

			if opts.ReportUnresolved {
				diags = append(diags, g.unresolved(r)...)
			}

			wanted := make(map[string]bool, len(r.Dependencies)+len(implicit))
			for _, d := range r.Dependencies {
				wanted[d] = true
			}
			for _, s := range implicit {
				wanted[s] = true
			}

			resolved := make([]string, 0, len(wanted))
			for _, m := range g.modules {
				if wanted[m] && m != r.Name {
					resolved = append(resolved, m)
				}
			}
			r.Dependencies = resolved

			output.Debug("resolved dependencies",
				"name", r.Name,
				"path", r.Path,
				"dependencies", resolved,
			)
		}
	}

	return diags, nil
}

func (g *Graph) implicitScripts(patterns *PatternCache, content string) []string {
	var found []string
	for _, s := range g.scripts {
		if patterns.Contains(s, content) {
			found = append(found, s)
		}
	}
	return found
}

func (g *Graph) unresolved(r *Record) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[string]bool)
	for _, d := range r.Dependencies {
		// The implicit core dependency is expected to be absent in builds
		// that do not bundle the framework itself.
		if d == CoreName || d == r.Name || seen[d] || g.IsModule(d) {
			continue
		}
		seen[d] = true
		diags = append(diags, Diagnostic{
			Kind:    DiagnosticUnresolved,
			Path:    r.Path,
			Name:    r.Name,
			Message: fmt.Sprintf("dependency %q is not declared by any input file", d),
		})
	}
	return diags
}
