// Package sorter reorders a file collection so that every file declaring a
// module or global precedes the files depending on it.
package sorter

import (
	"context"
	"fmt"

	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/extract"
	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/output"
	"github.com/reisraff/angular-filesort/internal/source"
)

// Sorter runs the extract, build, resolve and sequence phases over a set
// of files. A Sorter holds no per-run state and may be reused.
type Sorter struct {
	opts      Options
	extractor *extract.Extractor
	patterns  *graph.PatternCache
}

// New creates a Sorter.
func New(opts Options) (*Sorter, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	patterns, err := graph.NewPatternCache(graph.DefaultPatternCacheSize)
	if err != nil {
		return nil, err
	}
	return &Sorter{
		opts:      opts,
		extractor: extract.New(opts.Vocabulary),
		patterns:  patterns,
	}, nil
}

// Sort returns files reordered: files declaring records first, dependencies
// before dependents, followed by every other file in encounter order.
// Duplicate paths keep their first occurrence. On error no result is
// returned.
func (s *Sorter) Sort(ctx context.Context, files []source.File) (*Result, error) {
	files = dedupe(files)

	// Phase 1: CLASSIFY
	var candidates []source.File
	for _, f := range files {
		if source.HasSuffix(f, s.opts.Extensions) {
			candidates = append(candidates, f)
		}
	}

	// Phase 2: EXTRACT
	workers := s.opts.Workers
	if workers <= 0 {
		workers = 1
	}
	results, err := s.extractor.ExtractAll(ctx, candidates, workers)
	if err != nil {
		return nil, fmt.Errorf("extracting declarations: %w", err)
	}
	matched := make(map[string]bool, len(results))
	b := graph.NewBuilder()
	var diags []graph.Diagnostic
	for _, res := range results {
		diags = append(diags, res.Diagnostics...)
		if !res.Matched() {
			continue
		}
		matched[res.File.Path()] = true
		for _, r := range res.Records {
			b.Add(r)
		}
	}
	output.Debug("extracted declarations",
		"files", len(files),
		"candidates", len(candidates),
		"matched", len(matched),
		"records", b.Len(),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 3: RESOLVE
	g := b.Build()
	unresolved, err := g.Resolve(graph.ResolveOptions{
		ReportUnresolved: s.opts.ReportUnresolved,
		Patterns:         s.patterns,
	})
	if err != nil {
		return nil, fmt.Errorf("resolving dependencies: %w", err)
	}
	diags = append(diags, unresolved...)
	output.Debug("resolved dependencies",
		"modules", len(g.ModuleNames()),
		"scripts", len(g.ScriptNames()),
	)

	for _, d := range diags {
		output.FileLogger(d.Path).Warn(d.Message, "kind", d.Kind, "name", d.Name)
	}
	if s.opts.Strict && len(diags) > 0 {
		return nil, strictError(diags)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 4: SEQUENCE
	nodes, err := g.Sequence()
	if err != nil {
		return nil, err
	}

	// Phase 5: ASSEMBLE
	res := assemble(nodes, files, matched)
	res.Diagnostics = diags
	output.Debug("sorted files",
		"sequenced", len(res.Modules),
		"opaque", len(res.Opaque),
	)
	return res, nil
}

// Apply sorts the collection in place. The collection is only modified when
// sorting succeeds.
func (s *Sorter) Apply(ctx context.Context, coll source.Collection) (*Result, error) {
	res, err := s.Sort(ctx, coll.Files())
	if err != nil {
		return nil, err
	}
	coll.Clear()
	for _, f := range res.Files {
		coll.Add(f)
	}
	return res, nil
}

func assemble(nodes []*graph.Node, files []source.File, matched map[string]bool) *Result {
	res := &Result{
		Files:   make([]source.File, 0, len(files)),
		Modules: make([]ModuleEntry, 0, len(nodes)),
	}
	emitted := make(map[string]bool, len(files))

	for _, n := range nodes {
		if emitted[n.Path] {
			continue
		}
		emitted[n.Path] = true
		res.Files = append(res.Files, n.File)
		res.Modules = append(res.Modules, moduleEntry(n))
	}

	for _, f := range files {
		if emitted[f.Path()] || matched[f.Path()] {
			continue
		}
		emitted[f.Path()] = true
		res.Files = append(res.Files, f)
		res.Opaque = append(res.Opaque, f.Path())
	}
	return res
}

func moduleEntry(n *graph.Node) ModuleEntry {
	e := ModuleEntry{Path: n.Path, Names: n.Names()}
	seen := make(map[string]bool)
	for _, r := range n.Records {
		e.Kinds = append(e.Kinds, string(r.Kind))
		for _, d := range r.Dependencies {
			if !seen[d] {
				seen[d] = true
				e.Dependencies = append(e.Dependencies, d)
			}
		}
	}
	return e
}

func dedupe(files []source.File) []source.File {
	seen := make(map[string]bool, len(files))
	out := make([]source.File, 0, len(files))
	for _, f := range files {
		if f == nil || seen[f.Path()] {
			continue
		}
		seen[f.Path()] = true
		out = append(out, f)
	}
	return out
}

func strictError(diags []graph.Diagnostic) error {
	first := diags[0]
	cause := oerrors.ErrValidation
	for _, d := range diags {
		if d.Kind == graph.DiagnosticMalformed {
			cause = fmt.Errorf("%w: %w", oerrors.ErrValidation, oerrors.ErrMalformed)
			break
		}
	}
	return &oerrors.DetailError{
		Type:     "strict mode",
		Message:  fmt.Sprintf("%d diagnostic(s) raised", len(diags)),
		Location: first.Path,
		Context:  map[string]string{"First": first.String()},
		Hint:     "Fix the declarations or run without --strict",
		Cause:    cause,
	}
}
