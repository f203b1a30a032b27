package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/source"
)

// Result is what a single file declares.
type Result struct {
	File source.File

	// Records in the order their declarations appear in the file.
	Records []*graph.Record

	// Diagnostics raised while reading the file.
	Diagnostics []graph.Diagnostic
}

// Matched reports whether the file declared at least one named record.
// Unmatched files are treated as opaque by the sorter.
func (r Result) Matched() bool {
	return len(r.Records) > 0
}

// Extractor scans file content for declarations.
type Extractor struct {
	vocab *Vocabulary
}

// New returns an extractor for the given vocabulary. A nil vocabulary
// selects DefaultVocabulary.
func New(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

// Extract scans f in a single left-to-right pass. Where several patterns
// match at the same offset the core pattern wins over the module pattern,
// which wins over the global pattern.
func (e *Extractor) Extract(f source.File) Result {
	res := Result{File: f}
	content := f.Content()
	v := e.vocab

	for _, m := range v.combined.FindAllStringSubmatchIndex(content, -1) {
		switch {
		case m[2*v.coreGroup] >= 0:
			res.Records = append(res.Records, graph.NewRecord(graph.CoreName, graph.KindCore, f))

		case m[2*v.moduleGroup] >= 0:
			name := group(content, m, v.moduleName)
			if name == "" {
				continue
			}
			deps, ok := parseDependencies(content[m[1]:])
			if !ok {
				res.Diagnostics = append(res.Diagnostics, graph.Diagnostic{
					Kind:    graph.DiagnosticMalformed,
					Path:    f.Path(),
					Name:    name,
					Message: fmt.Sprintf("dependency list of %q could not be parsed", name),
				})
				deps = nil
			}
			deps = append(deps, graph.CoreName)
			res.Records = append(res.Records, graph.NewRecord(name, graph.KindModule, f, deps...))

		case m[2*v.globalGroup] >= 0:
			name := group(content, m, v.globalName)
			if name == "" {
				continue
			}
			res.Records = append(res.Records, graph.NewRecord(name, graph.KindScript, f))
		}
	}

	return res
}

// ExtractAll extracts every file using up to workers goroutines. Results
// keep the order of files. workers <= 0 means one worker per file.
func (e *Extractor) ExtractAll(ctx context.Context, files []source.File, workers int) ([]Result, error) {
	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Extract(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func group(content string, m []int, idx int) string {
	start, end := m[2*idx], m[2*idx+1]
	if start < 0 {
		return ""
	}
	return content[start:end]
}

// parseDependencies reads a dependency list from just after its opening
// bracket up to the closing one. Only names, quotes, commas and whitespace
// may appear in between.
func parseDependencies(rest string) ([]string, bool) {
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return nil, false
	}
	raw := rest[:end]
	for _, r := range raw {
		if !isListRune(r) {
			return nil, false
		}
	}

	var deps []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) || r == '\'' || r == '"' {
				return -1
			}
			return r
		}, part)
		if name != "" {
			deps = append(deps, name)
		}
	}
	return deps, true
}

func isListRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".-'\"/,", r)
}
