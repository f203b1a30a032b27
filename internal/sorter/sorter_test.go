package sorter

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/reisraff/angular-filesort/internal/errors"
	"github.com/reisraff/angular-filesort/internal/extract"
	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/source"
)

const coreContent = `(function(window) { angularModule('ng', ['ngLocale'], ['$provide', function() {}]); })(window);`

func module(name string, deps ...string) string {
	list := ""
	for i, d := range deps {
		if i > 0 {
			list += ", "
		}
		list += "'" + d + "'"
	}
	return fmt.Sprintf("angular.module('%s', [%s]);\n", name, list)
}

func newSorter(t *testing.T, opts Options) *Sorter {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func sortPaths(t *testing.T, opts Options, files ...source.File) []string {
	t.Helper()
	res, err := newSorter(t, opts).Sort(context.Background(), files)
	require.NoError(t, err)
	return res.Paths()
}

// assertDependenciesFirst checks that every resolved dependency hosted by
// another file is emitted before its dependent.
func assertDependenciesFirst(t *testing.T, res *Result) {
	t.Helper()
	pos := make(map[string]int)
	for i, m := range res.Modules {
		for _, n := range m.Names {
			pos[n] = i
		}
	}
	for i, m := range res.Modules {
		for _, d := range m.Dependencies {
			at, ok := pos[d]
			if !ok || at == i {
				continue
			}
			assert.Less(t, at, i, "%s must precede %s", d, m.Path)
		}
	}
}

func TestSort_ScriptAndCoreBeforeApp(t *testing.T) {
	got := sortPaths(t, Options{},
		source.NewFile("core.js", coreContent),
		source.NewFile("util.js", "window.Util = {};"),
		source.NewFile("app.js", module("app")+"Util.start();"),
		source.NewFile("readme.md", "# app"),
	)
	assert.Equal(t, []string{"core.js", "util.js", "app.js", "readme.md"}, got)
}

func TestSort_DependencyFirst(t *testing.T) {
	res, err := newSorter(t, Options{}).Sort(context.Background(), []source.File{
		source.NewFile("a.js", module("a", "b")),
		source.NewFile("b.js", module("b")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js", "a.js"}, res.Paths())
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Opaque)
}

func TestSort_CycleFails(t *testing.T) {
	res, err := newSorter(t, Options{}).Sort(context.Background(), []source.File{
		source.NewFile("x.js", module("x", "y")),
		source.NewFile("y.js", module("y", "x")),
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, oerrors.ErrCycle)

	var cyc *graph.CyclicDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"x", "y", "x"}, cyc.Cycle)
	assert.Equal(t, oerrors.ExitCyclicDependency, oerrors.ExitCodeFromError(err))
}

func TestSort_PlainFilePassesThrough(t *testing.T) {
	res, err := newSorter(t, Options{}).Sort(context.Background(), []source.File{
		source.NewFile("plain.js", "console.log('plain');"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"plain.js"}, res.Paths())
	assert.Equal(t, []string{"plain.js"}, res.Opaque)
	assert.Empty(t, res.Modules)
}

func TestSort_Ordering(t *testing.T) {
	// Input lists dependents before their dependencies.
	var files []source.File
	for i := 9; i >= 0; i-- {
		var deps []string
		if i > 0 {
			deps = append(deps, fmt.Sprintf("m%d", i-1))
		}
		if i > 2 {
			deps = append(deps, fmt.Sprintf("m%d", i-3))
		}
		files = append(files, source.NewFile(fmt.Sprintf("m%d.js", i), module(fmt.Sprintf("m%d", i), deps...)))
	}
	files = append(files, source.NewFile("core.js", coreContent))

	res, err := newSorter(t, Options{}).Sort(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, res.Files, len(files))
	assert.Equal(t, "core.js", res.Paths()[0])
	assert.Equal(t, "m0.js", res.Paths()[1])
	assertDependenciesFirst(t, res)
}

func TestSort_OpaqueSegment(t *testing.T) {
	got := sortPaths(t, Options{},
		source.NewFile("style.css", "body {}"),
		source.NewFile("app.js", module("app", "lib")),
		source.NewFile("plain.js", "var x = 1;"),
		source.NewFile("lib.js", module("lib")),
		source.NewFile("index.html", "<html>"),
	)
	assert.Equal(t, []string{"lib.js", "app.js", "style.css", "plain.js", "index.html"}, got)
}

func TestSort_DuplicatePathsCollapse(t *testing.T) {
	res, err := newSorter(t, Options{}).Sort(context.Background(), []source.File{
		source.NewFile("a.js", module("a", "b")),
		source.NewFile("b.js", module("b")),
		source.NewFile("a.js", module("a", "b")),
		source.NewFile("n.txt", "x"),
		source.NewFile("n.txt", "x"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js", "a.js", "n.txt"}, res.Paths())
}

func TestSort_NoLoss(t *testing.T) {
	files := []source.File{
		source.NewFile("core.js", coreContent),
		source.NewFile("a.js", module("a")+module("a.sub", "a")),
		source.NewFile("dup.js", module("a")),
		source.NewFile("g.js", "window.Glob = 1;"),
		source.NewFile("o.js", ""),
		source.NewFile("x.json", "{}"),
	}
	res, err := newSorter(t, Options{}).Sort(context.Background(), files)
	require.NoError(t, err)
	assert.ElementsMatch(t, source.Paths(files), res.Paths())
}

func TestSort_ImplicitDependency(t *testing.T) {
	// Store is both a global and a module; app only mentions it in code.
	got := sortPaths(t, Options{},
		source.NewFile("app.js", module("app")+"Store.get('k');"),
		source.NewFile("store.js", "window.Store = {};\n"+module("Store")),
	)
	assert.Equal(t, []string{"store.js", "app.js"}, got)
}

func TestSort_CorePrecedence(t *testing.T) {
	got := sortPaths(t, Options{},
		source.NewFile("b.js", module("b")),
		source.NewFile("a.js", module("a")),
		source.NewFile("vendor/angular.js", coreContent),
	)
	assert.Equal(t, []string{"vendor/angular.js", "b.js", "a.js"}, got)
}

func TestSort_SameFileAliases(t *testing.T) {
	got := sortPaths(t, Options{},
		source.NewFile("app.js", module("app", "app.routes", "shared")),
		source.NewFile("bundle.js", module("app.routes", "shared")+module("shared")),
	)
	assert.Equal(t, []string{"bundle.js", "app.js"}, got)
}

func TestSort_Extensions(t *testing.T) {
	files := []source.File{
		source.NewFile("a.mjs", module("a", "b")),
		source.NewFile("b.ts", module("b")),
	}

	// The default suffix match counts .mjs but not .ts.
	assert.Equal(t, []string{"a.mjs", "b.ts"}, sortPaths(t, Options{}, files...))
	assert.Equal(t, []string{"b.ts", "a.mjs"}, sortPaths(t, Options{Extensions: []string{"js", ".ts"}}, files...))
}

func TestSort_Malformed(t *testing.T) {
	files := []source.File{
		source.NewFile("a.js", "angular.module('a', [getDeps()]);"),
		source.NewFile("b.js", module("b")),
	}

	res, err := newSorter(t, Options{}).Sort(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js", "b.js"}, res.Paths())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, graph.DiagnosticMalformed, res.Diagnostics[0].Kind)

	_, err = newSorter(t, Options{Strict: true}).Sort(context.Background(), files)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.ErrorIs(t, err, oerrors.ErrMalformed)
	assert.Contains(t, err.Error(), "a.js")
}

func TestSort_ReportUnresolved(t *testing.T) {
	files := []source.File{
		source.NewFile("a.js", module("a", "ngRoute", "b")),
		source.NewFile("b.js", module("b")),
	}

	res, err := newSorter(t, Options{}).Sort(context.Background(), files)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	res, err = newSorter(t, Options{ReportUnresolved: true}).Sort(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js", "a.js"}, res.Paths())
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, graph.DiagnosticUnresolved, res.Diagnostics[0].Kind)
	assert.Equal(t, "a", res.Diagnostics[0].Name)
	assert.Contains(t, res.Diagnostics[0].Message, `"ngRoute"`)

	_, err = newSorter(t, Options{ReportUnresolved: true, Strict: true}).Sort(context.Background(), files)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.NotErrorIs(t, err, oerrors.ErrMalformed)
}

func TestSort_ModulesReport(t *testing.T) {
	res, err := newSorter(t, Options{}).Sort(context.Background(), []source.File{
		source.NewFile("core.js", coreContent),
		source.NewFile("app.js", module("app", "lib")),
		source.NewFile("lib.js", "window.Lib = {};\n"+module("lib")),
	})
	require.NoError(t, err)

	require.Len(t, res.Modules, 3)
	assert.Equal(t, ModuleEntry{Path: "core.js", Names: []string{"angular"}, Kinds: []string{"core"}}, res.Modules[0])
	assert.Equal(t, ModuleEntry{
		Path:         "lib.js",
		Names:        []string{"Lib", "lib"},
		Kinds:        []string{"script", "module"},
		Dependencies: []string{"angular"},
	}, res.Modules[1])
	assert.Equal(t, []string{"angular", "lib"}, res.Modules[2].Dependencies)
}

func TestSort_CustomVocabulary(t *testing.T) {
	vocab, err := extract.NewVocabulary("", `define\('([\w.]+)',\s*\[`, "")
	require.NoError(t, err)

	got := sortPaths(t, Options{Vocabulary: vocab},
		source.NewFile("a.js", "define('a', ['b']);"),
		source.NewFile("b.js", "define('b', []);"),
		source.NewFile("ng.js", module("ignored")),
	)
	assert.Equal(t, []string{"b.js", "a.js", "ng.js"}, got)
}

func TestSort_ConcurrentMatchesSerial(t *testing.T) {
	var files []source.File
	for i := range 40 {
		content := module(fmt.Sprintf("m%02d", i))
		if i > 0 {
			content = module(fmt.Sprintf("m%02d", i), fmt.Sprintf("m%02d", (i*7+3)%i))
		}
		files = append(files, source.NewFile(fmt.Sprintf("f%02d.js", i), content))
		if i%5 == 0 {
			files = append(files, source.NewFile(fmt.Sprintf("n%02d.txt", i), ""))
		}
	}

	serial, err := newSorter(t, Options{Workers: 1}).Sort(context.Background(), files)
	require.NoError(t, err)
	concurrent, err := newSorter(t, Options{Workers: 8}).Sort(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, serial.Paths(), concurrent.Paths())
	assertDependenciesFirst(t, serial)
}

func TestSort_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSorter(t, Options{}).Sort(ctx, []source.File{source.NewFile("a.js", module("a"))})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestApply(t *testing.T) {
	coll := source.NewCollection(
		source.NewFile("a.js", module("a", "b")),
		source.NewFile("readme.md", ""),
		source.NewFile("b.js", module("b")),
	)

	res, err := newSorter(t, Options{}).Apply(context.Background(), coll)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js", "a.js", "readme.md"}, source.Paths(coll.Files()))
	assert.Equal(t, res.Paths(), source.Paths(coll.Files()))
}

func TestApply_CycleLeavesCollection(t *testing.T) {
	coll := source.NewCollection(
		source.NewFile("x.js", module("x", "y")),
		source.NewFile("y.js", module("y", "x")),
		source.NewFile("z.md", ""),
	)

	res, err := newSorter(t, Options{}).Apply(context.Background(), coll)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, []string{"x.js", "y.js", "z.md"}, source.Paths(coll.Files()))
}
