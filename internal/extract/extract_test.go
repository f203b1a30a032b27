package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reisraff/angular-filesort/internal/graph"
	"github.com/reisraff/angular-filesort/internal/source"
)

func names(records []*graph.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestExtract_Module(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		deps    []string
	}{
		{
			name:    "no dependencies",
			content: `angular.module('app', []);`,
			want:    "app",
			deps:    []string{"angular"},
		},
		{
			name:    "quoted dependencies",
			content: `angular.module("app.core", ['ngRoute', "app.data"]);`,
			want:    "app.core",
			deps:    []string{"ngRoute", "app.data", "angular"},
		},
		{
			name:    "whitespace and newlines",
			content: "angular\n  .module( 'app' ,\n [\n  'a',\n  'b/c',\n ])",
			want:    "app",
			deps:    []string{"a", "b/c", "angular"},
		},
		{
			name:    "dashes in names",
			content: `angular.module('my-app', ['ui-router'])`,
			want:    "my-app",
			deps:    []string{"ui-router", "angular"},
		},
	}

	ex := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ex.Extract(source.NewFile("a.js", tt.content))
			require.True(t, res.Matched())
			require.Len(t, res.Records, 1)
			r := res.Records[0]
			assert.Equal(t, tt.want, r.Name)
			assert.Equal(t, graph.KindModule, r.Kind)
			assert.Equal(t, tt.deps, r.Dependencies)
			assert.Equal(t, "a.js", r.Path)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestExtract_ModuleGetterIgnored(t *testing.T) {
	res := New(nil).Extract(source.NewFile("a.js", `angular.module('app').controller('X', function() {});`))
	assert.False(t, res.Matched())
	assert.Empty(t, res.Records)
}

func TestExtract_Core(t *testing.T) {
	res := New(nil).Extract(source.NewFile("angular.js", `setupModuleLoader(window); angularModule('ng', ['ngLocale'], ['$provide', fn]);`))
	require.Len(t, res.Records, 1)
	assert.Equal(t, graph.CoreName, res.Records[0].Name)
	assert.Equal(t, graph.KindCore, res.Records[0].Kind)
	assert.Empty(t, res.Records[0].Dependencies)
}

func TestExtract_Global(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{`window.Util = {};`, []string{"Util"}},
		{`global.my-lib = 1; root.Other = 2;`, []string{"my-lib", "Other"}},
		{`window.X = 1;`, nil},       // single-character names are not globals
		{`window.Util= {};`, nil},    // whitespace before = is required
		{`var Util = window.Util;`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			res := New(nil).Extract(source.NewFile("g.js", tt.content))
			if tt.want == nil {
				assert.False(t, res.Matched())
				return
			}
			assert.Equal(t, tt.want, names(res.Records))
			for _, r := range res.Records {
				assert.Equal(t, graph.KindScript, r.Kind)
				assert.Empty(t, r.Dependencies)
			}
		})
	}
}

func TestExtract_DocumentOrder(t *testing.T) {
	content := `
window.Helpers = {};
angular.module('app', ['app.a']);
angular.module('app.a', []);
window.Late = 1;
`
	res := New(nil).Extract(source.NewFile("multi.js", content))
	assert.Equal(t, []string{"Helpers", "app", "app.a", "Late"}, names(res.Records))
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"call inside list", `angular.module('app', [dep(), 'x']);`},
		{"unterminated list", `angular.module('app', ['x'`},
		{"comment inside list", `angular.module('app', [/* c */ 'x']);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(nil).Extract(source.NewFile("bad.js", tt.content))
			require.Len(t, res.Records, 1)
			assert.Equal(t, "app", res.Records[0].Name)
			assert.Equal(t, []string{graph.CoreName}, res.Records[0].Dependencies)

			require.Len(t, res.Diagnostics, 1)
			d := res.Diagnostics[0]
			assert.Equal(t, graph.DiagnosticMalformed, d.Kind)
			assert.Equal(t, "bad.js", d.Path)
			assert.Equal(t, "app", d.Name)
		})
	}
}

func TestExtract_Unmatched(t *testing.T) {
	for _, content := range []string{"", "console.log('hi');", "angular.module"} {
		res := New(nil).Extract(source.NewFile("x.js", content))
		assert.False(t, res.Matched(), content)
		assert.Empty(t, res.Diagnostics)
	}
}

func TestVocabulary_Custom(t *testing.T) {
	v, err := NewVocabulary(`coreLib\(\)`, `define\(\s*'([\w.]+)'\s*,\s*\[`, `exports\.(\w+)\s+=`)
	require.NoError(t, err)

	ex := New(v)
	res := ex.Extract(source.NewFile("c.js", `coreLib(); define('feature', ['base']); exports.Tool = 1;`))
	require.Len(t, res.Records, 3)
	assert.Equal(t, []string{graph.CoreName, "feature", "Tool"}, names(res.Records))
	assert.Equal(t, []string{"base", graph.CoreName}, res.Records[1].Dependencies)

	core, module, global := v.Patterns()
	assert.Equal(t, `coreLib\(\)`, core)
	assert.Contains(t, module, "define")
	assert.Contains(t, global, "exports")
}

func TestVocabulary_CorePatternWithGroups(t *testing.T) {
	v, err := NewVocabulary(`(boot)strap\((\d)\)`, "", "")
	require.NoError(t, err)

	res := New(v).Extract(source.NewFile("c.js", `bootstrap(1); angular.module('m', []); window.Glob = 1;`))
	assert.Equal(t, []string{graph.CoreName, "m", "Glob"}, names(res.Records))
}

func TestVocabulary_Invalid(t *testing.T) {
	tests := []struct {
		name                 string
		core, module, global string
		field                string
	}{
		{"bad core", `(`, "", "", "core"},
		{"module without group", "", `angular\.module\(`, "", "module"},
		{"global with two groups", "", "", `(window)\.(\w+) =`, "global"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVocabulary(tt.core, tt.module, tt.global)
			require.Error(t, err)
			var pe *PatternError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestParseDependencies(t *testing.T) {
	deps, ok := parseDependencies(` 'a' , "b",,'c'   ]);`)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, deps)

	deps, ok = parseDependencies(`]`)
	require.True(t, ok)
	assert.Empty(t, deps)

	_, ok = parseDependencies(`'a' + 'b']`)
	assert.False(t, ok)
}

func TestExtractAll_PreservesOrder(t *testing.T) {
	files := make([]source.File, 0, 50)
	for i := range 50 {
		files = append(files, source.NewFile(
			fmt.Sprintf("f%02d.js", i),
			fmt.Sprintf("angular.module('m%02d', []);", i),
		))
	}

	ex := New(nil)
	for _, workers := range []int{0, 1, 4} {
		results, err := ex.ExtractAll(context.Background(), files, workers)
		require.NoError(t, err)
		require.Len(t, results, len(files))
		for i, res := range results {
			assert.Equal(t, files[i].Path(), res.File.Path())
			assert.Equal(t, fmt.Sprintf("m%02d", i), res.Records[0].Name)
		}
	}
}

func TestExtractAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).ExtractAll(ctx, []source.File{source.NewFile("a.js", "")}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
