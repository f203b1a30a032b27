package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	return &Report{
		Order: []ReportEntry{
			{Position: 1, Path: "core.js", Kind: KindCore, Names: []string{"angular"}},
			{Position: 2, Path: "app.js", Kind: KindModule, Names: []string{"app"}, Dependencies: []string{"angular"}},
			{Position: 3, Path: "readme.md", Kind: KindOpaque},
		},
		Diagnostics: []ReportDiagnostic{
			{Kind: "unresolved", Path: "app.js", Name: "ngRoute", Message: "unknown module"},
		},
	}
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleReport(), ReportOptions{Format: FormatYAML, Writer: &buf}))

	var got Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleReport(), got)
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleReport(), ReportOptions{Format: FormatJSON, Writer: &buf}))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "app.js", got.Order[1].Path)
	assert.Equal(t, []string{"angular"}, got.Order[1].Dependencies)
	assert.Len(t, got.Diagnostics, 1)
}

func TestWriteReport_Paths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleReport(), ReportOptions{Format: FormatPaths, Writer: &buf}))
	assert.Equal(t, "core.js\napp.js\nreadme.md\n", buf.String())
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleReport(), ReportOptions{Format: FormatText, Writer: &buf}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "core.js")
	assert.Contains(t, string(lines[2]), "readme.md")
}

func TestWriteReport_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleReport(), ReportOptions{Format: FormatTable, Writer: &buf}))

	out := buf.String()
	for _, want := range []string{"PATH", "DEPENDS ON", "core.js", "app.js", "angular"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteReport_Unsupported(t *testing.T) {
	err := WriteReport(sampleReport(), ReportOptions{Format: "xml", Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}
