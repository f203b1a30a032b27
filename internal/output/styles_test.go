package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestKindStyle(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{
			name:     "core returns bold magenta",
			kind:     KindCore,
			wantBold: true,
			wantFG:   ColorMagenta,
		},
		{
			name:   "module returns green",
			kind:   KindModule,
			wantFG: ColorGreen,
		},
		{
			name:   "script returns yellow",
			kind:   KindScript,
			wantFG: ColorYellow,
		},
		{
			name:    "opaque returns faint",
			kind:    KindOpaque,
			wantDim: true,
		},
		{
			name: "unknown returns default unstyled",
			kind: "unknown-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := KindStyle(tt.kind)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatFileLine(t *testing.T) {
	line := FormatFileLine(3, "src/app.js", KindModule, []string{"app", "app.routes"})

	assert.Contains(t, line, "3 f:")
	assert.Contains(t, line, "src/app.js")
	assert.Contains(t, line, KindModule)
	assert.Contains(t, line, "app, app.routes")
	assert.Less(t, strings.Index(line, "src/app.js"), strings.Index(line, KindModule))
}

func TestFormatFileLine_LongPath(t *testing.T) {
	path := strings.Repeat("x", minPathColumnWidth+10) + ".js"
	line := FormatFileLine(1, path, KindOpaque, nil)

	assert.Contains(t, line, path+"  ")
	assert.True(t, strings.HasSuffix(line, KindStyle(KindOpaque).Render(KindOpaque)))
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("sorted 3 files"), "✔ sorted 3 files")
}

func TestFormatCycle(t *testing.T) {
	out := FormatCycle([]string{"x", "y", "x"})
	assert.Contains(t, out, "cycle:")
	assert.Contains(t, out, "x -> y -> x")
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "  7", padLeft(7, 3))
	assert.Equal(t, "1234", padLeft(1234, 3))
}
