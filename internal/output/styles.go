package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for all ANSI 256 colors used in the CLI.
// Never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: file paths, module names.
	ColorCyan = lipgloss.Color("14")

	// ColorMagenta marks the core registration.
	ColorMagenta = lipgloss.Color("213")

	// ColorGreen marks modules.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow marks scripts (global assignments) and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed marks removals in diffs.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for errors and cycles (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (file paths, module names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (sorting, writing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	// StyleError styles error headlines such as a detected cycle.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
)

// Kind labels used in reports. They match the record kinds of the graph
// package plus the opaque pass-through segment.
const (
	KindCore   = "core"
	KindModule = "module"
	KindScript = "script"
	KindOpaque = "opaque"
)

// KindStyle returns the lipgloss style for a record kind.
// Unknown kinds return an unstyled default.
func KindStyle(kind string) lipgloss.Style {
	switch kind {
	case KindCore:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorMagenta)
	case KindModule:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case KindScript:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case KindOpaque:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// minPathColumnWidth is the minimum width of the path column before the
// declared names, so names line up across lines.
const minPathColumnWidth = 40

// FormatFileLine renders one position of the output order.
//
// Format: <pos> f:<path>  <kind> <names>
//
// The "f:" prefix is dim, the path is cyan and the kind uses KindStyle.
func FormatFileLine(pos int, path, kind string, names []string) string {
	padding := minPathColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	line := StyleDim.Render(padLeft(pos, 3)+" f:") + StyleNoun.Render(path) +
		strings.Repeat(" ", padding) + KindStyle(kind).Render(kind)
	if len(names) > 0 {
		line += " " + strings.Join(names, ", ")
	}
	return line
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCycle renders a dependency cycle as "a -> b -> a" with the names
// highlighted.
func FormatCycle(names []string) string {
	styled := make([]string, len(names))
	for i, n := range names {
		styled[i] = StyleNoun.Render(n)
	}
	return StyleError.Render("cycle:") + " " + strings.Join(styled, StyleDim.Render(" -> "))
}

func padLeft(n, width int) string {
	s := itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
