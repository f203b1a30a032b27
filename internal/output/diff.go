package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"
)

// OrderDiff compares the order files were given in with the order they
// were emitted in.
type OrderDiff struct {
	Before []string
	After  []string

	// Moved lists paths whose position changed, in output order.
	Moved []string
}

type orderDocument struct {
	Order []string `json:"order"`
}

// NewOrderDiff computes which paths changed position.
func NewOrderDiff(before, after []string) *OrderDiff {
	d := &OrderDiff{Before: before, After: after}
	for i, p := range after {
		if i >= len(before) || before[i] != p {
			d.Moved = append(d.Moved, p)
		}
	}
	return d
}

// HasChanges reports whether any path moved.
func (d *OrderDiff) HasChanges() bool {
	return len(d.Moved) > 0 || len(d.Before) != len(d.After)
}

// Render renders the diff using dyff's human report followed by a summary.
func (d *OrderDiff) Render(useColor bool) (string, error) {
	if !d.HasChanges() {
		return "No changes detected.", nil
	}

	before, err := orderInput("input", d.Before)
	if err != nil {
		return "", fmt.Errorf("encoding input order: %w", err)
	}
	after, err := orderInput("output", d.After)
	if err != nil {
		return "", fmt.Errorf("encoding output order: %w", err)
	}

	report, err := dyff.CompareInputFiles(before, after)
	if err != nil {
		return "", fmt.Errorf("comparing orders: %w", err)
	}

	var sb strings.Builder
	if len(report.Diffs) > 0 {
		rendered, err := renderDyffReport(report, useColor)
		if err != nil {
			return "", err
		}
		sb.WriteString(rendered)
		sb.WriteString("\n\n")
	}

	sb.WriteString("Summary: ")
	sb.WriteString(pluralize(len(d.Moved), "moved"))
	sb.WriteString("\n")
	return sb.String(), nil
}

func orderInput(name string, paths []string) (ytbx.InputFile, error) {
	if paths == nil {
		paths = []string{}
	}
	data, err := yaml.Marshal(orderDocument{Order: paths})
	if err != nil {
		return ytbx.InputFile{}, err
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// pluralize returns "N label".
func pluralize(count int, label string) string {
	return itoa(count) + " " + label
}

// itoa converts an int to a string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	var negative bool
	if n < 0 {
		negative = true
		n = -n
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		digits = append([]byte{'-'}, digits...)
	}

	return string(digits)
}
