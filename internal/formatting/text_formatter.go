package formatting

import (
	"fmt"
	"strings"

	"bundlecheck/internal/api"
	pkgstrings "bundlecheck/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TextFormatter renders a report as a rounded findings table followed by a
// one-line summary and verdict.
type TextFormatter struct {
	options Options
}

// Format renders the report for terminal consumption.
func (f *TextFormatter) Format(report *api.Report) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Bundle: %s\n", report.BundlePath)

	if len(report.Findings) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(&sb)
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"SEVERITY", "CODE", "SUBJECT", "MESSAGE"})
		for _, finding := range report.Findings {
			t.AppendRow(table.Row{
				f.severityCell(finding.Severity),
				string(finding.Code),
				finding.Subject,
				pkgstrings.TruncateMessage(finding.Message, pkgstrings.DefaultMessageMaxLen),
			})
		}
		t.Render()
	}

	fmt.Fprintf(&sb, "%d error(s), %d warning(s)\n", report.Summary.Errors, report.Summary.Warnings)
	sb.WriteString(f.verdict(report.Valid))
	sb.WriteString("\n")

	return sb.String(), nil
}

func (f *TextFormatter) severityCell(severity api.Severity) string {
	if !f.options.Color {
		return string(severity)
	}
	switch severity {
	case api.SeverityError:
		return text.FgRed.Sprint(severity)
	case api.SeverityWarning:
		return text.FgYellow.Sprint(severity)
	default:
		return string(severity)
	}
}

func (f *TextFormatter) verdict(valid bool) string {
	if valid {
		if f.options.Color {
			return text.FgGreen.Sprint("Bundle is valid")
		}
		return "Bundle is valid"
	}
	if f.options.Color {
		return text.FgRed.Sprint("Bundle is invalid")
	}
	return "Bundle is invalid"
}
