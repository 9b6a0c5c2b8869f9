// Package formatting renders validation reports for the CLI.
//
// Three formats are supported: a human-oriented text rendering (findings
// table plus summary line), machine-oriented JSON, and YAML. All formatters
// write the report only; progress output and logs belong on stderr and are
// not this package's concern.
package formatting

import (
	"fmt"

	"bundlecheck/internal/api"
)

// OutputFormat selects how a report is rendered.
type OutputFormat string

const (
	// FormatText renders a findings table with a summary line.
	FormatText OutputFormat = "text"
	// FormatJSON renders the report as indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML renders the report as YAML.
	FormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat checks that format names a supported output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: text, json, yaml)", format)
	}
}

// Options configures formatter behavior.
type Options struct {
	// Color enables colored severity and verdict rendering in the text
	// format. It has no effect on json and yaml.
	Color bool
}

// Formatter renders one validation report to a string.
type Formatter interface {
	Format(report *api.Report) (string, error)
}

// NewFormatter creates the formatter for the given output format.
func NewFormatter(format OutputFormat, options Options) (Formatter, error) {
	switch format {
	case FormatText:
		return &TextFormatter{options: options}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}
