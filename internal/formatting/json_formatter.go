package formatting

import (
	"encoding/json"
	"fmt"

	"bundlecheck/internal/api"
)

// JSONFormatter renders a report as indented JSON, one document per run.
type JSONFormatter struct{}

// Format marshals the report. Field order follows the Report struct, so
// identical reports marshal to identical bytes.
func (f *JSONFormatter) Format(report *api.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot marshal report: %w", err)
	}
	return string(data) + "\n", nil
}
