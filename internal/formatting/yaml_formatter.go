package formatting

import (
	"fmt"

	"bundlecheck/internal/api"

	"sigs.k8s.io/yaml"
)

// YAMLFormatter renders a report as YAML. It goes through the json tags so
// field names match the JSON rendering exactly.
type YAMLFormatter struct{}

// Format marshals the report to YAML.
func (f *YAMLFormatter) Format(report *api.Report) (string, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("cannot marshal report: %w", err)
	}
	return string(data), nil
}
