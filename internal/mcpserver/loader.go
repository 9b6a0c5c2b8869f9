package mcpserver

import (
	"os"
	"path/filepath"

	"bundlecheck/internal/api"
	"bundlecheck/pkg/logging"

	"sigs.k8s.io/yaml"
)

const subsystem = "Transport"

// LoadServersDocument reads a referenced server document. The document is
// accepted as JSON or YAML and must consist of a single mcpServers map.
// Problems are reported as findings under the component's subject; a nil
// document means nothing usable was loaded.
func LoadServersDocument(path, subject string) (*ServersDocument, []api.Finding) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []api.Finding{api.NewError(api.CodeUnreadableFile, subject,
			"cannot read server document: %v", err)}
	}

	var doc ServersDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, []api.Finding{api.NewError(api.CodeInvalidServerFile, subject,
			"cannot parse server document %s: %v", filepath.Base(path), err)}
	}

	if len(doc.McpServers) == 0 {
		return nil, []api.Finding{api.NewError(api.CodeMissingField, subject+".mcpServers",
			"server document %s declares no servers under mcpServers", filepath.Base(path))}
	}

	logging.Debug(subsystem, "Loaded %d server definition(s) from %s", len(doc.McpServers), path)
	return &doc, nil
}
