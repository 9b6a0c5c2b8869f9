package mcpserver

import "sort"

// TransportType defines how an MCP server is reached.
type TransportType string

const (
	// TransportStdio launches the server as a local subprocess and speaks
	// over its standard streams.
	TransportStdio TransportType = "stdio"
	// TransportHTTP reaches the server over streamable HTTP.
	TransportHTTP TransportType = "http"
	// TransportSSE reaches the server over Server-Sent Events. Deprecated
	// in favor of http; still accepted, always flagged.
	TransportSSE TransportType = "sse"
)

// ServerConfig describes one MCP server.
type ServerConfig struct {
	// Transport selects the launch/connection mode and decides which of
	// the remaining fields are required or forbidden.
	Transport TransportType `yaml:"transport" json:"transport"`

	// Command is the executable for stdio servers.
	Command string `yaml:"command,omitempty" json:"command,omitempty"`
	// Args are the command line arguments for stdio servers.
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`
	// Env is the environment handed to stdio servers.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`

	// URL is the endpoint for remote servers (http, sse).
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
	// Headers are HTTP headers for remote servers.
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// ServersDocument is the shape of a referenced server document: a single
// mcpServers map keyed by server name.
type ServersDocument struct {
	McpServers map[string]ServerConfig `yaml:"mcpServers" json:"mcpServers"`
}

// SortedNames returns the server names of a config map in sorted order, the
// iteration order used everywhere a map of servers is walked.
func SortedNames(servers map[string]ServerConfig) []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
