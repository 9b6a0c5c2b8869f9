package mcpserver

import (
	"fmt"
	"strings"

	"bundlecheck/internal/api"
	"bundlecheck/internal/template"
)

// Validator applies environment expansion and the transport rule table to
// server configurations.
type Validator struct {
	engine *template.Engine
	lookup template.Lookup
}

// NewValidator creates a validator that resolves placeholders through the
// given lookup.
func NewValidator(lookup template.Lookup) *Validator {
	return &Validator{
		engine: template.New(),
		lookup: lookup,
	}
}

// ValidateAll validates a map of server configurations in sorted-name order
// and returns the findings in that order.
func (v *Validator) ValidateAll(servers map[string]ServerConfig) []api.Finding {
	var findings []api.Finding
	for _, name := range SortedNames(servers) {
		findings = append(findings, v.Validate(name, servers[name])...)
	}
	return findings
}

// Validate expands and checks one server configuration. Expansion findings
// come first (in field order: command, args, url, env, headers), then the
// transport rule findings.
//
// Required fields are judged after expansion, so a value that expands to
// nothing counts as missing. Forbidden fields are judged on the raw
// configuration: writing url on a stdio server is a conflict even if the
// value would expand to an empty string.
func (v *Validator) Validate(name string, cfg ServerConfig) []api.Finding {
	subject := func(field string) string {
		return fmt.Sprintf("server.%s.%s", name, field)
	}

	expanded, findings := v.expand(name, cfg)

	switch expanded.Transport {
	case TransportStdio, TransportHTTP, TransportSSE:
		// Known transport, rules below.
	case "":
		findings = append(findings, api.NewError(api.CodeMissingField, subject("transport"),
			"server configuration does not declare a transport"))
		return findings
	default:
		findings = append(findings, api.NewError(api.CodeUnknownTransport, subject("transport"),
			"unsupported transport %q (supported: %s, %s, %s)",
			string(expanded.Transport), TransportStdio, TransportHTTP, TransportSSE))
		return findings
	}

	if expanded.Transport == TransportSSE {
		findings = append(findings, api.NewWarning(api.CodeDeprecatedTransport, subject("transport"),
			"transport sse is deprecated; migrate to http"))
	}

	switch expanded.Transport {
	case TransportStdio:
		if strings.TrimSpace(expanded.Command) == "" {
			findings = append(findings, api.NewError(api.CodeMissingField, subject("command"),
				"transport stdio requires a command"))
		}
		if cfg.URL != "" {
			findings = append(findings, api.NewError(api.CodeForbiddenField, subject("url"),
				"field url is not allowed when transport is stdio"))
		}
		if len(cfg.Headers) > 0 {
			findings = append(findings, api.NewError(api.CodeForbiddenField, subject("headers"),
				"field headers is not allowed when transport is stdio"))
		}

	case TransportHTTP, TransportSSE:
		if strings.TrimSpace(expanded.URL) == "" {
			findings = append(findings, api.NewError(api.CodeMissingField, subject("url"),
				"transport %s requires a url", expanded.Transport))
		}
		if cfg.Command != "" {
			findings = append(findings, api.NewError(api.CodeForbiddenField, subject("command"),
				"field command is not allowed when transport is %s", expanded.Transport))
		}
		if len(cfg.Args) > 0 {
			findings = append(findings, api.NewError(api.CodeForbiddenField, subject("args"),
				"field args is not allowed when transport is %s", expanded.Transport))
		}
	}

	return findings
}

// expand substitutes placeholders in every expandable field of cfg and
// reports each undefined, defaultless name as an EnvVarMissing finding under
// the field it appeared in.
func (v *Validator) expand(name string, cfg ServerConfig) (ServerConfig, []api.Finding) {
	var findings []api.Finding
	record := func(field string, missing []string) {
		for _, varName := range missing {
			findings = append(findings, api.NewError(api.CodeEnvVarMissing,
				fmt.Sprintf("server.%s.%s", name, field),
				"environment variable %s is not defined and has no default", varName))
		}
	}

	expanded := cfg

	var missing []string
	expanded.Command, missing = v.engine.Expand(cfg.Command, v.lookup)
	record("command", missing)

	expanded.Args, missing = v.engine.ExpandSlice(cfg.Args, v.lookup)
	record("args", missing)

	expanded.URL, missing = v.engine.Expand(cfg.URL, v.lookup)
	record("url", missing)

	expanded.Env, missing = v.engine.ExpandMap(cfg.Env, v.lookup)
	record("env", missing)

	expanded.Headers, missing = v.engine.ExpandMap(cfg.Headers, v.lookup)
	record("headers", missing)

	return expanded, findings
}
