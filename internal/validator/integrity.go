package validator

import (
	"fmt"

	"bundlecheck/internal/api"
	"bundlecheck/internal/bundle"
	"bundlecheck/internal/mcpserver"
)

// allowedCategories is the fixed advisory set metadata tags and the
// category field are checked against. Membership is a warning-level
// concern only.
var allowedCategories = map[string]bool{
	"productivity":   true,
	"development":    true,
	"documentation":  true,
	"testing":        true,
	"automation":     true,
	"integration":    true,
	"security":       true,
	"data":           true,
	"infrastructure": true,
	"workflow":       true,
}

// checkIntegrity cross-checks the complete resolved set: duplicate
// identifiers, server-source exclusivity, and orphaned metadata tags. It is
// a pure function over its inputs; no filesystem access happens here.
func checkIntegrity(parse *bundle.ParseResult, records []api.ComponentRecord, docs []loadedServers, resolver *bundle.Resolver) []api.Finding {
	var findings []api.Finding

	findings = append(findings, checkDuplicates(parse, records, docs, resolver)...)
	findings = append(findings, checkServerSource(parse.Manifest, docs)...)
	if parse.Shape == bundle.ShapeExtended {
		findings = append(findings, checkMetadata(parse.Manifest.Metadata)...)
	}

	return findings
}

// checkDuplicates flags every (kind, name) pair declared more than once.
// File-backed components key on their effective name, servers on their map
// name; the second and later occurrences are flagged, naming both sites.
func checkDuplicates(parse *bundle.ParseResult, records []api.ComponentRecord, docs []loadedServers, resolver *bundle.Resolver) []api.Finding {
	var findings []api.Finding

	firstSeen := make(map[string]string)
	note := func(kind api.ComponentKind, name, site string) {
		key := string(kind) + "/" + name
		if prev, ok := firstSeen[key]; ok {
			findings = append(findings, api.NewError(api.CodeDuplicateIdentifier,
				fmt.Sprintf("%s.%s", kind, name),
				"%s %q is declared by both %s and %s", kind, name, prev, site))
			return
		}
		firstSeen[key] = site
	}

	for _, rec := range records {
		if rec.Kind == api.KindMCP {
			// Server documents contribute server names, not a component
			// identifier of their own.
			continue
		}
		note(rec.Kind, rec.Name, resolver.Rel(rec.Path))
	}

	for _, name := range mcpserver.SortedNames(parse.Manifest.McpServers) {
		note(api.KindMCP, name, "the inline mcpServers block")
	}
	for _, d := range docs {
		for _, name := range mcpserver.SortedNames(d.doc.McpServers) {
			note(api.KindMCP, name, resolver.Rel(d.path))
		}
	}

	return findings
}

// checkServerSource enforces the inline-XOR-file rule for server
// configuration. Inline servers plus mcp references is a conflict; an mcp
// key declared with neither source is a dangling declaration.
func checkServerSource(m *bundle.Manifest, docs []loadedServers) []api.Finding {
	inline := m.HasInlineServers()
	fileRefs := m.Components != nil && len(m.Components.Mcp) > 0

	if inline {
		if fileRefs {
			return []api.Finding{api.NewError(api.CodeConflictingServerSource, "mcpServers",
				"server configuration is declared both inline (mcpServers) and via components.mcp references; use one source")}
		}
		return nil
	}

	if m.DeclaresMCP() && !fileRefs {
		return []api.Finding{api.NewError(api.CodeMissingServerSource, "components.mcp",
			"manifest declares server integrations but provides neither inline mcpServers nor components.mcp references")}
	}

	return nil
}

// checkMetadata validates the advisory classification block of the
// extended shape. Unknown tags and categories warn, never error.
func checkMetadata(meta *bundle.Metadata) []api.Finding {
	if meta == nil {
		return nil
	}

	var findings []api.Finding
	for i, tag := range meta.Tags {
		if !allowedCategories[tag] {
			findings = append(findings, api.NewWarning(api.CodeOrphanedTag,
				fmt.Sprintf("metadata.tags[%d]", i),
				"tag %q is not in the known category set", tag))
		}
	}
	if meta.Category != "" && !allowedCategories[meta.Category] {
		findings = append(findings, api.NewWarning(api.CodeOrphanedTag, "metadata.category",
			"category %q is not in the known category set", meta.Category))
	}
	return findings
}
