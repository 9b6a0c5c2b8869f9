package bundle

import (
	"fmt"

	"bundlecheck/internal/api"
	"bundlecheck/internal/mcpserver"
)

// Shape identifies which of the two manifest layouts a document uses.
// The shape is decided once at parse time and never re-derived downstream.
type Shape string

const (
	// ShapeSimple is the compact layout: a top-level skills list and nothing
	// else component-related.
	ShapeSimple Shape = "simple"
	// ShapeExtended is the full layout: a components map keyed by kind.
	ShapeExtended Shape = "extended"
	// ShapeNone means neither layout key is present; the manifest can still
	// be valid, it just declares no components.
	ShapeNone Shape = "none"
)

// Author identifies the bundle's author. Name and email are required.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url,omitempty"`
}

// Metadata carries the optional classification block of the extended shape.
type Metadata struct {
	Tags     []string `json:"tags,omitempty"`
	Category string   `json:"category,omitempty"`
}

// Components is the extended shape's component map. Slice nilness is
// significant: a nil slice means the key was absent, an empty non-nil slice
// means the key was declared empty. The distinction drives the
// MissingServerSource check for mcp.
type Components struct {
	Skills   []string `json:"skills,omitempty"`
	Commands []string `json:"commands,omitempty"`
	Agents   []string `json:"agents,omitempty"`
	Hooks    []string `json:"hooks,omitempty"`
	Mcp      []string `json:"mcp,omitempty"`
}

// Manifest is the bundle's root document, accepted as JSON or YAML.
type Manifest struct {
	Name        string                            `json:"name"`
	Version     string                            `json:"version"`
	Description string                            `json:"description"`
	Author      *Author                           `json:"author,omitempty"`
	Skills      []string                          `json:"skills,omitempty"`
	Components  *Components                       `json:"components,omitempty"`
	McpServers  map[string]mcpserver.ServerConfig `json:"mcpServers,omitempty"`
	Metadata    *Metadata                         `json:"metadata,omitempty"`
}

// DetectShape classifies the manifest layout. A manifest declaring both
// layout keys is a schema conflict; the caller emits the finding and this
// function still answers ShapeExtended so one parse serves the whole run.
func (m *Manifest) DetectShape() (Shape, bool) {
	hasSimple := m.Skills != nil
	hasExtended := m.Components != nil

	switch {
	case hasSimple && hasExtended:
		return ShapeExtended, true
	case hasExtended:
		return ShapeExtended, false
	case hasSimple:
		return ShapeSimple, false
	default:
		return ShapeNone, false
	}
}

// HasInlineServers reports whether the manifest embeds server configuration.
func (m *Manifest) HasInlineServers() bool {
	return len(m.McpServers) > 0
}

// DeclaresMCP reports whether the extended shape declares the mcp key at
// all, including as an empty list.
func (m *Manifest) DeclaresMCP() bool {
	return m.Components != nil && m.Components.Mcp != nil
}

// Reference is one component reference in declared order.
type Reference struct {
	// Kind is the component kind the reference was declared under.
	Kind api.ComponentKind
	// Ordinal is the global declaration position across all kinds. The
	// collector sorts worker results by it to restore declared order.
	Ordinal int
	// Raw is the reference string exactly as written.
	Raw string
	// Subject locates the declaration inside the manifest, for findings.
	Subject string
}

// References returns the manifest's component references in declared order:
// the simple shape yields its skills list, the extended shape walks kinds in
// the fixed traversal order (skills, commands, agents, hooks, mcp).
func (m *Manifest) References() []Reference {
	shape, _ := m.DetectShape()

	var refs []Reference
	add := func(kind api.ComponentKind, subjectPrefix string, raws []string) {
		for i, raw := range raws {
			refs = append(refs, Reference{
				Kind:    kind,
				Ordinal: len(refs),
				Raw:     raw,
				Subject: fmt.Sprintf("%s[%d]", subjectPrefix, i),
			})
		}
	}

	switch shape {
	case ShapeSimple:
		add(api.KindSkill, "skills", m.Skills)
	case ShapeExtended:
		add(api.KindSkill, "components.skills", m.Components.Skills)
		add(api.KindCommand, "components.commands", m.Components.Commands)
		add(api.KindAgent, "components.agents", m.Components.Agents)
		add(api.KindHook, "components.hooks", m.Components.Hooks)
		add(api.KindMCP, "components.mcp", m.Components.Mcp)
	}

	return refs
}
