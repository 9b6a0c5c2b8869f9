package api

// ComponentKind identifies the kind of a bundle component.
type ComponentKind string

const (
	KindSkill   ComponentKind = "skill"
	KindCommand ComponentKind = "command"
	KindAgent   ComponentKind = "agent"
	KindHook    ComponentKind = "hook"
	KindMCP     ComponentKind = "mcp"
)

// KindOrder is the fixed traversal order for component kinds. Resolution and
// reporting walk kinds in this order so output stays deterministic.
func KindOrder() []ComponentKind {
	return []ComponentKind{KindSkill, KindCommand, KindAgent, KindHook, KindMCP}
}

// Header is the structured attributes block at the top of a file-backed
// component (skill, command, agent, hook). Both name and description are
// required and must be non-empty.
type Header struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// ComponentRecord is a resolved bundle component as produced by the resolver
// stage and consumed by integrity checks and the serve-mode listing tool.
type ComponentRecord struct {
	// Kind is the component kind the reference was declared under.
	Kind ComponentKind `json:"kind"`
	// Name is the effective identifier: the header name when one was
	// parsed, otherwise the reference basename without extension.
	Name string `json:"name"`
	// Ref is the raw reference string as written in the manifest.
	Ref string `json:"ref"`
	// Path is the resolved absolute path inside the bundle.
	Path string `json:"path"`
	// Header is the parsed attributes block, nil for server documents and
	// for components whose header could not be parsed.
	Header *Header `json:"header,omitempty"`
}
