// Package bundle provides manifest parsing and path resolution for
// extension bundles.
//
// A bundle is a directory tree packaging reusable assistant capabilities
// behind a single manifest document at its root. The manifest is accepted
// as JSON or YAML under one of three filenames (bundle.json, bundle.yaml,
// bundle.yml) and comes in two layouts:
//
//   - **Simple shape**: name, version, description, author, and a flat
//     skills list
//   - **Extended shape**: the same identity fields plus a components map
//     keyed by kind (skills, commands, agents, hooks, mcp) and an optional
//     metadata block (tags, category)
//
// Declaring both layouts in one document is a schema conflict. The shape is
// detected exactly once, at parse time, and the rest of the pipeline trusts
// that decision.
//
// # Component Files
//
// File-backed components (skills, commands, agents, hooks) start with a
// structured attributes block between --- delimiters, carrying at minimum a
// name and a description; the free-form content after the block is never
// interpreted. Skill references may point at a directory, in which case the
// block lives in SKILL.md inside it.
//
// # Path Resolution
//
// Component references resolve strictly inside the bundle root. The
// ${BUNDLE_ROOT} token names the root explicitly; relative references join
// onto it. Any resolution that escapes the root, lexically or through a
// symlink target, is refused, and symlink chains are followed with cycle
// detection. The Resolver in this package is the only place path rules
// live.
package bundle
