// Package api provides the shared types for bundlecheck's validation pipeline.
//
// This package is the single vocabulary spoken between all bundlecheck
// packages, preventing direct inter-package dependencies: parsing, resolution,
// transport validation, and integrity checking all produce the types defined
// here, and the formatting and serve layers consume them.
//
// # Core Types
//
//   - **Finding**: One validation observation with a severity, a stable code,
//     a subject locator, and a human-readable message
//   - **Report**: The ordered collection of findings for one bundle, with a
//     summary and an overall validity verdict
//   - **ComponentRecord**: A resolved bundle component (kind, name, resolved
//     path, parsed header) as produced by the resolver stage
//
// # Ordering Contract
//
// Findings in a Report keep insertion order, and the pipeline inserts them in
// a deterministic traversal order: manifest findings first, then component
// findings in declared order (skills, commands, agents, hooks, mcp), then
// server transport findings, then whole-bundle integrity findings. Two runs
// over the same bundle therefore produce identical reports.
//
// The package has no dependencies on other bundlecheck packages so that every
// layer can import it without cycles.
package api
