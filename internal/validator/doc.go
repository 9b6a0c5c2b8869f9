// Package validator orchestrates the bundle validation pipeline.
//
// A run proceeds in fixed stages: the manifest is located and parsed
// (sequentially, since shape detection gates everything else), component
// references are resolved and loaded on a bounded worker pool, server
// configurations are checked against the transport rules, and finally the
// whole resolved set is cross-checked for integrity. All findings land in
// one api.Report, inserted in the pipeline's deterministic traversal order.
//
// # Partial-Failure Isolation
//
// Only a manifest that cannot be located, read, or parsed stops the run.
// Every other defect, a reference escaping the root, an unreadable
// component file, a malformed header, terminates just its own unit of work,
// so one bad component never hides defects in the rest of the bundle.
//
// # Concurrency
//
// Reference resolution fans out over min(Parallel, number of references)
// workers fed from a buffered channel; a closer goroutine closes the result
// channel once all workers have joined, and a single collector restores
// declared order by ordinal. The transport and integrity stages run after
// that barrier, single-goroutine, because they need the complete set.
//
// Validation never mutates the bundle and never dials a server: the only
// blocking operations are filesystem reads.
package validator
