package validator

import (
	"context"
	"fmt"
	"os"

	"bundlecheck/internal/api"
	"bundlecheck/internal/bundle"
	"bundlecheck/internal/mcpserver"
	"bundlecheck/internal/template"
	"bundlecheck/pkg/logging"
)

const subsystem = "Validator"

// Options configures one validation run.
type Options struct {
	// BundlePath is the bundle root directory to validate.
	BundlePath string

	// Lookup resolves placeholder names during server-config expansion.
	// Nil means the process environment.
	Lookup template.Lookup

	// Parallel bounds the component worker pool. Zero or negative means
	// one worker per available CPU.
	Parallel int
}

// Outcome is the result of a completed run: the ordered findings report
// plus the resolved component set for callers that list rather than judge.
type Outcome struct {
	Report  *api.Report
	Records []api.ComponentRecord
}

// Run validates the bundle at opts.BundlePath and returns its report.
//
// The returned error is non-nil only when the bundle path itself is
// unusable (an *api.BundleAccessError); every defect inside a readable
// bundle is a finding in the report, never a Go error.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	info, err := os.Stat(opts.BundlePath)
	if err != nil {
		return nil, api.NewBundleAccessError(opts.BundlePath, err)
	}
	if !info.IsDir() {
		return nil, api.NewBundleAccessError(opts.BundlePath, fmt.Errorf("not a directory"))
	}

	resolver, err := bundle.NewResolver(opts.BundlePath)
	if err != nil {
		return nil, api.NewBundleAccessError(opts.BundlePath, err)
	}

	report := api.NewReport(resolver.Root())
	outcome := &Outcome{Report: report}

	// Stage 1+2: manifest. Fatal results short-circuit the pipeline; the
	// report then carries exactly the one FatalParseError finding.
	parse := bundle.Parse(opts.BundlePath)
	report.Add(parse.Findings...)
	if parse.Fatal {
		return outcome, nil
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = template.EnvLookup()
	}

	// Stage 3: resolve components on the worker pool.
	refs := parse.Manifest.References()
	results := resolveAll(ctx, resolver, refs, opts.Parallel)

	var docs []loadedServers
	for _, res := range results {
		report.Add(res.findings...)
		if res.record != nil {
			outcome.Records = append(outcome.Records, *res.record)
		}
		if res.servers != nil {
			docs = append(docs, loadedServers{
				subject: res.subject,
				path:    res.record.Path,
				doc:     res.servers,
			})
		}
	}
	logging.Debug(subsystem, "Resolved %d reference(s), %d usable record(s)", len(refs), len(outcome.Records))

	// Stage 4: transport rules. Inline configuration first, then each
	// referenced document in declared order; name-sorted within a source.
	tv := mcpserver.NewValidator(lookup)
	if parse.Manifest.HasInlineServers() {
		report.Add(tv.ValidateAll(parse.Manifest.McpServers)...)
	}
	for _, d := range docs {
		report.Add(tv.ValidateAll(d.doc.McpServers)...)
	}

	// Stage 5: integrity over the complete set.
	report.Add(checkIntegrity(parse, outcome.Records, docs, resolver)...)

	logging.Debug(subsystem, "Run complete: %d error(s), %d warning(s)",
		report.Summary.Errors, report.Summary.Warnings)
	return outcome, nil
}

// loadedServers pairs a parsed server document with where it came from.
type loadedServers struct {
	subject string
	path    string
	doc     *mcpserver.ServersDocument
}
