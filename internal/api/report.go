package api

// Summary counts findings by severity.
type Summary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the ordered result of validating one bundle.
//
// Findings keep insertion order; the pipeline inserts them in its
// deterministic traversal order, so marshaling a Report yields identical
// bytes for identical input. Valid is true exactly when no error-severity
// finding is present; warnings alone leave the bundle valid.
type Report struct {
	BundlePath string    `json:"bundlePath"`
	Findings   []Finding `json:"findings"`
	Summary    Summary   `json:"summary"`
	Valid      bool      `json:"valid"`
}

// NewReport creates an empty, valid report for the given bundle path.
// Findings is non-nil so an empty report marshals as [] rather than null.
func NewReport(bundlePath string) *Report {
	return &Report{
		BundlePath: bundlePath,
		Findings:   []Finding{},
		Valid:      true,
	}
}

// Add appends findings in order, updating the summary and validity.
func (r *Report) Add(findings ...Finding) {
	for _, f := range findings {
		r.Findings = append(r.Findings, f)
		switch f.Severity {
		case SeverityWarning:
			r.Summary.Warnings++
		default:
			r.Summary.Errors++
			r.Valid = false
		}
	}
}

// HasErrors reports whether any error-severity finding was recorded.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings reports whether any warning-severity finding was recorded.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// Count returns the total number of findings.
func (r *Report) Count() int {
	return len(r.Findings)
}
