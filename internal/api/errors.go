package api

import (
	"errors"
	"fmt"
)

// ValidationFailedError reports that a validation run completed but the
// bundle did not pass. It carries the finding counts so callers can render
// a one-line summary without re-walking the report.
//
// The CLI maps this error type to its dedicated exit code; every other error
// is treated as a usage or engine failure.
type ValidationFailedError struct {
	// BundlePath is the bundle the run was executed against.
	BundlePath string

	// Errors is the number of error-severity findings.
	Errors int

	// Warnings is the number of warning-severity findings.
	Warnings int

	// Strict is true when warnings were promoted to failures for exit
	// purposes.
	Strict bool
}

// Error implements the error interface for ValidationFailedError.
//
// Returns:
//   - string: A one-line summary of the failed run
func (e *ValidationFailedError) Error() string {
	if e.Strict && e.Errors == 0 {
		return fmt.Sprintf("validation failed for %s: %d warning(s) treated as errors", e.BundlePath, e.Warnings)
	}
	return fmt.Sprintf("validation failed for %s: %d error(s), %d warning(s)", e.BundlePath, e.Errors, e.Warnings)
}

// IsValidationFailed checks if an error is a ValidationFailedError using
// error unwrapping, so wrapped errors are recognized too.
//
// Args:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error is or wraps a ValidationFailedError
func IsValidationFailed(err error) bool {
	var vf *ValidationFailedError
	return errors.As(err, &vf)
}

// NewValidationFailedError creates a ValidationFailedError from a finished
// report's counts.
//
// Args:
//   - bundlePath: The bundle the run was executed against
//   - errorCount: Number of error-severity findings
//   - warningCount: Number of warning-severity findings
//   - strict: Whether warnings were promoted to failures
//
// Returns:
//   - *ValidationFailedError: A new ValidationFailedError instance
func NewValidationFailedError(bundlePath string, errorCount, warningCount int, strict bool) *ValidationFailedError {
	return &ValidationFailedError{
		BundlePath: bundlePath,
		Errors:     errorCount,
		Warnings:   warningCount,
		Strict:     strict,
	}
}

// BundleAccessError reports that the bundle path itself was unusable: it
// does not exist, is not a directory, or could not be probed at all. This is
// distinct from findings, which describe problems inside a readable bundle.
type BundleAccessError struct {
	// BundlePath is the path that could not be used.
	BundlePath string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface for BundleAccessError.
func (e *BundleAccessError) Error() string {
	return fmt.Sprintf("cannot access bundle at %s: %v", e.BundlePath, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *BundleAccessError) Unwrap() error {
	return e.Err
}

// NewBundleAccessError creates a BundleAccessError wrapping the cause.
func NewBundleAccessError(bundlePath string, err error) *BundleAccessError {
	return &BundleAccessError{BundlePath: bundlePath, Err: err}
}
