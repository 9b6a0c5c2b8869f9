package api

import "fmt"

// Severity classifies how a finding affects the bundle's validity.
// Error-severity findings make the bundle invalid; warnings never do.
type Severity string

const (
	// SeverityError marks a finding that makes the bundle invalid.
	SeverityError Severity = "error"
	// SeverityWarning marks an advisory finding that does not affect validity.
	SeverityWarning Severity = "warning"
)

// Code identifies the class of a finding. Codes are stable strings that
// appear verbatim in reports and are safe to match on in scripts.
type Code string

const (
	// CodeFatalParseError indicates the manifest itself could not be located,
	// read, or parsed. It is the only finding that short-circuits the
	// pipeline: a report carrying it contains nothing else.
	CodeFatalParseError Code = "FatalParseError"

	// CodeSchemaConflict indicates the manifest declares both the simple
	// shape (top-level skills list) and the extended shape (components map).
	CodeSchemaConflict Code = "SchemaConflict"

	// CodeMissingField indicates a required manifest or server configuration
	// field is absent or empty.
	CodeMissingField Code = "MissingField"

	// CodeMissingHeaderField indicates a component header block lacks a
	// required field (name or description).
	CodeMissingHeaderField Code = "MissingHeaderField"

	// CodeReferenceNotFound indicates a component reference resolved to
	// nothing on disk.
	CodeReferenceNotFound Code = "ReferenceNotFound"

	// CodePathEscape indicates a component reference resolves outside the
	// bundle root, or its resolution ran into a symlink cycle.
	CodePathEscape Code = "PathEscape"

	// CodeUnknownTransport indicates a server configuration names a
	// transport outside the supported set.
	CodeUnknownTransport Code = "UnknownTransport"

	// CodeForbiddenField indicates a server configuration carries a field
	// its transport forbids (for example url on a stdio server).
	CodeForbiddenField Code = "ForbiddenField"

	// CodeEnvVarMissing indicates a ${NAME} placeholder had no value in the
	// lookup environment and no default.
	CodeEnvVarMissing Code = "EnvVarMissing"

	// CodeDuplicateIdentifier indicates two components of the same kind
	// share an effective name.
	CodeDuplicateIdentifier Code = "DuplicateIdentifier"

	// CodeConflictingServerSource indicates server configuration is present
	// both inline in the manifest and in referenced server documents.
	CodeConflictingServerSource Code = "ConflictingServerSource"

	// CodeMissingServerSource indicates the manifest declares server
	// integrations but provides neither inline nor file-based configuration.
	CodeMissingServerSource Code = "MissingServerSource"

	// CodeDeprecatedTransport flags use of the sse transport, which remains
	// accepted but is slated for removal.
	CodeDeprecatedTransport Code = "DeprecatedTransport"

	// CodeOrphanedTag flags a metadata tag or category outside the allowed
	// category set.
	CodeOrphanedTag Code = "OrphanedTag"

	// CodeInvalidName indicates the manifest name is not kebab-case.
	CodeInvalidName Code = "InvalidName"

	// CodeInvalidVersion indicates the manifest version is not valid semver.
	CodeInvalidVersion Code = "InvalidVersion"

	// CodeInvalidHeader indicates a component header block exists but could
	// not be parsed.
	CodeInvalidHeader Code = "InvalidHeader"

	// CodeInvalidServerFile indicates a referenced server document exists
	// but could not be parsed.
	CodeInvalidServerFile Code = "InvalidServerFile"

	// CodeUnreadableFile indicates a component file exists but could not be
	// read.
	CodeUnreadableFile Code = "UnreadableFile"

	// CodeDuplicateManifest flags extra manifest documents at the bundle
	// root beyond the one that was used.
	CodeDuplicateManifest Code = "DuplicateManifest"
)

// Finding is one validation observation. Subject is a dotted or path-like
// locator inside the bundle (author.email, skills[2], server.github.command).
type Finding struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Subject  string   `json:"subject"`
	Message  string   `json:"message"`
}

// String renders the finding in the compact single-line form used by logs.
func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", f.Severity, f.Code, f.Subject, f.Message)
}

// NewError creates an error-severity finding with a formatted message.
func NewError(code Code, subject, format string, args ...interface{}) Finding {
	return Finding{
		Severity: SeverityError,
		Code:     code,
		Subject:  subject,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NewWarning creates a warning-severity finding with a formatted message.
func NewWarning(code Code, subject, format string, args ...interface{}) Finding {
	return Finding{
		Severity: SeverityWarning,
		Code:     code,
		Subject:  subject,
		Message:  fmt.Sprintf(format, args...),
	}
}
