package bundle

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"bundlecheck/internal/api"
	"bundlecheck/pkg/logging"

	"github.com/Masterminds/semver/v3"
	"sigs.k8s.io/yaml"
)

const subsystem = "Bundle"

// manifestNames are the accepted manifest filenames at the bundle root, in
// precedence order. The first one found wins; extras are reported as
// DuplicateManifest warnings.
var manifestNames = []string{"bundle.json", "bundle.yaml", "bundle.yml"}

// namePattern is the kebab-case rule for bundle names: lowercase
// alphanumeric runs separated by single hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ParseResult is the outcome of locating and parsing a bundle manifest.
type ParseResult struct {
	// Manifest is the parsed document, nil when Fatal is true.
	Manifest *Manifest
	// Path is the manifest file that was used.
	Path string
	// Shape is the detected manifest layout.
	Shape Shape
	// Findings collects everything observed during parsing: duplicate
	// manifest warnings, the schema conflict, and manifest field findings.
	Findings []api.Finding
	// Fatal is true when the manifest could not be located, read, or
	// parsed. A fatal result carries exactly one FatalParseError finding
	// and the pipeline stops after reporting it.
	Fatal bool
}

// Locate finds the manifest document for a bundle root. It returns the
// chosen file, any extra manifest files that were passed over, and whether
// one was found at all.
func Locate(bundleRoot string) (path string, extras []string, found bool) {
	for _, name := range manifestNames {
		candidate := filepath.Join(bundleRoot, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if path == "" {
			path = candidate
		} else {
			extras = append(extras, name)
		}
	}
	return path, extras, path != ""
}

// Parse locates and parses the manifest at bundleRoot, detects its shape,
// and validates its scalar fields. Component references are not resolved
// here; that is the resolver stage's job.
func Parse(bundleRoot string) *ParseResult {
	result := &ParseResult{Shape: ShapeNone}

	path, extras, found := Locate(bundleRoot)
	if !found {
		result.Fatal = true
		result.Findings = append(result.Findings, api.NewError(api.CodeFatalParseError, "manifest",
			"no manifest document found at bundle root (expected bundle.json, bundle.yaml, or bundle.yml)"))
		return result
	}
	result.Path = path

	for _, extra := range extras {
		result.Findings = append(result.Findings, api.NewWarning(api.CodeDuplicateManifest, extra,
			"ignoring extra manifest document %s; %s takes precedence", extra, filepath.Base(path)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// A fatal result carries exactly the one finding; anything noted
		// earlier (duplicate manifest warnings) is dropped with the run.
		result.Fatal = true
		result.Findings = []api.Finding{api.NewError(api.CodeFatalParseError, "manifest",
			"cannot read manifest %s: %v", filepath.Base(path), err)}
		return result
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		result.Fatal = true
		result.Findings = []api.Finding{api.NewError(api.CodeFatalParseError, "manifest",
			"cannot parse manifest %s: %v", filepath.Base(path), err)}
		return result
	}
	result.Manifest = &manifest
	logging.Debug(subsystem, "Loaded manifest from %s", path)

	shape, conflict := manifest.DetectShape()
	result.Shape = shape
	if conflict {
		result.Findings = append(result.Findings, api.NewError(api.CodeSchemaConflict, "manifest",
			"manifest declares both a top-level skills list and a components map; use one shape only"))
	}

	result.Findings = append(result.Findings, validateFields(&manifest)...)
	return result
}

// validateFields checks the manifest's required scalar fields and the
// conventions on name and version. Component references and server
// configurations are validated by later stages.
func validateFields(m *Manifest) []api.Finding {
	var findings []api.Finding

	if isBlank(m.Name) {
		findings = append(findings, missingField("name"))
	} else if !namePattern.MatchString(m.Name) {
		findings = append(findings, api.NewError(api.CodeInvalidName, "name",
			"bundle name %q must be kebab-case: lowercase alphanumerics separated by single hyphens", m.Name))
	}

	if isBlank(m.Version) {
		findings = append(findings, missingField("version"))
	} else if _, err := semver.StrictNewVersion(m.Version); err != nil {
		findings = append(findings, api.NewError(api.CodeInvalidVersion, "version",
			"version %q is not a valid semantic version: %v", m.Version, err))
	}

	if isBlank(m.Description) {
		findings = append(findings, missingField("description"))
	}

	if m.Author == nil {
		findings = append(findings, missingField("author.name"), missingField("author.email"))
	} else {
		if isBlank(m.Author.Name) {
			findings = append(findings, missingField("author.name"))
		}
		if isBlank(m.Author.Email) {
			findings = append(findings, missingField("author.email"))
		}
	}

	return findings
}

func missingField(subject string) api.Finding {
	return api.NewError(api.CodeMissingField, subject, "required manifest field is missing or empty")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
