package bundle

import (
	"os"
	"strings"

	"bundlecheck/internal/api"

	"gopkg.in/yaml.v3"
)

// SkillHeaderName is the header file expected inside a skill directory.
const SkillHeaderName = "SKILL.md"

// headerDelimiter opens and closes the structured attributes block at the
// top of a file-backed component.
const headerDelimiter = "---"

// ParseHeaderFile reads a component file and validates its header block: a
// leading YAML section between --- delimiters that must carry non-empty
// name and description fields. The free-form body after the block is never
// interpreted.
//
// The returned header is non-nil whenever a block was parsed, even if
// required fields are missing, so callers can still use whatever name is
// present. subject is the component's manifest locator and prefixes every
// finding subject.
func ParseHeaderFile(path, subject string) (*api.Header, []api.Finding) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []api.Finding{api.NewError(api.CodeUnreadableFile, subject,
			"cannot read component file: %v", err)}
	}

	block, found, terminated := extractHeaderBlock(string(data))
	if !found {
		return nil, []api.Finding{
			api.NewError(api.CodeMissingHeaderField, subject+".header.name",
				"component file has no header block"),
			api.NewError(api.CodeMissingHeaderField, subject+".header.description",
				"component file has no header block"),
		}
	}
	if !terminated {
		return nil, []api.Finding{api.NewError(api.CodeInvalidHeader, subject+".header",
			"header block is not terminated by a closing %s line", headerDelimiter)}
	}

	var header api.Header
	if err := yaml.Unmarshal([]byte(block), &header); err != nil {
		return nil, []api.Finding{api.NewError(api.CodeInvalidHeader, subject+".header",
			"cannot parse header block: %v", err)}
	}

	var findings []api.Finding
	if strings.TrimSpace(header.Name) == "" {
		findings = append(findings, api.NewError(api.CodeMissingHeaderField, subject+".header.name",
			"required header field is missing or empty"))
	}
	if strings.TrimSpace(header.Description) == "" {
		findings = append(findings, api.NewError(api.CodeMissingHeaderField, subject+".header.description",
			"required header field is missing or empty"))
	}

	return &header, findings
}

// extractHeaderBlock pulls the YAML section between the opening --- on the
// first line and the next --- line. found is false when the file does not
// start with a delimiter; terminated is false when the closing delimiter
// never arrives.
func extractHeaderBlock(content string) (block string, found bool, terminated bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != headerDelimiter {
		return "", false, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == headerDelimiter {
			return strings.Join(lines[1:i], "\n"), true, true
		}
	}
	return "", true, false
}
