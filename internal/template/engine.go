package template

import (
	"regexp"
	"strings"
)

// Engine handles environment placeholder expansion in manifest values
type Engine struct {
	// Pattern to match placeholders like ${NAME} and ${NAME:-default}
	placeholderPattern *regexp.Regexp
}

// New creates a new expansion engine
func New() *Engine {
	return &Engine{
		placeholderPattern: regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`),
	}
}

// Expand replaces all ${NAME} and ${NAME:-default} placeholders in value
// using the given lookup. The scan is a single left-to-right pass; replaced
// text is never rescanned, so expansion cannot recurse. A placeholder whose
// name has no value and no default is substituted with the empty string and
// its name is returned in the missing list (first occurrence order, deduped).
//
// Text outside placeholders, including stray "$" and "${" without a closing
// brace, passes through untouched.
func (e *Engine) Expand(value string, lookup Lookup) (string, []string) {
	// Fast path: nothing that could be a placeholder
	if !strings.Contains(value, "${") {
		return value, nil
	}

	var missing []string
	seen := make(map[string]bool)

	result := e.placeholderPattern.ReplaceAllStringFunc(value, func(token string) string {
		groups := e.placeholderPattern.FindStringSubmatch(token)
		name := groups[1]

		if replacement, ok := lookup(name); ok {
			return replacement
		}

		// The name charset excludes ':', so ":-" can only mark a default
		if strings.Contains(token, ":-") {
			return groups[2]
		}

		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return ""
	})

	return result, missing
}

// ExpandSlice expands every element of values, returning the expanded slice
// and the union of missing names across all elements.
func (e *Engine) ExpandSlice(values []string, lookup Lookup) ([]string, []string) {
	if len(values) == 0 {
		return values, nil
	}

	result := make([]string, len(values))
	var missing []string
	seen := make(map[string]bool)

	for i, value := range values {
		expanded, miss := e.Expand(value, lookup)
		result[i] = expanded
		for _, name := range miss {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		}
	}

	return result, missing
}

// ExpandMap expands every value of m (keys are left alone), returning the
// expanded map and the union of missing names in sorted-key order so output
// stays deterministic.
func (e *Engine) ExpandMap(m map[string]string, lookup Lookup) (map[string]string, []string) {
	if len(m) == 0 {
		return m, nil
	}

	result := make(map[string]string, len(m))
	var missing []string
	seen := make(map[string]bool)

	for _, key := range sortedKeys(m) {
		expanded, miss := e.Expand(m[key], lookup)
		result[key] = expanded
		for _, name := range miss {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		}
	}

	return result, missing
}
