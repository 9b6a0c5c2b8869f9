package template

import (
	"os"
	"sort"
)

// Lookup resolves a placeholder name to a value. The boolean reports whether
// the name is defined at all; a defined-but-empty value is a valid result.
type Lookup func(name string) (string, bool)

// EnvLookup resolves names against the process environment.
func EnvLookup() Lookup {
	return os.LookupEnv
}

// MapLookup resolves names against a fixed map.
func MapLookup(values map[string]string) Lookup {
	return func(name string) (string, bool) {
		value, ok := values[name]
		return value, ok
	}
}

// ChainLookup tries each lookup in order and returns the first hit.
func ChainLookup(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, lookup := range lookups {
			if value, ok := lookup(name); ok {
				return value, true
			}
		}
		return "", false
	}
}

// MergeValues merges multiple value maps into a single map.
// Later maps override values from earlier maps.
func MergeValues(maps ...map[string]string) map[string]string {
	result := make(map[string]string)

	for _, m := range maps {
		for key, value := range m {
			result[key] = value
		}
	}

	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
