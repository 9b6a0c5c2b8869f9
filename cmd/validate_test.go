package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bundlecheck/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBundle materializes a bundle fixture in a temp directory.
func writeBundle(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// execValidate runs the validate command with the given args and returns
// its stdout and error.
func execValidate(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newValidateCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--quiet", "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

const validManifest = `{
	"name": "demo", "version": "1.0.0", "description": "x",
	"author": {"name": "A", "email": "a@x.com"},
	"skills": ["./skills/one"]
}`

func TestValidateValidBundle(t *testing.T) {
	root := writeBundle(t, map[string]string{
		"bundle.json":         validManifest,
		"skills/one/SKILL.md": "---\nname: demo-skill\ndescription: demo\n---\n",
	})

	out, err := execValidate(t, root)

	require.NoError(t, err)
	assert.Contains(t, out, "Bundle is valid")
	assert.Contains(t, out, "0 error(s), 0 warning(s)")
}

func TestValidateInvalidBundle(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": validManifest})

	out, err := execValidate(t, root)

	require.Error(t, err)
	assert.True(t, api.IsValidationFailed(err))
	assert.Equal(t, ExitCodeInvalid, getExitCode(err))
	assert.Contains(t, out, "ReferenceNotFound")
	assert.Contains(t, out, "Bundle is invalid")
}

func TestValidateStrictPromotesWarnings(t *testing.T) {
	root := writeBundle(t, map[string]string{
		"bundle.json": `{
			"name": "demo", "version": "1.0.0", "description": "x",
			"author": {"name": "A", "email": "a@x.com"},
			"mcpServers": {"legacy": {"transport": "sse", "url": "https://example.com"}}
		}`,
	})

	_, err := execValidate(t, root)
	require.NoError(t, err, "warnings alone must not fail a plain run")

	_, err = execValidate(t, root, "--strict")
	require.Error(t, err)
	assert.True(t, api.IsValidationFailed(err))
}

func TestValidateJSONFormat(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": validManifest})

	out, err := execValidate(t, root, "--format", "json")

	require.Error(t, err)
	var report api.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, api.CodeReferenceNotFound, report.Findings[0].Code)
}

func TestValidateUnknownFormat(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": validManifest})

	_, err := execValidate(t, root, "--format", "xml")

	require.Error(t, err)
	assert.False(t, api.IsValidationFailed(err))
	assert.Equal(t, ExitCodeUsage, getExitCode(err))
}

func TestValidateUnusablePath(t *testing.T) {
	_, err := execValidate(t, filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	var access *api.BundleAccessError
	assert.ErrorAs(t, err, &access)
	assert.Equal(t, ExitCodeUsage, getExitCode(err))
}

func TestValidateEnvFileLookup(t *testing.T) {
	root := writeBundle(t, map[string]string{
		"bundle.json": `{
			"name": "demo", "version": "1.0.0", "description": "x",
			"author": {"name": "A", "email": "a@x.com"},
			"mcpServers": {"gh": {"transport": "stdio", "command": "${BUNDLECHECK_TEST_GH_BIN}"}}
		}`,
	})
	envFile := filepath.Join(t.TempDir(), "extra.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUNDLECHECK_TEST_GH_BIN=gh\n"), 0o644))

	// Without the env file the placeholder is missing and the expanded
	// command is empty, so two errors surface.
	out, err := execValidate(t, root)
	require.Error(t, err)
	assert.Contains(t, out, "EnvVarMissing")

	out, err = execValidate(t, root, "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Bundle is valid")
}
