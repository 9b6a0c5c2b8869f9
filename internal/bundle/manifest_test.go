package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"bundlecheck/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeBundle materializes a bundle fixture in a temp directory and returns
// its root. Keys are bundle-relative paths.
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

const validSimpleManifest = `{
  "name": "demo-bundle",
  "version": "1.2.3",
  "description": "A demo bundle",
  "author": {"name": "Dev", "email": "dev@example.com"},
  "skills": ["./skills/one"]
}`

func TestParseSimpleShape(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": validSimpleManifest})

	result := Parse(root)

	require.False(t, result.Fatal)
	require.NotNil(t, result.Manifest)
	assert.Empty(t, result.Findings)
	assert.Equal(t, ShapeSimple, result.Shape)
	assert.Equal(t, "demo-bundle", result.Manifest.Name)

	refs := result.Manifest.References()
	require.Len(t, refs, 1)
	assert.Equal(t, api.KindSkill, refs[0].Kind)
	assert.Equal(t, "./skills/one", refs[0].Raw)
	assert.Equal(t, "skills[0]", refs[0].Subject)
}

func TestParseExtendedShapeFromYAML(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.yaml": `
name: demo-bundle
version: 1.2.3
description: A demo bundle
author:
  name: Dev
  email: dev@example.com
components:
  skills:
    - ./skills/one
  commands:
    - ./commands/deploy.md
  mcp:
    - ./servers.json
`})

	result := Parse(root)

	require.False(t, result.Fatal)
	assert.Empty(t, result.Findings)
	assert.Equal(t, ShapeExtended, result.Shape)
	assert.True(t, result.Manifest.DeclaresMCP())
	assert.False(t, result.Manifest.HasInlineServers())

	refs := result.Manifest.References()
	require.Len(t, refs, 3)
	assert.Equal(t, "components.skills[0]", refs[0].Subject)
	assert.Equal(t, "components.commands[0]", refs[1].Subject)
	assert.Equal(t, "components.mcp[0]", refs[2].Subject)
	for i, ref := range refs {
		assert.Equal(t, i, ref.Ordinal)
	}
}

func TestParseMissingAuthorEmail(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": `{
  "name": "demo-bundle",
  "version": "1.2.3",
  "description": "A demo bundle",
  "author": {"name": "Dev"},
  "skills": []
}`})

	result := Parse(root)

	require.False(t, result.Fatal)
	var matches []api.Finding
	for _, f := range result.Findings {
		if f.Subject == "author.email" {
			matches = append(matches, f)
		}
	}
	require.Len(t, matches, 1, "exactly one finding for author.email")
	assert.Equal(t, api.CodeMissingField, matches[0].Code)
	assert.Equal(t, api.SeverityError, matches[0].Severity)
}

func TestParseSchemaConflict(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": `{
  "name": "demo-bundle",
  "version": "1.2.3",
  "description": "A demo bundle",
  "author": {"name": "Dev", "email": "dev@example.com"},
  "skills": ["./skills/one"],
  "components": {"commands": ["./commands/deploy.md"]}
}`})

	result := Parse(root)

	require.False(t, result.Fatal)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, api.CodeSchemaConflict, result.Findings[0].Code)
	// The extended reading wins so the rest of the pipeline still runs
	assert.Equal(t, ShapeExtended, result.Shape)
	refs := result.Manifest.References()
	require.Len(t, refs, 1)
	assert.Equal(t, "components.commands[0]", refs[0].Subject)
}

func TestParseNoManifest(t *testing.T) {
	root := t.TempDir()

	result := Parse(root)

	require.True(t, result.Fatal)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, api.CodeFatalParseError, result.Findings[0].Code)
	assert.Nil(t, result.Manifest)
}

func TestParseMalformedManifest(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": `{"name": "broken"`})

	result := Parse(root)

	require.True(t, result.Fatal)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, api.CodeFatalParseError, result.Findings[0].Code)
}

func TestParseFatalCarriesExactlyOneFinding(t *testing.T) {
	// A duplicate manifest would normally warn, but a fatal result must
	// carry nothing besides its FatalParseError.
	root := writeBundle(t, map[string]string{
		"bundle.json": `{"name": "broken"`,
		"bundle.yaml": "name: other\n",
	})

	result := Parse(root)

	require.True(t, result.Fatal)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, api.CodeFatalParseError, result.Findings[0].Code)
}

func TestParseDuplicateManifestWarns(t *testing.T) {
	root := writeBundle(t, map[string]string{
		"bundle.json": validSimpleManifest,
		"bundle.yaml": "name: other\n",
	})

	result := Parse(root)

	require.False(t, result.Fatal)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, api.CodeDuplicateManifest, result.Findings[0].Code)
	assert.Equal(t, api.SeverityWarning, result.Findings[0].Severity)
	assert.Equal(t, "bundle.yaml", result.Findings[0].Subject)
	// bundle.json takes precedence
	assert.Equal(t, "demo-bundle", result.Manifest.Name)
}

func TestParseFieldConventions(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantCode api.Code
		subject  string
	}{
		{
			name: "name not kebab-case",
			manifest: `{"name": "Demo_Bundle", "version": "1.0.0", "description": "d",
				"author": {"name": "Dev", "email": "dev@example.com"}, "skills": []}`,
			wantCode: api.CodeInvalidName,
			subject:  "name",
		},
		{
			name: "version not semver",
			manifest: `{"name": "demo", "version": "1.0", "description": "d",
				"author": {"name": "Dev", "email": "dev@example.com"}, "skills": []}`,
			wantCode: api.CodeInvalidVersion,
			subject:  "version",
		},
		{
			name: "empty description",
			manifest: `{"name": "demo", "version": "1.0.0", "description": "  ",
				"author": {"name": "Dev", "email": "dev@example.com"}, "skills": []}`,
			wantCode: api.CodeMissingField,
			subject:  "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeBundle(t, map[string]string{"bundle.json": tt.manifest})

			result := Parse(root)

			require.False(t, result.Fatal)
			require.Len(t, result.Findings, 1)
			assert.Equal(t, tt.wantCode, result.Findings[0].Code)
			assert.Equal(t, tt.subject, result.Findings[0].Subject)
		})
	}
}

func TestParseMissingAuthorBlock(t *testing.T) {
	root := writeBundle(t, map[string]string{"bundle.json": `{
  "name": "demo", "version": "1.0.0", "description": "d", "skills": []
}`})

	result := Parse(root)

	require.Len(t, result.Findings, 2)
	assert.Equal(t, "author.name", result.Findings[0].Subject)
	assert.Equal(t, "author.email", result.Findings[1].Subject)
}

func TestDetectShapeNone(t *testing.T) {
	m := &Manifest{}
	shape, conflict := m.DetectShape()
	assert.Equal(t, ShapeNone, shape)
	assert.False(t, conflict)
	assert.Empty(t, m.References())
}
