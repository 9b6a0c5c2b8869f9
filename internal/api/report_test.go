package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAddUpdatesSummaryAndValidity(t *testing.T) {
	r := NewReport("/bundles/demo")
	assert.True(t, r.Valid)
	assert.Equal(t, 0, r.Count())

	r.Add(NewWarning(CodeDeprecatedTransport, "server.github.transport", "transport sse is deprecated"))
	assert.True(t, r.Valid, "warnings alone must not invalidate the bundle")
	assert.Equal(t, 1, r.Summary.Warnings)
	assert.Equal(t, 0, r.Summary.Errors)

	r.Add(NewError(CodeMissingField, "author.email", "required field is missing"))
	assert.False(t, r.Valid)
	assert.Equal(t, 1, r.Summary.Errors)
	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
}

func TestReportKeepsInsertionOrder(t *testing.T) {
	r := NewReport("/bundles/demo")
	r.Add(
		NewError(CodeMissingField, "name", "required field is missing"),
		NewError(CodeReferenceNotFound, "skills[0]", "./skills/one does not exist"),
		NewWarning(CodeOrphanedTag, "metadata.tags[1]", "tag is not a known category"),
	)

	require.Len(t, r.Findings, 3)
	assert.Equal(t, "name", r.Findings[0].Subject)
	assert.Equal(t, "skills[0]", r.Findings[1].Subject)
	assert.Equal(t, "metadata.tags[1]", r.Findings[2].Subject)
}

func TestEmptyReportMarshalsFindingsAsArray(t *testing.T) {
	r := NewReport("/bundles/demo")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"findings":[]`)
	assert.Contains(t, string(data), `"valid":true`)
}

func TestFindingString(t *testing.T) {
	f := NewError(CodeUnknownTransport, "server.db.transport", "unsupported transport %q", "grpc")
	assert.Equal(t, `[error] UnknownTransport server.db.transport: unsupported transport "grpc"`, f.String())
}

func TestValidationFailedError(t *testing.T) {
	err := NewValidationFailedError("/bundles/demo", 2, 1, false)
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.True(t, IsValidationFailed(err))

	strictErr := NewValidationFailedError("/bundles/demo", 0, 3, true)
	assert.Contains(t, strictErr.Error(), "treated as errors")
}
