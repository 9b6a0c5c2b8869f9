package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"bundlecheck/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation failure",
			err:  api.NewValidationFailedError("/b", 2, 1, false),
			want: ExitCodeInvalid,
		},
		{
			name: "wrapped validation failure",
			err:  fmt.Errorf("run: %w", api.NewValidationFailedError("/b", 1, 0, false)),
			want: ExitCodeInvalid,
		},
		{
			name: "bundle access error",
			err:  api.NewBundleAccessError("/b", errors.New("no such file")),
			want: ExitCodeUsage,
		},
		{
			name: "generic error",
			err:  errors.New("unknown flag"),
			want: ExitCodeUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getExitCode(tt.err))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("")

	var out bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&out)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "bundlecheck version 1.2.3\n", out.String())
}

func TestRootHasExpectedSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"validate", "serve", "version", "self-update"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
