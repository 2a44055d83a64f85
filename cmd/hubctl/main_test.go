package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Tree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "steps"},
		{"migrate", "version"},
		{"migrate", "force"},
		{"migrate", "create"},
		{"migrate", "list"},
		{"seed"},
		{"token"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRootCommand_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"steps needs a count", []string{"migrate", "steps"}, "accepts 1 arg"},
		{"steps must be numeric", []string{"migrate", "steps", "two"}, "invalid step count"},
		{"force must be numeric", []string{"migrate", "force", "x"}, "invalid version"},
		{"seed needs a file", []string{"seed"}, "accepts 1 arg"},
		{"seed file must exist", []string{"seed", "/nonexistent/seed.yaml"}, "no such file"},
		{"token user must be a uuid", []string{"token", "--user", "bob"}, "--user must be a UUID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&out)
			root.SetArgs(tt.args)

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMigrateCreate(t *testing.T) {
	dir := t.TempDir()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"migrate", "--path", dir, "create", "add_alliance_banner"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "add_alliance_banner.up.sql")
	assert.Contains(t, out.String(), "add_alliance_banner.down.sql")
}
