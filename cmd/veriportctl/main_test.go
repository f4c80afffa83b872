package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRequiresDatabaseURL(t *testing.T) {
	t.Setenv("VERIPORT_DATABASE_URL", "")

	_, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIPORT_DATABASE_URL")
}

func TestIDsNextRejectsUnknownKind(t *testing.T) {
	t.Setenv("VERIPORT_DATABASE_URL", "postgres://localhost:1/veriport?sslmode=disable")

	_, err := execute(t, "ids", "next", "invoice")
	require.Error(t, err)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate"},
		{"seed", "employees"},
		{"accounts", "create"},
		{"ids", "next"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
