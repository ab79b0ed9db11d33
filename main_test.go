package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExtract(t *testing.T, args ...string) (extractOutput, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"extract"}, args...))

	err := cmd.Execute()

	var got extractOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	return got, err
}

func TestExtractCmd(t *testing.T) {
	got, err := runExtract(t, "go", "to", "Boston", "from", "Chicago")
	require.NoError(t, err)
	require.NotNil(t, got.Source)
	assert.Equal(t, "Chicago", *got.Source)
	assert.Equal(t, "Boston", *got.Destination)
	assert.Equal(t, "go_to_from", got.Rule)
}

func TestExtractCmd_NoMatch(t *testing.T) {
	got, err := runExtract(t, "hello")
	assert.Error(t, err)
	assert.Nil(t, got.Source)
	assert.Nil(t, got.Destination)
}
