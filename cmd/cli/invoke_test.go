package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/gitgrant/internal/core"
)

func TestInitialState_FromFlags(t *testing.T) {
	invokeFlags.stateFile = ""
	invokeFlags.action = "register user"
	invokeFlags.username = "octocat"
	invokeFlags.address = "0x00000000000000000000000000000000000000aa"
	t.Cleanup(func() { invokeFlags.action, invokeFlags.username, invokeFlags.address = "fetch", "", "" })

	state, err := initialState([]string{"https://github.com/acme/widgets"})
	require.NoError(t, err)
	assert.Equal(t, "acme", state.Owner)
	assert.Equal(t, "widgets", state.Repo)
	assert.Equal(t, core.ActionRegisterUser, state.Action)
	assert.Equal(t, "octocat", state.Username)
	assert.NotNil(t, state.Issues)
}

func TestInitialState_Errors(t *testing.T) {
	invokeFlags.stateFile = ""
	invokeFlags.action = "fetch"

	_, err := initialState(nil)
	assert.Error(t, err)

	invokeFlags.action = "deploy"
	t.Cleanup(func() { invokeFlags.action = "fetch" })
	_, err = initialState([]string{"acme/widgets"})
	assert.ErrorIs(t, err, core.ErrUnknownAction)
}

func TestReadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"owner":"acme","repo":"widgets","action":"evaluate","issues":{"3":0,"7":12}}`), 0o600))

	state, err := readState(path)
	require.NoError(t, err)
	assert.Equal(t, core.ActionEvaluate, state.Action)
	assert.Equal(t, core.IssueRatings{3: 0, 7: 12}, state.Issues)

	require.NoError(t, os.WriteFile(path, []byte(`{"action":"deploy"}`), 0o600))
	_, err = readState(path)
	assert.ErrorIs(t, err, core.ErrUnknownAction)
}

func TestRateInput(t *testing.T) {
	text, err := rateInput([]string{"add", "tests"})
	require.NoError(t, err)
	assert.Equal(t, "add tests", text)

	path := filepath.Join(t.TempDir(), "items.md")
	require.NoError(t, os.WriteFile(path, []byte("  - fix the parser\n"), 0o600))
	rateFile = path
	t.Cleanup(func() { rateFile = "" })

	text, err = rateInput(nil)
	require.NoError(t, err)
	assert.Equal(t, "- fix the parser", text)

	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o600))
	_, err = rateInput(nil)
	assert.Error(t, err)
}
