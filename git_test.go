package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitURL(t *testing.T) {
	assert.True(t, isGitURL("https://github.com/user/repo.git"))
	assert.True(t, isGitURL("git@github.com:user/repo.git"))
	assert.True(t, isGitURL("git@example.com:docs/agents"))

	assert.False(t, isGitURL("/home/user/docs"))
	assert.False(t, isGitURL("./relative/path"))
	assert.False(t, isGitURL("https://example.com/page"))
	assert.False(t, isGitURL(""))
}

func TestCloneGitRepoStripsMetadata(t *testing.T) {
	seed := createSeedRepo(t)

	dir, err := cloneGitRepo(seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	_, err = os.Stat(filepath.Join(dir, "doc.txt"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".git"))
	assert.True(t, os.IsNotExist(err))
}
